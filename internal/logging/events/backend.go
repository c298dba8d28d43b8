package events

import "github.com/atomicstack/penpal-tui/internal/logging"

type BackendTracer struct{}

type NotifyTracer struct{}

var (
	Backend = BackendTracer{}
	Notify  = NotifyTracer{}
)

func (BackendTracer) Error(kind string, err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("backend.error", map[string]interface{}{"kind": kind, "error": err.Error()})
}

func (BackendTracer) Refresh(kind string) {
	logging.Trace("backend.refresh", map[string]interface{}{"kind": kind})
}

func (BackendTracer) NewMessages(ids []string) {
	logging.Trace("backend.messages.new", map[string]interface{}{"ids": ids})
}

func (NotifyTracer) Sent(title string) {
	logging.Trace("notify.sent", map[string]interface{}{"title": title})
}

func (NotifyTracer) Failed(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("notify.failed", map[string]interface{}{"error": err.Error()})
}
