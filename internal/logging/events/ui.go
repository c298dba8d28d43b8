package events

import "github.com/atomicstack/penpal-tui/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key, screen string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "screen": screen})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) ListCursor(listID string, cursor int) {
	logging.Trace("ui.list.cursor", map[string]interface{}{"list": listID, "cursor": cursor})
}

func (FilterTracer) Start(listID string) {
	logging.Trace("filter.start", map[string]interface{}{"list": listID})
}

func (FilterTracer) Cleared(listID string) {
	logging.Trace("filter.clear", map[string]interface{}{"list": listID})
}

func (FilterTracer) WordBackspace(listID, query string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"list": listID, "filter": query})
}

func (FilterTracer) Cursor(listID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"list": listID, "cursor": pos})
}

func (FilterTracer) CursorWord(listID string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"list": listID, "cursor": pos})
}

func (FilterTracer) Append(listID, query string) {
	logging.Trace("filter.append", map[string]interface{}{"list": listID, "filter": query})
}

func (FilterTracer) Backspace(listID, query string) {
	logging.Trace("filter.backspace", map[string]interface{}{"list": listID, "filter": query})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}
