package events

import (
	"github.com/atomicstack/penpal-tui/internal/logging"
	"github.com/atomicstack/penpal-tui/internal/nav"
)

type ScreenTracer struct{}

var Screen = ScreenTracer{}

func (ScreenTracer) Activate(tab nav.Tab) {
	logging.Trace("screen.activate", map[string]interface{}{"screen": tab.String()})
}

func (ScreenTracer) DetailOpen(tab nav.Tab, detail string) {
	logging.Trace("screen.detail.open", map[string]interface{}{"screen": tab.String(), "detail": detail})
}

func (ScreenTracer) DetailClose(tab nav.Tab, detail string) {
	logging.Trace("screen.detail.close", map[string]interface{}{"screen": tab.String(), "detail": detail})
}

func (ScreenTracer) Open(tab nav.Tab, id string) {
	logging.Trace("screen.open", map[string]interface{}{"screen": tab.String(), "id": id})
}

func (ScreenTracer) Missing(tab nav.Tab, id string) {
	logging.Trace("screen.missing", map[string]interface{}{"screen": tab.String(), "id": id})
}
