package input

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Handler parses tcell events into intents
type Handler struct {
	keys    *KeyTable
	pointer *Pointer // nil ignores the mouse
	logger  *zap.Logger
}

// NewHandler creates a handler; nil keys selects the default table
func NewHandler(keys *KeyTable, pointer *Pointer, logger *zap.Logger) *Handler {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{keys: keys, pointer: pointer, logger: logger.Named("input")}
}

// Handle parses one event; pointer events also publish the input target
func (h *Handler) Handle(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return Intent{Type: h.keys.Lookup(ev)}
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	case *tcell.EventMouse:
		if h.pointer == nil {
			return Intent{}
		}
		intent, err := h.pointer.Handle(ev)
		if err != nil {
			h.logger.Debug("pointer target rejected", zap.Error(err))
		}
		return intent
	}
	return Intent{}
}
