package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestHandlerDispatch(t *testing.T) {
	setter := &fakeSetter{}
	h := NewHandler(nil, NewPointer(&gridMapper{}, setter), zaptest.NewLogger(t))

	assert.Equal(t, IntentQuit, h.Handle(runeKey('q')).Type)
	assert.Equal(t, IntentResize, h.Handle(tcell.NewEventResize(80, 24)).Type)

	intent := h.Handle(mouse(5, 6, tcell.Button1))
	assert.Equal(t, IntentPointer, intent.Type)
	assert.True(t, intent.Held)
	params, _ := setter.snapshot()
	assert.True(t, params.InputActive)

	assert.Equal(t, IntentNone, h.Handle(tcell.NewEventInterrupt(nil)).Type)
}

func TestHandlerWithoutPointerIgnoresMouse(t *testing.T) {
	h := NewHandler(DefaultKeyTable(), nil, nil)
	assert.Equal(t, Intent{}, h.Handle(mouse(1, 1, tcell.Button1)))
}
