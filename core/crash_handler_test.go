package core

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeScreen struct{ finis atomic.Int32 }

func (f *fakeScreen) Fini() { f.finis.Add(1) }

func TestHandleCrash_RestoresTerminalAndExits(t *testing.T) {
	screen := &fakeScreen{}
	SetCrashTerminal(screen)
	defer SetCrashTerminal(nil)

	var code atomic.Int32
	code.Store(-1)
	exit = func(c int) { code.Store(int32(c)) }
	defer func() { exit = osExitForTest }()

	HandleCrash("boom")

	assert.Equal(t, int32(1), screen.finis.Load())
	assert.Equal(t, int32(1), code.Load())
}

func TestHandleCrash_NilIsNoop(t *testing.T) {
	screen := &fakeScreen{}
	SetCrashTerminal(screen)
	defer SetCrashTerminal(nil)

	HandleCrash(nil)
	assert.Zero(t, screen.finis.Load())
}

func TestGo_RecoversPanic(t *testing.T) {
	done := make(chan int, 1)
	exit = func(c int) { done <- c }
	defer func() { exit = osExitForTest }()

	Go(func() { panic("worker") })

	assert.Equal(t, 1, <-done)
}

var osExitForTest = exit
