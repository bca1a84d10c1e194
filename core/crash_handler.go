package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// Finisher restores the terminal, implemented by the tcell screen
type Finisher interface {
	Fini()
}

type finisherBox struct{ f Finisher }

var crashTerminal atomic.Pointer[finisherBox]

// SetCrashTerminal registers the screen to restore before a crash report is printed
// nil unregisters
func SetCrashTerminal(f Finisher) {
	if f == nil {
		crashTerminal.Store(nil)
		return
	}
	crashTerminal.Store(&finisherBox{f: f})
}

// exit is swapped in tests
var exit = os.Exit

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	// Restore terminal to sane state immediately
	if box := crashTerminal.Load(); box != nil {
		box.f.Fini()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
