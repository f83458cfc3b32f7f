package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer restores the terminal; tcell.Screen satisfies it
type Finalizer interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finalizer

	// Replaced in tests
	crashOut  io.Writer = os.Stderr
	crashExit           = os.Exit
)

// SetCrashTerminal registers the terminal HandleCrash restores; nil clears it
func SetCrashTerminal(t Finalizer) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler: it resets the terminal, prints the stack and exits
func HandleCrash(where string, r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	t := crashTerminal
	crashTerminal = nil
	crashMu.Unlock()
	if t != nil {
		t.Fini()
	}

	// Raw mode may still be active: \r\n avoids zig-zag output
	fmt.Fprintf(crashOut, "\r\n\x1b[31mDESKRUSH %s CRASHED: %v\x1b[0m\r\n", where, r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())
	crashExit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword for goroutines that outlive a frame
func Go(where string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(where, r)
			}
		}()
		fn()
	}()
}
