package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/msgcat/internal/cli"
	"github.com/vvka-141/msgcat/pkg/msgcat"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(msgcat.ExitPanic)
		}
	}()

	if os.Getenv("MSGCAT_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(msgcat.ExitCodeForError(err))
	}
}
