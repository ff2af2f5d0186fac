package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/pgconsolidate/internal/cli"
	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n\n%s\n", r, debug.Stack())
			exitCode = pgconsolidate.ExitPanic
		}
	}()

	if os.Getenv("PGCONSOLIDATE_TEST_PANIC") == "1" {
		panic("test panic triggered by PGCONSOLIDATE_TEST_PANIC")
	}

	if err := cli.Execute(); err != nil {
		return pgconsolidate.ExitCodeForError(err)
	}
	return pgconsolidate.ExitSuccess
}
