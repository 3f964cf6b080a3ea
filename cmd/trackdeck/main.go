package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"trackdeck/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps error classes to distinct codes so scripts can tell bad
// input from external tool failures.
func exitCode(err error) int {
	switch services.Classify(err) {
	case services.ErrValidation, services.ErrConfiguration:
		return 2
	case services.ErrExternalTool, services.ErrTimeout:
		return 3
	default:
		return 1
	}
}
