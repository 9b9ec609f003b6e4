package main

import (
	"errors"
	"log/slog"
	"os"
)

// Exit codes.
const (
	exitError = 1
	exitUsage = 2
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			os.Exit(exitUsage)
		}
		slog.Error("Report generation failed", slog.Any("error", err))
		os.Exit(exitError)
	}
}
