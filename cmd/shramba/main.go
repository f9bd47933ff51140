// Command shramba is the CLI front-end for the container tracker. It is a
// thin wrapper: all lifecycle and query logic lives in internal/store.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/erazemk/shramba/internal/model"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, model.ErrInvalidState) {
			fmt.Fprintln(os.Stderr, "hint: deleted items must be restored before editing: shramba restore <id>")
		}
		if errors.Is(err, model.ErrExhausted) {
			slog.Error("public id generation exhausted retries")
		}
		os.Exit(1)
	}
}
