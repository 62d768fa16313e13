// Package cli wires the cobra command tree for the formfill binary.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/formfill/formfill/internal/config"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// NewRoot builds the root command with its subcommands. Configuration
// and the diagnostics logger are resolved once here and shared.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "formfill",
		Short:         "Fill dynamic multi-section forms from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newFillCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// setup loads config and installs the process-wide logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
