// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cli implements the littlehands command line: the web server and
// the commands that provision a Contentful space.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"littlehands/internal/config"
)

// app carries state shared by the subcommands once the root command has
// loaded configuration.
type app struct {
	cfg *config.Config
}

// Execute runs the command line with the given arguments.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "littlehands",
		Short: "Little Hands Therapy site server",
		Long: `Serves the Little Hands Therapy website and its JSON content API.

Content is read from Contentful when credentials are configured and from
the built-in fallback content otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			a.cfg = cfg
			slog.SetDefault(newLogger(cfg, cmd.ErrOrStderr()))
			return nil
		},
	}

	root.AddCommand(newServeCmd(a), newProvisionCmd(a))
	return root
}

// newLogger returns a text logger in development and a JSON logger
// everywhere else.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
