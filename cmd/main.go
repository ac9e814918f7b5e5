/*
Package main is the entry point for the chirp server.

It wires the cobra command tree: serve (the default) runs the HTTP server until an interrupt
signal arrives, and migrate applies the database schema and exits.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chirp/internal/configs"
	"chirp/internal/pkg/logx"
)

func main() {
	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chirp",
		Short:         "chirp - a minimal multi-user posting service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())

	return cmd
}

// loadConfig reads the configuration and initializes the global logger from it.
func loadConfig() (*configs.AppConfig, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("database", cfg.DatabaseDSN != "").
		Bool("redis_sessions", cfg.RedisAddr != "").
		Dur("session_ttl", cfg.SessionTTL).
		Msg("Configuration loaded successfully")

	return cfg, nil
}
