package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkwell-dev/inkwell/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		logLevel string
		sanitize bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor host server",
		Long: `Run the editor host server.

Configuration loads from INKWELL_* environment variables; flags
override individual settings.

Examples:
  inkwell serve
  inkwell serve --addr=:9000
  inkwell serve --sanitize=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr, logLevel, sanitize)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from INKWELL_ADDR)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&sanitize, "sanitize", true, "Sanitize host-supplied HTML at the REST boundary")

	return cmd
}

func runServe(cmd *cobra.Command, addr, logLevel string, sanitize bool) error {
	cfg, err := server.ConfigFromEnv()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if cmd.Flags().Changed("sanitize") {
		cfg.Sanitize = sanitize
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, server.Options{Logger: logger})
	if err := srv.ListenAndServe(ctx); err != nil && err != http.ErrServerClosed {
		return err
	}
	logger.Info("server: stopped")
	return nil
}
