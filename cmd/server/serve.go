package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/codemash/internal/mcp"
	"github.com/JonMunkholm/codemash/internal/web"
)

func registerServeCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "serve the tools over HTTP (default)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, false)
	if err != nil {
		return err
	}

	slog.Info("configuration loaded",
		"port", a.cfg.Server.Port,
		"data_source", a.cfg.Data.Source,
		"rate_limit_enabled", a.cfg.Rate.Enabled,
		"api_key_required", a.cfg.Security.RequireAPIKey,
	)

	rpc := mcp.NewHTTPHandler(a.mcp, mcp.NewSessions(a.cfg.Server.SessionIdleTimeout, a.cfg.Server.MaxSessions))
	server := web.NewServer(a.cfg, a.reader, a.tools, rpc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		server.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		slog.Error("server stopped", "error", err)
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	slog.Info("server stopped")
	return nil
}
