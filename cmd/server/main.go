package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/codemash/internal/conference"
	"github.com/JonMunkholm/codemash/internal/config"
	"github.com/JonMunkholm/codemash/internal/database"
	"github.com/JonMunkholm/codemash/internal/logging"
	"github.com/JonMunkholm/codemash/internal/mcp"
	"github.com/JonMunkholm/codemash/internal/store"
	"github.com/JonMunkholm/codemash/internal/tools"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codemash",
		Short:         "Query the CodeMash conference schedule",
		Long:          "Serves read-only conference tools (event, hotels, speakers, sessions, rooms, tracks, venue) over MCP and HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	registerServeCmd(rootCmd)
	registerStdioCmd(rootCmd)
	registerQueryCmd(rootCmd)
	registerVersionCmd(rootCmd)

	return rootCmd
}

func registerVersionCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "displays the version of codemash",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
}

// app bundles what every command needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	reader *conference.Reader
	tools  *tools.Registry
	mcp    *mcp.Server
}

// newApp loads the dataset and builds the tool registry and protocol server.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	data, err := loadData(ctx, cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("conference data loaded",
		"source", cfg.Data.Source,
		"tables", len(data.TableNames()),
		"records", data.RecordCount(),
		"indexed", cfg.Data.Index,
	)

	var resolver store.Resolver = data
	if cfg.Data.Index {
		resolver = store.NewIndex(data)
	}

	reader := conference.NewReader(resolver)
	reg := tools.NewConferenceRegistry(reader)
	slog.Info("tools registered", "count", reg.Count())

	return &app{
		cfg:    cfg,
		reader: reader,
		tools:  reg,
		mcp:    mcp.NewServer(reg, mcp.Implementation{Name: "codemash", Version: version}, tools.Instructions),
	}, nil
}

// loadData reads the whole dataset into memory from the configured source.
func loadData(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg.Data.Source != config.SourcePostgres {
		return store.LoadFile(cfg.Data.File)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Database.LoadTimeout)
	defer cancel()

	pool, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	// The dataset is read once; the pool is not needed afterwards.
	defer pool.Close()

	start := time.Now()
	data, err := database.Load(ctx, pool, cfg.Data.Table)
	if err != nil {
		return nil, err
	}
	slog.Debug("database load finished", "duration_ms", time.Since(start).Milliseconds())
	return data, nil
}

// setup loads the optional env file and configuration, configures logging
// and builds the app. Logs go to stderr when stdout carries protocol traffic.
func setup(ctx context.Context, stderrLogs bool) (*app, error) {
	envPath, envErr := config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return nil, err
	}

	if stderrLogs {
		logging.SetupWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	} else {
		logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	}

	switch {
	case envErr != nil:
		slog.Warn("env file not loaded", "error", envErr)
	case envPath != "":
		slog.Info("loaded env file (overwriting existing env vars)", "path", envPath)
	}
	slog.Debug("configuration loaded", "config", cfg.String())

	a, err := newApp(ctx, cfg)
	if err != nil {
		slog.Error("failed to load conference data", "error", err, "code", conference.MapError(err).Code)
		return nil, err
	}
	return a, nil
}
