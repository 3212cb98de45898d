package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	btclogv2 "github.com/btcsuite/btclog/v2"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roasbeef/modqueue/internal/build"
	"github.com/roasbeef/modqueue/internal/db"
	"github.com/roasbeef/modqueue/internal/mcp"
	"github.com/roasbeef/modqueue/internal/review"
	"github.com/roasbeef/modqueue/internal/store"
	"github.com/roasbeef/modqueue/internal/web"
)

func main() {
	var (
		configPath = flag.String("config", "~/.modqueue/modqueue.yaml", "Path to YAML config file")
		dbPath     = flag.String("db", "", "Path to SQLite database (overrides config)")
		webAddr    = flag.String("web", "", "Web server address (overrides config)")
		logDir     = flag.String("logdir", "", "Directory for rotated log files (overrides config)")
		webOnly    = flag.Bool("web-only", false, "Run web server only (no MCP stdio)")
	)
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override config file values.
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *webAddr != "" {
		cfg.WebAddr = *webAddr
	}
	if *logDir != "" {
		cfg.LogDir = *logDir
	}
	if *webOnly {
		cfg.WebOnly = true
	}
	if cfg.DBPath == "" {
		cfg.DBPath, err = db.DefaultDBPath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v", err)
		}
	}

	// Set up logging. Console always, plus a rotating log file when a
	// log directory is configured.
	handlers := []btclogv2.Handler{
		btclogv2.NewDefaultHandler(os.Stderr),
	}

	if cfg.LogDir != "" {
		logWriter := build.NewRotatingLogWriter()
		err := logWriter.InitLogRotator(&build.LogRotatorConfig{
			LogDir:         expandHome(cfg.LogDir),
			MaxLogFiles:    cfg.MaxLogFiles,
			MaxLogFileSize: cfg.MaxLogFileSize,
		})
		if err != nil {
			log.Fatalf("Failed to init log rotator: %v", err)
		}
		defer logWriter.Close()

		handlers = append(
			handlers, btclogv2.NewDefaultHandler(logWriter),
		)
	}

	logger := slog.New(build.NewHandlerSet(handlers...))
	slog.SetDefault(logger)

	// Open the database with migrations.
	sqliteStore, err := db.NewSqliteStore(&db.SqliteConfig{
		DatabaseFileName: expandHome(cfg.DBPath),
	}, logger)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer sqliteStore.Close()

	storage := store.FromDB(sqliteStore.DB())

	reviewSvc := review.NewService(review.ServiceConfig{
		Store: storage,
	}, logger)

	// Create the MCP server (unless web-only mode).
	var mcpServer *mcp.Server
	if !cfg.WebOnly {
		mcpServer = mcp.NewServer(storage, reviewSvc)
	}

	// Set up signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("Shutting down...")
		cancel()
	}()

	// Start the web server if enabled.
	if cfg.WebAddr != "" {
		webCfg := web.DefaultConfig()
		webCfg.Addr = cfg.WebAddr

		webServer, err := web.NewServer(webCfg, storage, reviewSvc)
		if err != nil {
			log.Fatalf("Failed to create web server: %v", err)
		}

		go func() {
			logger.Info("Starting web server", "addr", cfg.WebAddr)
			err := webServer.Start()
			if err != nil && err != http.ErrServerClosed {
				logger.Error("Web server error", "err", err)
			}
		}()

		// Shut down web server on context cancellation.
		go func() {
			<-ctx.Done()
			webServer.Shutdown(context.Background())
		}()
	}

	// Run the MCP server on stdio transport, unless web-only mode.
	if cfg.WebOnly {
		logger.Info("Running in web-only mode (no MCP stdio)")
		<-ctx.Done()
	} else {
		logger.Info("Starting modqueued MCP server...")
		if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}
