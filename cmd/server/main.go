package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/manuscripta/searchkit/pkg/api"
	"github.com/manuscripta/searchkit/pkg/chassis"
	"github.com/manuscripta/searchkit/pkg/lang"
	"github.com/manuscripta/searchkit/pkg/store"
)

type config struct {
	Addr            string   `yaml:"addr"`
	DBPath          string   `yaml:"db_path"`
	Langbase        string   `yaml:"langbase"`
	LangbaseEnc     string   `yaml:"langbase_encoding"`
	EngineLanguages []string `yaml:"engine_languages"`
	CertFile        string   `yaml:"cert_file"`
	KeyFile         string   `yaml:"key_file"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "index":
		cmdIndex(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: searchkit <command>\n\nCommands:\n  serve   Start the API server\n  index   Bulk-index a JSON documents file\n")
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := loadConfig(*cfgPath, logger)

	// Load the language table.
	cat := lang.NewCatalog(cfg.Langbase, cfg.LangbaseEnc, cfg.EngineLanguages)
	if err := cat.Load(); err != nil {
		logger.Error("failed to load language table", "error", err)
		os.Exit(1)
	}
	logger.Info("language table loaded", "languages", cat.Table().Len())

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	router := api.NewRouter(cat, st)

	mcpSrv := server.NewMCPServer("searchkit", "1.0.0",
		server.WithToolCapabilities(true),
	)
	api.RegisterMCPTools(mcpSrv, cat, st)

	srv, err := chassis.New(chassis.Config{
		Addr:      cfg.Addr,
		CertFile:  cfg.CertFile,
		KeyFile:   cfg.KeyFile,
		Handler:   router,
		MCPServer: mcpSrv,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("chassis init failed", "error", err)
		os.Exit(1)
	}

	// SIGHUP: hot reload the language table.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading language table")
			if err := cat.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				logger.Info("language table reloaded", "languages", cat.Table().Len())
			}
		}
	}()

	go func() {
		logger.Info("searchkit listening", "addr", cfg.Addr)
		if err := srv.Start(ctx); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Stop(shutdownCtx)
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:   ":8410",
		DBPath: "searchkit.db",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
