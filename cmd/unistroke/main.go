package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/raskell/unistroke/internal/app"
	"github.com/raskell/unistroke/internal/config"
	"github.com/raskell/unistroke/internal/server"
	"github.com/raskell/unistroke/internal/store"
	"github.com/raskell/unistroke/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	dbPath, err := resolveDBPath(cfg.DBPath)
	if err != nil {
		log.Error("failed to resolve database path", logger.Error(err))
		os.Exit(1)
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Error("failed to initialize store", logger.Error(err))
		os.Exit(1)
	}
	defer st.Close()
	log.Info("store opened", logger.String("path", dbPath))

	a := app.New(app.Config{
		Store:          st,
		Log:            log.Named("app"),
		MinPathLength:  cfg.MinPathLength,
		AngleWindow:    cfg.AngleWindow(),
		AngleTolerance: cfg.AngleTolerance(),
	})
	if err := a.LoadTemplates(); err != nil {
		log.Error("failed to load templates", logger.Error(err))
		os.Exit(1)
	}

	if cfg.StaticDir != "" {
		log.Info("serving static files", logger.String("dir", cfg.StaticDir))
	}

	srv := server.New(server.Config{
		StaticDir: cfg.StaticDir,
		Store:     st,
		App:       a,
		Log:       log.Named("http"),
	})

	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		log.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}

// resolveDBPath expands an empty path to the default database file under
// the user's home directory, creating the data directory if needed.
func resolveDBPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(homeDir, ".unistroke")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(dbDir, "unistroke.db"), nil
}
