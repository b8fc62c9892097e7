package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/export"
	"github.com/claude/liftlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	outPath := flag.String("out", "", "path for the SQLite snapshot (required)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *outPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-export -config config.yaml -out snapshot.db\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect database
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Write snapshot
	stats, err := export.Write(ctx, db, *outPath)
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}

	log.Info("export complete",
		"path", *outPath,
		"sessions", stats.Sessions,
		"exercises", stats.Exercises,
		"workouts", stats.Workouts,
		"sets", stats.Sets,
	)
}
