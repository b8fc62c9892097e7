package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/seed"
	"github.com/claude/liftlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	planPath := flag.String("plan", "", "path to YAML training plan (required)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *planPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-seed -config config.yaml -plan plan.yaml\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	plan, err := seed.LoadPlan(*planPath)
	if err != nil {
		log.Error("failed to load plan", "error", err)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Apply plan
	stats, err := seed.Apply(ctx, db, plan, log)
	if err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	log.Info("seeding complete",
		"sessions_created", stats.SessionsCreated,
		"sessions_skipped", stats.SessionsSkipped,
		"exercises_created", stats.ExercisesCreated,
		"exercises_skipped", stats.ExercisesSkipped,
	)
}
