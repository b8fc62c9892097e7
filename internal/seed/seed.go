package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Plan is a declarative training plan: session templates and their
// exercises, in training order.
type Plan struct {
	Sessions []PlanSession `yaml:"sessions"`
}

// PlanSession is one session template in a plan file.
type PlanSession struct {
	Name      string         `yaml:"name"`
	Exercises []PlanExercise `yaml:"exercises"`
}

// PlanExercise is one exercise in a plan file. TargetSets defaults to 3.
type PlanExercise struct {
	Name       string `yaml:"name"`
	TargetSets int    `yaml:"target_sets"`
}

// Store is the slice of the storage layer seeding needs.
type Store interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	CreateSession(ctx context.Context, name string, order int) (*models.Session, error)
	CreateExercise(ctx context.Context, sessionID uuid.UUID, name string, order, targetSets int) (*models.Exercise, error)
}

// Stats reports what a seeding run created and what already existed.
type Stats struct {
	SessionsCreated  int
	SessionsSkipped  int
	ExercisesCreated int
	ExercisesSkipped int
}

// LoadPlan reads and validates a YAML plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}

	if len(plan.Sessions) == 0 {
		return nil, fmt.Errorf("plan has no sessions")
	}
	for i, s := range plan.Sessions {
		if s.Name == "" {
			return nil, fmt.Errorf("session %d has no name", i+1)
		}
		for j, e := range s.Exercises {
			if e.Name == "" {
				return nil, fmt.Errorf("session %q: exercise %d has no name", s.Name, j+1)
			}
			if e.TargetSets < 0 {
				return nil, fmt.Errorf("session %q: exercise %q has negative target_sets", s.Name, e.Name)
			}
		}
	}

	return &plan, nil
}

// Apply creates the plan's sessions and exercises, matching by name so a
// re-run against an already seeded database creates nothing.
func Apply(ctx context.Context, store Store, plan *Plan, log *slog.Logger) (*Stats, error) {
	existing, err := store.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	byName := make(map[string]models.Session, len(existing))
	for _, s := range existing {
		byName[s.Name] = s
	}

	stats := &Stats{}
	for order, ps := range plan.Sessions {
		session, ok := byName[ps.Name]
		if ok {
			stats.SessionsSkipped++
		} else {
			created, err := store.CreateSession(ctx, ps.Name, order)
			if err != nil {
				return stats, fmt.Errorf("creating session %q: %w", ps.Name, err)
			}
			session = *created
			stats.SessionsCreated++
			log.Info("session created", "name", ps.Name)
		}

		haveExercise := map[string]bool{}
		for _, e := range session.Exercises {
			haveExercise[e.Name] = true
		}

		for exOrder, pe := range ps.Exercises {
			if haveExercise[pe.Name] {
				stats.ExercisesSkipped++
				continue
			}
			targetSets := pe.TargetSets
			if targetSets == 0 {
				targetSets = 3
			}
			if _, err := store.CreateExercise(ctx, session.ID, pe.Name, exOrder, targetSets); err != nil {
				return stats, fmt.Errorf("creating exercise %q in %q: %w", pe.Name, ps.Name, err)
			}
			stats.ExercisesCreated++
			log.Info("exercise created", "session", ps.Name, "name", pe.Name)
		}
	}

	return stats, nil
}
