package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a reusable workout template (Push, Pull, Legs, ...) owning an
// ordered list of exercises.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`

	// Populated on list/detail reads.
	Exercises   []Exercise `json:"exercises,omitempty"`
	LastWorkout *Workout   `json:"lastWorkout,omitempty"`
}

// Exercise belongs to a session. TargetSets drives how many set inputs the
// client renders; it is not a hard limit on logged sets.
type Exercise struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"sessionId"`
	Name       string    `json:"name"`
	Order      int       `json:"order"`
	TargetSets int       `json:"targetSets"`
}

// Workout is one training occurrence: a session instantiated on a calendar
// day. Date is date-only ("2006-01-02"); CompletedAt nil means in progress.
type Workout struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   uuid.UUID  `json:"sessionId"`
	Date        string     `json:"date"`
	Notes       *string    `json:"notes"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`

	Session *Session `json:"session,omitempty"`
	Sets    []Set    `json:"sets,omitempty"`
}

// Set is a single logged series. (WorkoutID, ExerciseID, SetNumber) is
// unique; saving the same position again overwrites reps/weight.
type Set struct {
	ID         uuid.UUID `json:"id"`
	WorkoutID  uuid.UUID `json:"workoutId"`
	ExerciseID uuid.UUID `json:"exerciseId"`
	SetNumber  int       `json:"setNumber"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	CreatedAt  time.Time `json:"createdAt"`

	// Exercise is attached on workout detail reads. Nil when the exercise
	// no longer resolves (e.g. restored from an old snapshot).
	Exercise *Exercise `json:"exercise,omitempty"`
}

// SetPerf is a (reps, weight) pair at one set position, used by the
// last/best performance maps. {0, 0} is the explicit "no data at this
// position" sentinel — consumers index positionally without nil checks.
type SetPerf struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}
