package domain

import (
	"context"
	"errors"
	"time"
)

var ErrSetNotFound = errors.New("exercise set not found")

// ExerciseSet is one planned or performed instance of an exercise inside a
// workout. SetOrder is 1-based and unique within the workout; it defines
// display and execution order. Performance values are nullable; which of
// them may be non-null is governed by the exercise's capability flags,
// except rest which is always settable.
type ExerciseSet struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	ClientID     string    `json:"client_id,omitempty" bson:"client_id,omitempty"` // Gesture identity, idempotency key for create
	WorkoutID    string    `json:"workout_id" bson:"workout_id"`
	ExerciseID   string    `json:"exercise_id" bson:"exercise_id"`
	ExerciseName string    `json:"exercise_name" bson:"exercise_name"` // Denormalized for display
	SetOrder     int       `json:"set_order" bson:"set_order"`
	Reps         *int      `json:"reps,omitempty" bson:"reps,omitempty"`
	WeightKg     *float64  `json:"weight_kg,omitempty" bson:"weight_kg,omitempty"`
	DurationS    *int      `json:"duration_s,omitempty" bson:"duration_s,omitempty"`
	DistanceM    *float64  `json:"distance_m,omitempty" bson:"distance_m,omitempty"`
	RestS        *int      `json:"rest_s,omitempty" bson:"rest_s,omitempty"`
	Completed    bool      `json:"completed" bson:"completed"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Clone returns a deep copy so snapshots cannot alias live model state.
func (s *ExerciseSet) Clone() *ExerciseSet {
	out := *s
	out.Reps = clonePtr(s.Reps)
	out.WeightKg = clonePtr(s.WeightKg)
	out.DurationS = clonePtr(s.DurationS)
	out.DistanceM = clonePtr(s.DistanceM)
	out.RestS = clonePtr(s.RestS)
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ExerciseSetRepository handles CRUD for the exercise_sets collection.
// Create assigns the identifier and the next set_order server-side and is
// idempotent on ClientID; delete never renumbers the surviving orders.
type ExerciseSetRepository interface {
	Create(ctx context.Context, set *ExerciseSet) error
	GetByID(ctx context.Context, id string) (*ExerciseSet, error)
	// ListByWorkout returns the workout's sets ordered by set_order ascending.
	ListByWorkout(ctx context.Context, workoutID string) ([]*ExerciseSet, error)
	// ApplyPatch sets the given fields (nil value unsets the field) and
	// returns the updated document, which is authoritative for final values.
	ApplyPatch(ctx context.Context, id string, fields map[string]interface{}) (*ExerciseSet, error)
	Delete(ctx context.Context, id string) error
	// DeleteByWorkout removes all sets of a workout (cascade).
	DeleteByWorkout(ctx context.Context, workoutID string) error
}
