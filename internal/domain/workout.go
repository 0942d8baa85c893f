package domain

import (
	"context"
	"errors"
	"time"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// Workout belongs to exactly one client and owns an ordered sequence of
// exercise sets. Deleting a workout cascades to its sets.
type Workout struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	UserID      string     `json:"user_id" bson:"user_id"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty" bson:"scheduled_at,omitempty"`
	DurationMin *int       `json:"duration_min,omitempty" bson:"duration_min,omitempty"`
	Completed   bool       `json:"completed" bson:"completed"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

type WorkoutRepository interface {
	Create(ctx context.Context, workout *Workout) error
	GetByID(ctx context.Context, id string) (*Workout, error)
	ListByUser(ctx context.Context, userID string) ([]*Workout, error)
	Update(ctx context.Context, workout *Workout) error
	// Delete removes the workout document only; the caller cascades to sets
	// via ExerciseSetRepository.DeleteByWorkout.
	Delete(ctx context.Context, id string) error
}
