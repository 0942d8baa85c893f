package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrDuplicateExercise = errors.New("exercise name already exists")
)

// Exercise is an entry in the global library. The four capability flags
// declare which performance parameters are meaningful for it; a set of this
// exercise may only carry values for the flagged parameters.
type Exercise struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"` // Unique index
	Description  string    `json:"description" bson:"description"`
	HasReps      bool      `json:"has_reps" bson:"has_reps"`
	HasWeightKg  bool      `json:"has_weight_kg" bson:"has_weight_kg"`
	HasDurationS bool      `json:"has_duration_s" bson:"has_duration_s"`
	HasDistanceM bool      `json:"has_distance_m" bson:"has_distance_m"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Validate enforces library rules: a name, and at least one capability flag.
func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("exercise name cannot be empty")
	}
	if !e.HasReps && !e.HasWeightKg && !e.HasDurationS && !e.HasDistanceM {
		return errors.New("exercise must have at least one parameter type")
	}
	return nil
}

// ParameterSummary is a human-readable list of the flagged parameters.
func (e *Exercise) ParameterSummary() string {
	var types []string
	if e.HasReps {
		types = append(types, "reps")
	}
	if e.HasWeightKg {
		types = append(types, "weight_kg")
	}
	if e.HasDurationS {
		types = append(types, "duration_s")
	}
	if e.HasDistanceM {
		types = append(types, "distance_m")
	}
	if len(types) == 0 {
		return "no parameters"
	}
	return strings.Join(types, ", ")
}

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *Exercise) error
	GetByID(ctx context.Context, id string) (*Exercise, error)
	List(ctx context.Context, filter map[string]interface{}) ([]*Exercise, error)
	Update(ctx context.Context, exercise *Exercise) error
	Delete(ctx context.Context, id string) error
}
