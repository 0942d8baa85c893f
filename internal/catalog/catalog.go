// Package catalog holds the session-scoped read model of the exercise
// library. A catalog is loaded once when a coach session starts and answers
// lookups for the rest of the session without further repository calls.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ABeGood/klim-fit/internal/domain"
)

// Catalog is an immutable snapshot of the exercise library.
type Catalog struct {
	exercises []*domain.Exercise
	byID      map[string]*domain.Exercise
}

// Load fetches the full exercise library through the repository and builds
// the lookup index.
func Load(ctx context.Context, repo domain.ExerciseRepository) (*Catalog, error) {
	exercises, err := repo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercise catalog: %w", err)
	}

	byID := make(map[string]*domain.Exercise, len(exercises))
	for _, ex := range exercises {
		byID[ex.ID] = ex
	}

	return &Catalog{
		exercises: exercises,
		byID:      byID,
	}, nil
}

// List returns all exercises sorted by name.
func (c *Catalog) List() []*domain.Exercise {
	out := make([]*domain.Exercise, len(c.exercises))
	copy(out, c.exercises)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Find returns the exercise with the given ID or ErrExerciseNotFound.
func (c *Catalog) Find(id string) (*domain.Exercise, error) {
	ex, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrExerciseNotFound
	}
	return ex, nil
}

// Search returns exercises whose name contains the query, case-insensitive.
func (c *Catalog) Search(query string) []*domain.Exercise {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.List()
	}

	var out []*domain.Exercise
	for _, ex := range c.List() {
		if strings.Contains(strings.ToLower(ex.Name), query) {
			out = append(out, ex)
		}
	}
	return out
}

// Len reports the number of exercises in the catalog.
func (c *Catalog) Len() int {
	return len(c.exercises)
}
