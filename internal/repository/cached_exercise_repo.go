package repository

import (
	"context"
	"time"

	"github.com/ABeGood/klim-fit/internal/domain"
)

const (
	exerciseByIDKeyPrefix = "exercise:id:"
	exerciseListKey       = "exercise:list"
	exerciseCacheTTL      = 10 * time.Minute
)

// CachedExerciseRepository wraps MongoExerciseRepository with Redis caching.
// The exercise catalog changes rarely and is read on every session start,
// which makes it the one hot read path worth caching.
type CachedExerciseRepository struct {
	mongo *MongoExerciseRepository
	cache *RedisCacheRepository
}

// NewCachedExerciseRepository creates a new cached exercise repository
func NewCachedExerciseRepository(mongo *MongoExerciseRepository, cache *RedisCacheRepository) *CachedExerciseRepository {
	return &CachedExerciseRepository{
		mongo: mongo,
		cache: cache,
	}
}

// GetByID retrieves an exercise by ID with caching
func (r *CachedExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	key := exerciseByIDKeyPrefix + id

	// Try cache first
	var ex domain.Exercise
	if err := r.cache.Get(ctx, key, &ex); err == nil {
		return &ex, nil
	}

	// Cache miss - fetch from MongoDB
	result, err := r.mongo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Store in cache (ignore cache errors)
	_ = r.cache.Set(ctx, key, result, exerciseCacheTTL)

	return result, nil
}

// List retrieves exercises with caching on the unfiltered listing only.
// Name searches always go to MongoDB.
func (r *CachedExerciseRepository) List(ctx context.Context, filter map[string]interface{}) ([]*domain.Exercise, error) {
	if name, ok := filter["name"].(string); ok && name != "" {
		return r.mongo.List(ctx, filter)
	}

	var exercises []*domain.Exercise
	if err := r.cache.Get(ctx, exerciseListKey, &exercises); err == nil {
		return exercises, nil
	}

	result, err := r.mongo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, exerciseListKey, result, exerciseCacheTTL)

	return result, nil
}

// Create creates an exercise and invalidates the catalog listing
func (r *CachedExerciseRepository) Create(ctx context.Context, ex *domain.Exercise) error {
	if err := r.mongo.Create(ctx, ex); err != nil {
		return err
	}

	_ = r.cache.Delete(ctx, exerciseListKey)
	return nil
}

// Update updates an exercise and invalidates caches
func (r *CachedExerciseRepository) Update(ctx context.Context, ex *domain.Exercise) error {
	if err := r.mongo.Update(ctx, ex); err != nil {
		return err
	}

	_ = r.cache.Delete(ctx, exerciseByIDKeyPrefix+ex.ID, exerciseListKey)
	return nil
}

// Delete deletes an exercise and invalidates caches
func (r *CachedExerciseRepository) Delete(ctx context.Context, id string) error {
	if err := r.mongo.Delete(ctx, id); err != nil {
		return err
	}

	_ = r.cache.Delete(ctx, exerciseByIDKeyPrefix+id, exerciseListKey)
	return nil
}
