package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ABeGood/klim-fit/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoWorkoutRepository struct {
	collection *mongo.Collection
}

func NewMongoWorkoutRepository(db *mongo.Database) *MongoWorkoutRepository {
	coll := db.Collection("workouts")

	// Create Index
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mod := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "scheduled_at", Value: -1}},
	}
	coll.Indexes().CreateOne(ctx, mod)

	return &MongoWorkoutRepository{
		collection: coll,
	}
}

func (r *MongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	workout.CreatedAt = time.Now()
	workout.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		workout.ID = oid.Hex()
	}
	return nil
}

func (r *MongoWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var workout domain.Workout
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&workout)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *MongoWorkoutRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Workout, error) {
	opts := options.Find().SetSort(bson.M{"scheduled_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []*domain.Workout
	if err := cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *MongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	oid, err := primitive.ObjectIDFromHex(workout.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	workout.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":         workout.Name,
			"description":  workout.Description,
			"scheduled_at": workout.ScheduledAt,
			"duration_min": workout.DurationMin,
			"completed":    workout.Completed,
			"updated_at":   workout.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}

// Delete removes the workout document only. Deleting its sets is the
// caller's responsibility via ExerciseSetRepository.DeleteByWorkout.
func (r *MongoWorkoutRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}
