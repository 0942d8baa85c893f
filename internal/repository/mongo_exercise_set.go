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

type MongoExerciseSetRepository struct {
	collection *mongo.Collection
}

func NewMongoExerciseSetRepository(db *mongo.Database) *MongoExerciseSetRepository {
	coll := db.Collection("exercise_sets")

	// Create Index
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mods := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workout_id", Value: 1}, {Key: "set_order", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	coll.Indexes().CreateMany(ctx, mods)

	return &MongoExerciseSetRepository{
		collection: coll,
	}
}

// Create inserts a set at the end of its workout. The position is
// max(set_order)+1 rather than a count, so orders stay unique even after
// deletions leave gaps in the sequence. When the set carries a ClientID the
// insert is idempotent: a record already stored under that identity is
// returned instead of a duplicate.
func (r *MongoExerciseSetRepository) Create(ctx context.Context, set *domain.ExerciseSet) error {
	if set.ClientID != "" {
		var existing domain.ExerciseSet
		err := r.collection.FindOne(ctx, bson.M{"client_id": set.ClientID}).Decode(&existing)
		if err == nil {
			*set = existing
			return nil
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("failed to look up client id: %w", err)
		}
	}

	next, err := r.nextSetOrder(ctx, set.WorkoutID)
	if err != nil {
		return fmt.Errorf("failed to resolve set order: %w", err)
	}
	set.SetOrder = next
	set.CreatedAt = time.Now()
	set.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, set)
	if err != nil {
		// A concurrent retry may have landed between the lookup and the
		// insert; the sparse unique index on client_id surfaces it here.
		if mongo.IsDuplicateKeyError(err) && set.ClientID != "" {
			var existing domain.ExerciseSet
			if ferr := r.collection.FindOne(ctx, bson.M{"client_id": set.ClientID}).Decode(&existing); ferr == nil {
				*set = existing
				return nil
			}
		}
		return fmt.Errorf("failed to create exercise set: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		set.ID = oid.Hex()
	}
	return nil
}

func (r *MongoExerciseSetRepository) nextSetOrder(ctx context.Context, workoutID string) (int, error) {
	opts := options.FindOne().SetSort(bson.M{"set_order": -1})

	var last domain.ExerciseSet
	err := r.collection.FindOne(ctx, bson.M{"workout_id": workoutID}, opts).Decode(&last)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 1, nil
		}
		return 0, err
	}
	return last.SetOrder + 1, nil
}

func (r *MongoExerciseSetRepository) GetByID(ctx context.Context, id string) (*domain.ExerciseSet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var set domain.ExerciseSet
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&set)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSetNotFound
		}
		return nil, err
	}
	return &set, nil
}

func (r *MongoExerciseSetRepository) ListByWorkout(ctx context.Context, workoutID string) ([]*domain.ExerciseSet, error) {
	opts := options.Find().SetSort(bson.M{"set_order": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"workout_id": workoutID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []*domain.ExerciseSet
	if err := cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// ApplyPatch updates the named fields on one set and returns the updated
// document. A nil value unsets the field. Fields not named are untouched.
func (r *MongoExerciseSetRepository) ApplyPatch(ctx context.Context, id string, fields map[string]interface{}) (*domain.ExerciseSet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	set := bson.M{"updated_at": time.Now()}
	unset := bson.M{}
	for name, value := range fields {
		if value == nil {
			unset[name] = ""
			continue
		}
		set[name] = value
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.ExerciseSet
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSetNotFound
		}
		return nil, fmt.Errorf("failed to patch exercise set: %w", err)
	}
	return &updated, nil
}

// Delete removes one set. Remaining orders are not renumbered; gaps in
// set_order are expected and preserved.
func (r *MongoExerciseSetRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrSetNotFound
	}
	return nil
}

func (r *MongoExerciseSetRepository) DeleteByWorkout(ctx context.Context, workoutID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"workout_id": workoutID})
	return err
}
