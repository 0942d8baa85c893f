package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ABeGood/klim-fit/internal/config"
	"github.com/ABeGood/klim-fit/internal/domain"
	"github.com/ABeGood/klim-fit/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	repo := repository.NewMongoExerciseRepository(db)

	exercises := []domain.Exercise{
		// Strength
		{Name: "Barbell Squat", Description: "Back squat with a barbell", HasReps: true, HasWeightKg: true},
		{Name: "Bench Press", Description: "Flat barbell bench press", HasReps: true, HasWeightKg: true},
		{Name: "Deadlift", Description: "Conventional barbell deadlift", HasReps: true, HasWeightKg: true},
		{Name: "Overhead Press", Description: "Standing barbell press", HasReps: true, HasWeightKg: true},
		{Name: "Barbell Row", Description: "Bent-over barbell row", HasReps: true, HasWeightKg: true},
		{Name: "Dumbbell Lunge", Description: "Walking lunge with dumbbells", HasReps: true, HasWeightKg: true},

		// Bodyweight
		{Name: "Push Up", Description: "Standard push up", HasReps: true},
		{Name: "Pull Up", Description: "Strict pull up", HasReps: true},
		{Name: "Air Squat", Description: "Bodyweight squat", HasReps: true},

		// Isometric / timed
		{Name: "Plank", Description: "Front plank hold", HasDurationS: true},
		{Name: "Wall Sit", Description: "Static wall sit", HasDurationS: true},
		{Name: "Dead Hang", Description: "Passive bar hang", HasDurationS: true},

		// Cardio
		{Name: "Running", Description: "Outdoor or treadmill run", HasDurationS: true, HasDistanceM: true},
		{Name: "Rowing", Description: "Rowing machine", HasDurationS: true, HasDistanceM: true},
		{Name: "Cycling", Description: "Stationary bike or road", HasDurationS: true, HasDistanceM: true},
		{Name: "Farmer Carry", Description: "Loaded carry over distance", HasWeightKg: true, HasDistanceM: true},
	}

	seeded, skipped := 0, 0
	for i := range exercises {
		ex := exercises[i]
		if err := ex.Validate(); err != nil {
			log.Fatalf("Invalid seed entry %q: %v", ex.Name, err)
		}
		if err := repo.Create(ctx, &ex); err != nil {
			if err == domain.ErrDuplicateExercise {
				skipped++
				continue
			}
			log.Fatalf("Failed to seed %q: %v", ex.Name, err)
		}
		seeded++
	}

	fmt.Printf("Seeded %d exercises (%d already present)\n", seeded, skipped)
}
