package session

import (
	"context"
	"sync"

	"github.com/ABeGood/klim-fit/internal/catalog"
	"github.com/ABeGood/klim-fit/internal/domain"
)

// Manager keeps one live editing session per coach. A session is created
// lazily on the first gesture, with its own catalog snapshot, and removed on
// End.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Controller

	exercises domain.ExerciseRepository
	users     domain.UserRepository
	workouts  domain.WorkoutRepository
	sets      domain.ExerciseSetRepository
}

// NewManager creates a session registry over the persistence repositories.
func NewManager(exercises domain.ExerciseRepository, users domain.UserRepository, workouts domain.WorkoutRepository, sets domain.ExerciseSetRepository) *Manager {
	return &Manager{
		sessions:  make(map[string]*Controller),
		exercises: exercises,
		users:     users,
		workouts:  workouts,
		sets:      sets,
	}
}

// Session returns the coach's live session, creating one with a freshly
// loaded catalog if none exists.
func (m *Manager) Session(ctx context.Context, coachID string) (*Controller, error) {
	m.mu.Lock()
	if ctrl, ok := m.sessions[coachID]; ok {
		m.mu.Unlock()
		return ctrl, nil
	}
	m.mu.Unlock()

	// Load the catalog outside the registry lock; session creation may
	// hit storage.
	cat, err := catalog.Load(ctx, m.exercises)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have created the session meanwhile.
	if ctrl, ok := m.sessions[coachID]; ok {
		return ctrl, nil
	}

	ctrl := NewController(cat, m.users, m.workouts, m.sets)
	m.sessions[coachID] = ctrl
	return ctrl, nil
}

// End tears down the coach's session if one exists.
func (m *Manager) End(coachID string) {
	m.mu.Lock()
	ctrl, ok := m.sessions[coachID]
	if ok {
		delete(m.sessions, coachID)
	}
	m.mu.Unlock()

	if ok {
		ctrl.End()
	}
}
