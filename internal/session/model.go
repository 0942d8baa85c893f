// Package session implements the coach's workout editing session: the
// in-memory composition model, the gesture controller that mediates between
// the interaction surface and persistence, and the per-coach registry.
//
// Nothing in the model is updated optimistically. Every mutation goes to the
// repository first and only the record the repository returns is applied,
// guarded by a selection epoch so confirmations that arrive after the coach
// has moved on are discarded.
package session

import (
	"sort"

	"github.com/ABeGood/klim-fit/internal/domain"
)

// State names the coarse phase of a session.
type State string

const (
	StateIdle            State = "idle"
	StateUserSelected    State = "user_selected"
	StateWorkoutSelected State = "workout_selected"
)

// model is the controller's private working state. All access goes through
// the controller's mutex.
type model struct {
	selectedUser    *domain.User
	selectedWorkout *domain.Workout
	sets            []*domain.ExerciseSet

	draggedExerciseID string
	editingSetID      string
	pendingDeleteID   string

	notifications []Notification
}

func (m *model) state() State {
	switch {
	case m.selectedWorkout != nil:
		return StateWorkoutSelected
	case m.selectedUser != nil:
		return StateUserSelected
	}
	return StateIdle
}

// reset clears every piece of selection-dependent state. Called when the
// selected user changes and when the session ends.
func (m *model) reset() {
	m.selectedUser = nil
	m.selectedWorkout = nil
	m.sets = nil
	m.draggedExerciseID = ""
	m.editingSetID = ""
	m.pendingDeleteID = ""
}

// clearWorkout drops the workout context but keeps the selected user.
func (m *model) clearWorkout() {
	m.selectedWorkout = nil
	m.sets = nil
	m.draggedExerciseID = ""
	m.editingSetID = ""
	m.pendingDeleteID = ""
}

func (m *model) findSet(id string) (*domain.ExerciseSet, bool) {
	for _, s := range m.sets {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// insertSet places a confirmed record at its sorted position. Appending
// blindly is not enough: two creates may confirm in the opposite order of
// their assigned set_order values.
func (m *model) insertSet(set *domain.ExerciseSet) {
	i := sort.Search(len(m.sets), func(i int) bool {
		return m.sets[i].SetOrder > set.SetOrder
	})
	m.sets = append(m.sets, nil)
	copy(m.sets[i+1:], m.sets[i:])
	m.sets[i] = set
}

// replaceSet swaps the element with the same ID. Position in the slice is
// kept so display order never shifts on an edit.
func (m *model) replaceSet(updated *domain.ExerciseSet) bool {
	for i, s := range m.sets {
		if s.ID == updated.ID {
			m.sets[i] = updated
			return true
		}
	}
	return false
}

// removeSet drops the element with the given ID. Surviving set_order values
// are never renumbered; gaps in the sequence are expected.
func (m *model) removeSet(id string) bool {
	for i, s := range m.sets {
		if s.ID == id {
			m.sets = append(m.sets[:i], m.sets[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot is a deep-copied read-only view of the session handed to the
// interaction surface. Mutating a snapshot never touches the live model.
type Snapshot struct {
	State             State                 `json:"state"`
	User              *domain.User          `json:"user,omitempty"`
	Workout           *domain.Workout       `json:"workout,omitempty"`
	Sets              []*domain.ExerciseSet `json:"sets"`
	DraggedExerciseID string                `json:"dragged_exercise_id,omitempty"`
	EditingSetID      string                `json:"editing_set_id,omitempty"`
	PendingDeleteID   string                `json:"pending_delete_id,omitempty"`
	Notifications     []Notification        `json:"notifications"`
}

func (m *model) snapshot() Snapshot {
	snap := Snapshot{
		State:             m.state(),
		DraggedExerciseID: m.draggedExerciseID,
		EditingSetID:      m.editingSetID,
		PendingDeleteID:   m.pendingDeleteID,
		Sets:              make([]*domain.ExerciseSet, 0, len(m.sets)),
	}

	if m.selectedUser != nil {
		u := *m.selectedUser
		snap.User = &u
	}
	if m.selectedWorkout != nil {
		w := *m.selectedWorkout
		snap.Workout = &w
	}
	for _, s := range m.sets {
		snap.Sets = append(snap.Sets, s.Clone())
	}

	snap.Notifications = append([]Notification(nil), m.notifications...)
	return snap
}
