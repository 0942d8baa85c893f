package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ABeGood/klim-fit/internal/catalog"
	"github.com/ABeGood/klim-fit/internal/domain"
	"github.com/ABeGood/klim-fit/internal/schema"
)

// Controller mediates every gesture of one coach's editing session. Each
// operation runs in two phases: preconditions are checked and the current
// epoch captured under the lock, the repository call runs outside the lock,
// and the result is applied back under the lock only if the epoch still
// matches. A selection change in between makes the result stale and it is
// dropped without touching the model.
type Controller struct {
	mu    sync.Mutex
	epoch uint64
	model model

	catalog  *catalog.Catalog
	users    domain.UserRepository
	workouts domain.WorkoutRepository
	sets     domain.ExerciseSetRepository

	now func() time.Time
}

// NewController creates a session controller over an already loaded catalog.
func NewController(cat *catalog.Catalog, users domain.UserRepository, workouts domain.WorkoutRepository, sets domain.ExerciseSetRepository) *Controller {
	return &Controller{
		catalog:  cat,
		users:    users,
		workouts: workouts,
		sets:     sets,
		now:      time.Now,
	}
}

// Catalog exposes the session's exercise catalog for listing and search.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// Snapshot returns a deep-copied view of the session, pruning expired
// notifications first.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.model.pruneNotifications(c.now())
	return c.model.snapshot()
}

// DismissNotification removes a notification before its TTL runs out.
func (c *Controller) DismissNotification(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.model.dismissNotification(id)
}

// SelectUser replaces the session's client. Everything downstream of the
// previous selection (workout, sets, drag, edit, pending delete) is cleared,
// and the epoch bump invalidates any fetch still in flight.
func (c *Controller) SelectUser(ctx context.Context, userID string) error {
	c.mu.Lock()
	c.epoch++
	started := c.epoch
	c.mu.Unlock()

	user, err := c.users.GetByID(ctx, userID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != started {
		return domain.ErrStaleContext
	}
	if err != nil {
		c.model.notify(SeverityError, "Could not load client", c.now())
		return err
	}

	c.model.reset()
	c.model.selectedUser = user
	return nil
}

// SelectWorkout loads a workout of the selected client together with its
// sets. The two fetches run concurrently; both must succeed before anything
// is applied.
func (c *Controller) SelectWorkout(ctx context.Context, workoutID string) error {
	c.mu.Lock()
	if c.model.selectedUser == nil {
		c.mu.Unlock()
		return domain.ErrNoUserSelected
	}
	userID := c.model.selectedUser.ID
	c.epoch++
	started := c.epoch
	c.mu.Unlock()

	var (
		workout *domain.Workout
		sets    []*domain.ExerciseSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		workout, err = c.workouts.GetByID(gctx, workoutID)
		return err
	})
	g.Go(func() error {
		var err error
		sets, err = c.sets.ListByWorkout(gctx, workoutID)
		return err
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != started {
		return domain.ErrStaleContext
	}
	if err != nil {
		c.model.notify(SeverityError, "Could not open workout", c.now())
		return err
	}
	if workout.UserID != userID {
		c.model.notify(SeverityError, "Workout belongs to another client", c.now())
		return domain.ErrWorkoutOwnership
	}

	c.model.clearWorkout()
	c.model.selectedWorkout = workout
	c.model.sets = sets
	return nil
}

// DeselectWorkout returns to the client view, keeping the selected user.
func (c *Controller) DeselectWorkout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model.selectedWorkout == nil {
		return domain.ErrNoWorkoutSelected
	}
	c.epoch++
	c.model.clearWorkout()
	return nil
}

// DragExercise marks an exercise from the catalog as being dragged. Purely
// local; nothing is persisted until Drop.
func (c *Controller) DragExercise(exerciseID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model.selectedWorkout == nil {
		return domain.ErrNoWorkoutSelected
	}
	if _, err := c.catalog.Find(exerciseID); err != nil {
		return err
	}
	c.model.draggedExerciseID = exerciseID
	return nil
}

// CancelDrag clears the pending drag without persisting anything.
func (c *Controller) CancelDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.model.draggedExerciseID = ""
}

// Drop appends a set for the dragged exercise to the selected workout. The
// set is created in the repository first; only the stored record, with its
// assigned ID and order, is merged into the model. A failed create leaves
// the composition exactly as it was.
//
// clientID is the gesture's client-generated identity. The repository treats
// it as an idempotency key, so a retried drop whose first attempt actually
// landed resolves to the already stored record instead of a duplicate. When
// the surface sends none, the controller mints one.
func (c *Controller) Drop(ctx context.Context, clientID string) (*domain.ExerciseSet, error) {
	c.mu.Lock()
	if c.model.selectedWorkout == nil {
		c.mu.Unlock()
		return nil, domain.ErrNoWorkoutSelected
	}
	if c.model.draggedExerciseID == "" {
		c.mu.Unlock()
		return nil, domain.ErrNoDraggedExercise
	}
	ex, err := c.catalog.Find(c.model.draggedExerciseID)
	if err != nil {
		c.model.draggedExerciseID = ""
		c.mu.Unlock()
		return nil, err
	}
	if clientID == "" {
		clientID = ulid.Make().String()
	}
	set := &domain.ExerciseSet{
		ClientID:     clientID,
		WorkoutID:    c.model.selectedWorkout.ID,
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
	}
	started := c.epoch
	c.mu.Unlock()

	err = c.sets.Create(ctx, set)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != started {
		return nil, domain.ErrStaleContext
	}
	if err != nil {
		c.model.notify(SeverityError, fmt.Sprintf("Could not add %s", ex.Name), c.now())
		return nil, err
	}

	if existing, ok := c.model.findSet(set.ID); ok {
		// Retry of a drop that already confirmed.
		c.model.draggedExerciseID = ""
		return existing.Clone(), nil
	}
	c.model.insertSet(set)
	c.model.draggedExerciseID = ""
	c.model.notify(SeveritySuccess, fmt.Sprintf("Added %s", ex.Name), c.now())
	return set.Clone(), nil
}

// OpenSet puts one set into editing.
func (c *Controller) OpenSet(setID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model.selectedWorkout == nil {
		return domain.ErrNoWorkoutSelected
	}
	if _, ok := c.model.findSet(setID); !ok {
		return domain.ErrSetNotFound
	}
	c.model.editingSetID = setID
	return nil
}

// CloseSet leaves set editing without saving.
func (c *Controller) CloseSet() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.model.editingSetID = ""
}

// SubmitSetForm validates a form submission against the set's exercise and
// applies it through the repository. The whole patch is rejected on the
// first invalid field; a rejected or failed submit leaves the set untouched.
func (c *Controller) SubmitSetForm(ctx context.Context, setID string, form map[string]string) (*domain.ExerciseSet, error) {
	c.mu.Lock()
	if c.model.selectedWorkout == nil {
		c.mu.Unlock()
		return nil, domain.ErrNoWorkoutSelected
	}
	set, ok := c.model.findSet(setID)
	if !ok {
		c.mu.Unlock()
		return nil, domain.ErrSetNotFound
	}
	ex, err := c.catalog.Find(set.ExerciseID)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}

	patch, err := schema.ParseForm(form)
	if err == nil {
		err = schema.Validate(ex, patch)
	}
	if err != nil {
		c.model.notify(SeverityError, fmt.Sprintf("Invalid value for %s", ex.Name), c.now())
		c.mu.Unlock()
		return nil, err
	}
	started := c.epoch
	c.mu.Unlock()

	updated, err := c.sets.ApplyPatch(ctx, setID, patch.Fields())

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != started {
		return nil, domain.ErrStaleContext
	}
	if err != nil {
		c.model.notify(SeverityError, fmt.Sprintf("Could not save %s", ex.Name), c.now())
		return nil, err
	}

	c.model.replaceSet(updated)
	if c.model.editingSetID == setID {
		c.model.editingSetID = ""
	}
	c.model.notify(SeveritySuccess, fmt.Sprintf("Saved %s", ex.Name), c.now())
	return updated.Clone(), nil
}

// RequestRemoveSet stages a destructive removal. Nothing is deleted until
// the coach confirms.
func (c *Controller) RequestRemoveSet(setID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model.selectedWorkout == nil {
		return domain.ErrNoWorkoutSelected
	}
	set, ok := c.model.findSet(setID)
	if !ok {
		return domain.ErrSetNotFound
	}
	c.model.pendingDeleteID = setID
	c.model.notify(SeverityWarning, fmt.Sprintf("Remove %s? Confirm to delete.", set.ExerciseName), c.now())
	return nil
}

// CancelRemoveSet abandons the staged removal.
func (c *Controller) CancelRemoveSet() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model.pendingDeleteID == "" {
		return domain.ErrNoPendingDelete
	}
	c.model.pendingDeleteID = ""
	return nil
}

// ConfirmRemoveSet deletes the staged set. Surviving sets keep their order
// values; the sequence simply grows a gap.
func (c *Controller) ConfirmRemoveSet(ctx context.Context) error {
	c.mu.Lock()
	if c.model.pendingDeleteID == "" {
		c.mu.Unlock()
		return domain.ErrNoPendingDelete
	}
	setID := c.model.pendingDeleteID
	set, ok := c.model.findSet(setID)
	if !ok {
		c.model.pendingDeleteID = ""
		c.mu.Unlock()
		return domain.ErrSetNotFound
	}
	name := set.ExerciseName
	started := c.epoch
	c.mu.Unlock()

	err := c.sets.Delete(ctx, setID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != started {
		return domain.ErrStaleContext
	}
	if err != nil {
		c.model.notify(SeverityError, fmt.Sprintf("Could not remove %s", name), c.now())
		return err
	}

	c.model.removeSet(setID)
	c.model.pendingDeleteID = ""
	if c.model.editingSetID == setID {
		c.model.editingSetID = ""
	}
	c.model.notify(SeveritySuccess, fmt.Sprintf("Removed %s", name), c.now())
	return nil
}

// End tears the session down. Any in-flight result is invalidated.
func (c *Controller) End() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	c.model.reset()
	c.model.notifications = nil
}
