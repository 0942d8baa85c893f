package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ABeGood/klim-fit/internal/domain"
	"github.com/ABeGood/klim-fit/internal/middleware"
	"github.com/ABeGood/klim-fit/internal/schema"
	"github.com/ABeGood/klim-fit/internal/session"
)

// SessionHandler adapts the coach's editing-session gestures onto the
// controller. Every gesture response carries a fresh snapshot so the surface
// re-renders from server state, never from what it sent.
type SessionHandler struct {
	sessions *session.Manager
}

func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

func (h *SessionHandler) controller(c *fiber.Ctx) (*session.Controller, error) {
	coachID, _ := c.Locals(middleware.CoachIDKey).(string)
	return h.sessions.Session(c.Context(), coachID)
}

// respond maps a gesture outcome onto a status code. A stale result means
// the coach already moved on; the current snapshot is the right answer and
// no error is surfaced.
func respond(c *fiber.Ctx, ctrl *session.Controller, err error) error {
	if err == nil || errors.Is(err, domain.ErrStaleContext) {
		return c.JSON(ctrl.Snapshot())
	}

	status := fiber.StatusInternalServerError
	var ve *schema.ValidationError
	switch {
	case errors.As(err, &ve):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNoUserSelected),
		errors.Is(err, domain.ErrNoWorkoutSelected),
		errors.Is(err, domain.ErrNoDraggedExercise),
		errors.Is(err, domain.ErrNoPendingDelete),
		errors.Is(err, domain.ErrWorkoutOwnership):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrWorkoutNotFound),
		errors.Is(err, domain.ErrExerciseNotFound),
		errors.Is(err, domain.ErrSetNotFound),
		errors.Is(err, domain.ErrInvalidID):
		status = fiber.StatusNotFound
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   err.Error(),
		"session": ctrl.Snapshot(),
	})
}

func (h *SessionHandler) GetSnapshot(c *fiber.Ctx) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ctrl.Snapshot())
}

func (h *SessionHandler) EndSession(c *fiber.Ctx) error {
	coachID, _ := c.Locals(middleware.CoachIDKey).(string)
	h.sessions.End(coachID)
	return c.JSON(fiber.Map{"message": "session ended"})
}

// ListCatalog serves the session's own catalog snapshot, with optional name
// search.
func (h *SessionHandler) ListCatalog(c *fiber.Ctx) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ctrl.Catalog().Search(c.Query("name")))
}

func (h *SessionHandler) SelectUser(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return respond(c, ctrl, ctrl.SelectUser(c.Context(), req.UserID))
}

func (h *SessionHandler) SelectWorkout(c *fiber.Ctx) error {
	var req struct {
		WorkoutID string `json:"workout_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return respond(c, ctrl, ctrl.SelectWorkout(c.Context(), req.WorkoutID))
}

func (h *SessionHandler) DeselectWorkout(c *fiber.Ctx) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return respond(c, ctrl, ctrl.DeselectWorkout())
}

func (h *SessionHandler) DragExercise(c *fiber.Ctx) error {
	var req struct {
		ExerciseID string `json:"exercise_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return respond(c, ctrl, ctrl.DragExercise(req.ExerciseID))
}

func (h *SessionHandler) CancelDrag(c *fiber.Ctx) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	ctrl.CancelDrag()
	return c.JSON(ctrl.Snapshot())
}

func (h *SessionHandler) Drop(c *fiber.Ctx) error {
	// The body is optional: a surface that wants retry idempotency sends a
	// client-generated id, otherwise the controller mints one.
	var req struct {
		ClientID string `json:"client_id"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
		}
	}

	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	_, dropErr := ctrl.Drop(c.Context(), req.ClientID)
	return respond(c, ctrl, dropErr)
}

func (h *SessionHandler) OpenSet(c *fiber.Ctx) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return respond(c, ctrl, ctrl.OpenSet(c.Params("id")))
}

func (h *SessionHandler) CloseSet(c *fiber.Ctx) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	ctrl.CloseSet()
	return c.JSON(ctrl.Snapshot())
}

// SubmitSet takes the raw text fields of the set form. Coercion and
// validation happen in the session core against the set's exercise.
func (h *SessionHandler) SubmitSet(c *fiber.Ctx) error {
	var req struct {
		Fields map[string]string `json:"fields"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	_, submitErr := ctrl.SubmitSetForm(c.Context(), c.Params("id"), req.Fields)
	return respond(c, ctrl, submitErr)
}

func (h *SessionHandler) RequestRemoveSet(c *fiber.Ctx) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return respond(c, ctrl, ctrl.RequestRemoveSet(c.Params("id")))
}

func (h *SessionHandler) ConfirmRemoveSet(c *fiber.Ctx) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return respond(c, ctrl, ctrl.ConfirmRemoveSet(c.Context()))
}

func (h *SessionHandler) CancelRemoveSet(c *fiber.Ctx) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return respond(c, ctrl, ctrl.CancelRemoveSet())
}

func (h *SessionHandler) DismissNotification(c *fiber.Ctx) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	ctrl.DismissNotification(c.Params("id"))
	return c.JSON(ctrl.Snapshot())
}
