package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ABeGood/klim-fit/internal/domain"
)

// ClientHandler covers the coach's client roster and the persisted workout
// plans hanging off it.
type ClientHandler struct {
	userRepo    domain.UserRepository
	workoutRepo domain.WorkoutRepository
	setRepo     domain.ExerciseSetRepository
}

func NewClientHandler(userRepo domain.UserRepository, workoutRepo domain.WorkoutRepository, setRepo domain.ExerciseSetRepository) *ClientHandler {
	return &ClientHandler{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		setRepo:     setRepo,
	}
}

// --- Clients ---

func (h *ClientHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(users)
}

func (h *ClientHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(user)
}

func (h *ClientHandler) CreateUser(c *fiber.Ctx) error {
	var req domain.User
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.userRepo.Create(c.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *ClientHandler) UpdateUser(c *fiber.Ctx) error {
	var req domain.User
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.ID = c.Params("id")
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.userRepo.Update(c.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(req)
}

// --- Workouts ---

func (h *ClientHandler) ListWorkouts(c *fiber.Ctx) error {
	userID := c.Params("id")
	if _, err := h.userRepo.GetByID(c.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	workouts, err := h.workoutRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(workouts)
}

func (h *ClientHandler) CreateWorkout(c *fiber.Ctx) error {
	userID := c.Params("id")
	if _, err := h.userRepo.GetByID(c.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var req domain.Workout
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.UserID = userID
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Workout name is required"})
	}
	if err := h.workoutRepo.Create(c.Context(), &req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *ClientHandler) GetWorkout(c *fiber.Ctx) error {
	workout, err := h.workoutRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrWorkoutNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(workout)
}

// DeleteWorkout removes a workout together with every set that belongs to it.
func (h *ClientHandler) DeleteWorkout(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.workoutRepo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrWorkoutNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.setRepo.DeleteByWorkout(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// --- Sets ---

func (h *ClientHandler) ListWorkoutSets(c *fiber.Ctx) error {
	workoutID := c.Params("id")
	if _, err := h.workoutRepo.GetByID(c.Context(), workoutID); err != nil {
		if errors.Is(err, domain.ErrWorkoutNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	sets, err := h.setRepo.ListByWorkout(c.Context(), workoutID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sets)
}
