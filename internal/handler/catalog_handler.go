package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ABeGood/klim-fit/internal/domain"
)

// CatalogHandler exposes CRUD over the exercise library. Simple persistence
// goes straight to the repository; the editing session keeps its own
// snapshot of this catalog.
type CatalogHandler struct {
	exerciseRepo domain.ExerciseRepository
}

func NewCatalogHandler(exerciseRepo domain.ExerciseRepository) *CatalogHandler {
	return &CatalogHandler{
		exerciseRepo: exerciseRepo,
	}
}

func (h *CatalogHandler) ListExercises(c *fiber.Ctx) error {
	nameFilter := c.Query("name")
	filter := make(map[string]interface{})
	if nameFilter != "" {
		filter["name"] = nameFilter
	}
	// public
	exs, err := h.exerciseRepo.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(exs)
}

func (h *CatalogHandler) GetExercise(c *fiber.Ctx) error {
	ex, err := h.exerciseRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrExerciseNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ex)
}

func (h *CatalogHandler) CreateExercise(c *fiber.Ctx) error {
	var req domain.Exercise
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.exerciseRepo.Create(c.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrDuplicateExercise) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Exercise name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *CatalogHandler) UpdateExercise(c *fiber.Ctx) error {
	var req domain.Exercise
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.ID = c.Params("id")
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.exerciseRepo.Update(c.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrExerciseNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
		}
		if errors.Is(err, domain.ErrDuplicateExercise) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Exercise name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(req)
}

func (h *CatalogHandler) DeleteExercise(c *fiber.Ctx) error {
	if err := h.exerciseRepo.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrExerciseNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
