package handlers

import (
	"healthdash/internal/app"
	workoutController "healthdash/internal/controllers/workouts"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

type WorkoutHandler struct {
	Handler
	controller *workoutController.WorkoutController
}

func NewWorkoutHandler(app app.App, router fiber.Router) *WorkoutHandler {
	log := logger.New("handlers").File("workout_handler")
	return &WorkoutHandler{
		controller: app.WorkoutController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *WorkoutHandler) Register() {
	workouts := h.router.Group("/workouts", h.middleware.RequireAuth())
	workouts.Post("/", h.createWorkout)
	workouts.Get("/", h.getWorkouts)
	workouts.Get("/range", h.getWorkoutRange)
	workouts.Get("/:id", h.getWorkout)
	workouts.Get("/:id/sets", h.getSets)
	workouts.Put("/:id/complete", h.completeWorkout)
	workouts.Delete("/:id", h.deleteWorkout)
	workouts.Delete("/:id/sets/:setId", h.deleteSet)
}

func (h *WorkoutHandler) ownWorkout(c *fiber.Ctx) (*Workout, error) {
	workout, err := h.controller.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if workout.UserID != currentUser(c).ID {
		return nil, ErrNotFound
	}
	return workout, nil
}

func (h *WorkoutHandler) createWorkout(c *fiber.Ctx) error {
	log := h.log.Function("createWorkout")

	var request CreateWorkoutRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse workout request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse workout request"})
	}
	request.UserID = currentUser(c).ID

	workout, err := h.controller.Create(c.Context(), &request)
	if err != nil {
		log.Er("failed to create workout", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "workout": workout})
}

func (h *WorkoutHandler) getWorkouts(c *fiber.Ctx) error {
	log := h.log.Function("getWorkouts")

	workouts, err := h.controller.ListByUser(c.Context(), currentUser(c).ID)
	if err != nil {
		log.Er("failed to get workouts", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "workouts": workouts})
}

func (h *WorkoutHandler) getWorkoutRange(c *fiber.Ctx) error {
	log := h.log.Function("getWorkoutRange")

	from, err := time.Parse(time.DateOnly, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid from date, expected YYYY-MM-DD"})
	}
	to, err := time.Parse(time.DateOnly, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid to date, expected YYYY-MM-DD"})
	}

	workouts, err := h.controller.GetRange(c.Context(), currentUser(c).ID, from, to)
	if err != nil {
		log.Er("failed to get workout range", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "workouts": workouts})
}

func (h *WorkoutHandler) getWorkout(c *fiber.Ctx) error {
	workout, err := h.ownWorkout(c)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "workout": workout})
}

func (h *WorkoutHandler) getSets(c *fiber.Ctx) error {
	log := h.log.Function("getSets")

	if _, err := h.ownWorkout(c); err != nil {
		return errorResponse(c, err)
	}

	sets, err := h.controller.Sets(c.Context(), c.Params("id"))
	if err != nil {
		log.Er("failed to get workout sets", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "sets": sets})
}

type completeWorkoutRequest struct {
	ActualDistance *float64 `json:"actualDistance"`
	ActualDuration *int     `json:"actualDuration"`
	FeelingScore   *int     `json:"feelingScore"`
}

func (h *WorkoutHandler) completeWorkout(c *fiber.Ctx) error {
	log := h.log.Function("completeWorkout")

	if _, err := h.ownWorkout(c); err != nil {
		return errorResponse(c, err)
	}

	var request completeWorkoutRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse complete request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse complete request"})
	}

	workout, err := h.controller.Complete(c.Context(), c.Params("id"),
		request.ActualDistance, request.ActualDuration, request.FeelingScore)
	if err != nil {
		log.Er("failed to complete workout", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "workout": workout})
}

func (h *WorkoutHandler) deleteWorkout(c *fiber.Ctx) error {
	log := h.log.Function("deleteWorkout")

	if _, err := h.ownWorkout(c); err != nil {
		return errorResponse(c, err)
	}

	if err := h.controller.Delete(c.Context(), c.Params("id")); err != nil {
		log.Er("failed to delete workout", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *WorkoutHandler) deleteSet(c *fiber.Ctx) error {
	log := h.log.Function("deleteSet")

	if _, err := h.ownWorkout(c); err != nil {
		return errorResponse(c, err)
	}

	if err := h.controller.DeleteSet(c.Context(), c.Params("setId")); err != nil {
		log.Er("failed to delete workout set", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
