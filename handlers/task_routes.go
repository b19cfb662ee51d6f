// handlers/task_routes.go
package handlers

import (
	"errors"

	"taskflow-backend/middleware"
	"taskflow-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTaskRoutes(app *fiber.App, users *services.UserService, tasks *services.TaskService, comments *services.CommentService) {
	secured := app.Group("/tasks", middleware.UserContextMiddleware(users))

	secured.Post("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var input services.CreateTaskInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		task, err := tasks.Create(input, userID)
		if err != nil {
			if errors.Is(err, services.ErrInvalidPriority) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create task",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(task)
	})

	secured.Get("/:id", func(c *fiber.Ctx) error {
		task, err := tasks.Get(c.Params("id"))
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "task not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load task",
				"cause": err.Error(),
			})
		}
		return c.JSON(task)
	})

	secured.Patch("/:id/status", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		task, err := tasks.UpdateStatus(c.Params("id"), req.Status, userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTaskNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "task not found"})
			case errors.Is(err, services.ErrConflict):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": "concurrent update, please retry",
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to update status",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(task)
	})

	secured.Get("/:id/comments", func(c *fiber.Ctx) error {
		list, err := comments.ListByTask(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load comments",
				"cause": err.Error(),
			})
		}
		return c.JSON(list)
	})

	secured.Post("/:id/comments", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		comment, err := comments.Create(c.Params("id"), userID, req.Content)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "task not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create comment",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	})
}
