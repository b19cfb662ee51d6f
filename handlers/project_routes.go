// handlers/project_routes.go
package handlers

import (
	"errors"

	"taskflow-backend/middleware"
	"taskflow-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProjectRoutes(app *fiber.App, users *services.UserService, projects *services.ProjectService, tasks *services.TaskService) {
	secured := app.Group("/projects", middleware.UserContextMiddleware(users))

	secured.Post("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		project, err := projects.Create(req.Name, req.Description, userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create project",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(project)
	})

	secured.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := projects.ListForUser(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list projects",
				"cause": err.Error(),
			})
		}
		return c.JSON(list)
	})

	secured.Get("/:idOrSlug", func(c *fiber.Ctx) error {
		project, err := projects.Get(c.Params("idOrSlug"))
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load project",
				"cause": err.Error(),
			})
		}
		return c.JSON(project)
	})

	secured.Get("/:id/tasks", func(c *fiber.Ctx) error {
		list, err := tasks.ListByProject(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list tasks",
				"cause": err.Error(),
			})
		}
		return c.JSON(list)
	})

	secured.Post("/:id/members", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		if err := projects.AddMember(c.Params("id"), req.UserID); err != nil {
			switch {
			case errors.Is(err, services.ErrProjectNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to add member",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"message": "member added"})
	})
}
