// handlers/user_routes.go
package handlers

import (
	"errors"
	"fmt"
	"path/filepath"

	"taskflow-backend/middleware"
	"taskflow-backend/services"
	"taskflow-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, users *services.UserService) {
	secured := app.Group("/users", middleware.UserContextMiddleware(users))

	secured.Get("/me", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		user, err := users.Get(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load user",
				"cause": err.Error(),
			})
		}
		return c.JSON(user)
	})

	secured.Post("/me/avatar", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
		}

		key := fmt.Sprintf("avatars/%s%s", userID, filepath.Ext(fileHeader.Filename))
		url, err := utils.UploadAvatar(fileHeader, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to upload avatar",
				"cause": err.Error(),
			})
		}

		if err := users.SetAvatarURL(userID, url); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to store avatar URL",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"avatar_url": url})
	})
}
