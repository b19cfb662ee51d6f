// handlers/gamification_routes.go
package handlers

import (
	"errors"
	"strconv"

	"taskflow-backend/middleware"
	"taskflow-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGamificationRoutes(app *fiber.App, users *services.UserService, gamification *services.GamificationService, badges *services.BadgeService, notifications *services.NotificationService) {
	secured := app.Group("/gamification", middleware.UserContextMiddleware(users))

	secured.Get("/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, err := gamification.GetProfile(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(profile)
	})

	secured.Get("/ranking", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		ranking, err := gamification.GetGlobalRanking(limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load ranking",
				"cause": err.Error(),
			})
		}
		return c.JSON(ranking)
	})

	secured.Get("/heatmap", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		days, _ := strconv.Atoi(c.Query("days", "90"))
		heatmap, err := gamification.GetActivityHeatmap(userID, days)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load heatmap",
				"cause": err.Error(),
			})
		}
		return c.JSON(heatmap)
	})

	secured.Get("/badges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		earned, err := badges.UserBadges(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load badges",
				"cause": err.Error(),
			})
		}
		return c.JSON(earned)
	})

	secured.Get("/badges/catalog", func(c *fiber.Ctx) error {
		catalog, err := badges.AllBadges()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load badge catalog",
				"cause": err.Error(),
			})
		}
		return c.JSON(catalog)
	})

	secured.Get("/notifications", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		unreadOnly := c.Query("unread") == "true"
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		list, err := notifications.List(userID, unreadOnly, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load notifications",
				"cause": err.Error(),
			})
		}
		return c.JSON(list)
	})

	secured.Post("/notifications/:id/read", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := notifications.MarkRead(userID, c.Params("id")); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "notification not found"})
		}
		return c.JSON(fiber.Map{"message": "marked as read"})
	})

	secured.Post("/notifications/read-all", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := notifications.MarkAllRead(userID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark notifications read",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "all notifications marked as read"})
	})

	// Real-time stream of new notifications
	secured.Get("/notifications/stream", notifications.StreamUserNotificationsSSE)
}
