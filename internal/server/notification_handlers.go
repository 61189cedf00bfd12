package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Listing marks everything
// read, but the returned items show the state at fetch time.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	views, err := s.notificationService.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(views)
}

// DeleteNotifications handles DELETE /api/notifications.
func (s *Server) DeleteNotifications(c *fiber.Ctx) error {
	if err := s.notificationService.DeleteAll(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notifications deleted successfully"})
}

// DeleteNotification handles DELETE /api/notifications/:id.
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.DeleteOne(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification deleted successfully"})
}
