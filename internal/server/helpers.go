package server

import (
	"errors"
	"log/slog"

	"chirp/internal/middleware"
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive uint. On failure it writes
// a 400 JSON response and returns errResponseWritten; callers should check:
// if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondError(c, models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// summaries reduces users to their public card fields.
func summaries(users []models.User) []models.UserSummary {
	out := make([]models.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out
}

// public strips the password hash for API responses.
func public(u *models.User) *models.User {
	u.Password = ""
	return u
}

// middlewareLogWarn records a non-fatal handler failure.
func middlewareLogWarn(c *fiber.Ctx, msg string, err error) {
	middleware.Logger.WarnContext(c.UserContext(), msg,
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
}
