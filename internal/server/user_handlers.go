package server

import (
	"chirp/internal/models"
	"chirp/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const suggestedUserCount = 5

// FollowUser handles POST /api/users/follow/:id, toggling the follow state.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	action, err := s.graphService.FollowUnfollow(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User " + action + " successfully"})
}

// GetSuggestedUsers handles GET /api/users/suggested.
func (s *Server) GetSuggestedUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.Suggested(c.UserContext(), currentUserID(c), suggestedUserCount)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(summaries(users))
}

// GetUserProfile handles GET /api/users/profile/:username.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	user, err := s.userRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		return models.RespondError(c, err)
	}
	if user == nil {
		return models.RespondError(c, models.NewNotFoundError("User", username))
	}

	postCount, err := s.userRepo.CountPosts(c.UserContext(), user.ID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":      public(user),
		"postCount": postCount,
	})
}

// GetFollowers handles GET /api/users/followers/:username.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	user, err := s.resolveUsername(c)
	if err != nil {
		return nil
	}
	followers, err := s.followRepo.FollowersOf(c.UserContext(), user.ID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(summaries(followers))
}

// GetFollowing handles GET /api/users/following/:username.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	user, err := s.resolveUsername(c)
	if err != nil {
		return nil
	}
	following, err := s.followRepo.FollowingOf(c.UserContext(), user.ID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(summaries(following))
}

// resolveUsername loads the user named in the route, writing the error
// response itself on failure.
func (s *Server) resolveUsername(c *fiber.Ctx) (*models.User, error) {
	username := c.Params("username")
	user, err := s.userRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		_ = models.RespondError(c, err)
		return nil, errResponseWritten
	}
	if user == nil {
		_ = models.RespondError(c, models.NewNotFoundError("User", username))
		return nil, errResponseWritten
	}
	return user, nil
}

// UpdateProfile handles POST /api/users/update. Empty fields are left
// untouched; a password change requires the correct current password.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		FullName        string `json:"fullName"`
		Username        string `json:"username"`
		Email           string `json:"email"`
		Bio             string `json:"bio"`
		Link            string `json:"link"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ProfileImg      string `json:"profileImg"`
		CoverImg        string `json:"coverImg"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	// Fetch without the cache: the password hash is needed below.
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	if (req.CurrentPassword == "") != (req.NewPassword == "") {
		return models.RespondError(c,
			models.NewValidationError("Please provide both current password and new password"))
	}
	if req.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
			return models.RespondError(c, models.NewValidationError("Current password is incorrect"))
		}
		if err := validation.ValidateNewPassword(req.NewPassword); err != nil {
			return models.RespondError(c, models.NewValidationError(err.Error()))
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return models.RespondError(c, models.NewInternalError(err))
		}
		user.Password = string(hashed)
	}

	if req.Username != "" && req.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(c.UserContext(), req.Username)
		if err != nil {
			return models.RespondError(c, err)
		}
		if existing != nil {
			return models.RespondError(c, models.NewValidationError("Username is already taken"))
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		if err := validation.ValidateEmail(req.Email); err != nil {
			return models.RespondError(c, models.NewValidationError(err.Error()))
		}
		existing, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
		if err != nil {
			return models.RespondError(c, err)
		}
		if existing != nil {
			return models.RespondError(c, models.NewValidationError("Email is already taken"))
		}
		user.Email = req.Email
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Link != "" {
		user.Link = req.Link
	}

	if req.ProfileImg != "" {
		url, err := s.replaceImage(c, user.ProfileImg, req.ProfileImg, "profile")
		if err != nil {
			return models.RespondError(c, err)
		}
		user.ProfileImg = url
	}
	if req.CoverImg != "" {
		url, err := s.replaceImage(c, user.CoverImg, req.CoverImg, "cover")
		if err != nil {
			return models.RespondError(c, err)
		}
		user.CoverImg = url
	}

	if err := s.userRepo.Update(c.UserContext(), user); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(public(user))
}

// replaceImage uploads the new image and removes the previous one. The old
// asset is removed best-effort after the new upload succeeds.
func (s *Server) replaceImage(c *fiber.Ctx, oldURL, dataURI, folder string) (string, error) {
	if s.uploads == nil {
		return "", models.NewUpstreamError("Image host not configured", nil)
	}
	url, err := s.uploads.Upload(c.UserContext(), dataURI, folder)
	if err != nil {
		return "", models.NewUpstreamError("Image upload failed", err)
	}
	if oldURL != "" {
		if err := s.uploads.Destroy(c.UserContext(), oldURL); err != nil {
			middlewareLogWarn(c, "failed to remove previous image", err)
		}
	}
	return url, nil
}
