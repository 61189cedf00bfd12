package server

import (
	"chirp/internal/models"
	"chirp/internal/token"
	"chirp/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// setIdentityCookie issues a token for the user and attaches it to the response.
func (s *Server) setIdentityCookie(c *fiber.Ctx, userID uint) error {
	tok, err := s.tokens.Issue(userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	c.Cookie(token.Cookie(tok, s.config.IsProduction()))
	return nil
}

// Signup handles POST /api/signup.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.FullName == "" || req.Email == "" || req.Password == "" {
		return models.RespondError(c,
			models.NewValidationError("Username, full name, email, and password are required"))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondError(c, models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByUsername(c.UserContext(), req.Username)
	if err != nil {
		return models.RespondError(c, err)
	}
	if existing != nil {
		return models.RespondError(c, models.NewValidationError("Username is already taken"))
	}

	existing, err = s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return models.RespondError(c, err)
	}
	if existing != nil {
		return models.RespondError(c, models.NewValidationError("Email is already taken"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return models.RespondError(c, err)
	}

	if err := s.setIdentityCookie(c, user.ID); err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(public(user))
}

// Login handles POST /api/login. Failures never reveal whether the username
// or the password was wrong.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return models.RespondError(c,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.userRepo.GetByUsername(c.UserContext(), req.Username)
	if err != nil {
		return models.RespondError(c, err)
	}
	if user == nil {
		return models.RespondError(c, models.NewValidationError("Invalid username or password"))
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.RespondError(c, models.NewValidationError("Invalid username or password"))
	}

	if err := s.setIdentityCookie(c, user.ID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(public(user))
}

// Logout handles POST /api/logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(token.ClearCookie(s.config.IsProduction()))
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// GetMe handles GET /api/user, returning the authenticated identity.
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, _ := c.Locals("currentUser").(*models.User)
	if user == nil {
		return models.RespondError(c, models.NewUnauthorizedError("Unauthorized"))
	}
	return c.JSON(user)
}
