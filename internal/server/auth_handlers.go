package server

import (
	"cafehub/internal/models"
	"cafehub/internal/service"
	"cafehub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new user account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.SignupRequest true "Signup request"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req validation.SignupRequest
	if err := validation.Parse(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := s.authService.BuildCandidate(service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Description: req.Description,
		Password:    req.Password,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	if err := s.authService.Commit(c.UserContext(), user); err != nil {
		return respondError(c, err)
	}

	token, err := s.startSession(c, user)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate with username and password and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.LoginRequest true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req validation.LoginRequest
	if err := validation.Parse(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := s.authService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := s.startSession(c, user)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout
// @Summary User logout
// @Description Revoke the current session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	sess, _ := c.Locals("session").(*session)
	s.revokeSession(c, sess)
	return c.JSON(fiber.Map{"message": "Logged out"})
}
