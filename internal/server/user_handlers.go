package server

import (
	"cafehub/internal/service"
	"cafehub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get my profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), s.currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Edit my profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.ProfileRequest true "Profile"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req validation.ProfileRequest
	if err := validation.Parse(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:      s.currentUserID(c),
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetMyLikes handles GET /api/users/me/likes
// @Summary Cafes I liked
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Cafe
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me/likes [get]
func (s *Server) GetMyLikes(c *fiber.Ctx) error {
	cafes, err := s.likeService.LikedCafes(c.UserContext(), s.currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cafes)
}

// GetUserProfile handles GET /api/users/:id
// @Summary Get user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.PublicUser
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := s.userService.GetProfile(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user.Public())
}
