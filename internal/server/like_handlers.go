package server

import (
	"errors"

	"cafehub/internal/models"
	"cafehub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const notLoggedInMessage = "Not logged in"

// GetLikeStatus handles GET /api/likes?cafe_id=
// @Summary Is cafe liked
// @Tags likes
// @Produce json
// @Param cafe_id query int true "Cafe ID"
// @Success 200 {object} object{likes=bool}
// @Failure 401 {object} object{error=string}
// @Router /likes [get]
func (s *Server) GetLikeStatus(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	if userID == 0 {
		return s.respondLikeError(c, models.ErrNotLoggedIn)
	}

	cafeID := c.QueryInt("cafe_id", 0)
	if cafeID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid cafe_id"))
	}

	liked, err := s.likeService.IsLiked(c.UserContext(), userID, uint(cafeID))
	if err != nil {
		return s.respondLikeError(c, err)
	}
	return c.JSON(fiber.Map{"likes": liked})
}

// LikeCafe handles POST /api/like
// @Summary Like cafe
// @Tags likes
// @Accept json
// @Produce json
// @Param request body validation.LikeRequest true "Cafe to like"
// @Success 200 {object} object{liked=int}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /like [post]
func (s *Server) LikeCafe(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	if userID == 0 {
		return s.respondLikeError(c, models.ErrNotLoggedIn)
	}

	var req validation.LikeRequest
	if err := validation.Parse(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := s.likeService.Like(c.UserContext(), userID, req.CafeID); err != nil {
		return s.respondLikeError(c, err)
	}
	return c.JSON(fiber.Map{"liked": req.CafeID})
}

// UnlikeCafe handles POST /api/unlike
// @Summary Unlike cafe
// @Tags likes
// @Accept json
// @Produce json
// @Param request body validation.LikeRequest true "Cafe to unlike"
// @Success 200 {object} object{unliked=int}
// @Failure 401 {object} object{error=string}
// @Router /unlike [post]
func (s *Server) UnlikeCafe(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	if userID == 0 {
		return s.respondLikeError(c, models.ErrNotLoggedIn)
	}

	var req validation.LikeRequest
	if err := validation.Parse(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := s.likeService.Unlike(c.UserContext(), userID, req.CafeID); err != nil {
		return s.respondLikeError(c, err)
	}
	return c.JSON(fiber.Map{"unliked": req.CafeID})
}

// respondLikeError keeps the short {"error": "Not logged in"} body the like widget expects.
// The like handlers check the session before the body, so signed-out callers
// always get this answer.
func (s *Server) respondLikeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrNotLoggedIn) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": notLoggedInMessage})
	}
	return respondError(c, err)
}
