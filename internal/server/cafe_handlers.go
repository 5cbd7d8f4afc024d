package server

import (
	"cafehub/internal/service"
	"cafehub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetCities handles GET /api/cities
// @Summary List cities
// @Description City choices for the cafe form, ordered by name
// @Tags cafes
// @Produce json
// @Success 200 {array} models.City
// @Router /cities [get]
func (s *Server) GetCities(c *fiber.Ctx) error {
	cities, err := s.cafeService.ListCities(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cities)
}

// GetCafes handles GET /api/cafes
// @Summary List cafes
// @Tags cafes
// @Produce json
// @Success 200 {array} models.Cafe
// @Router /cafes [get]
func (s *Server) GetCafes(c *fiber.Ctx) error {
	cafes, err := s.cafeService.ListCafes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cafes)
}

// GetCafe handles GET /api/cafes/:id
// @Summary Get cafe
// @Description Cafe detail. liked is set when the request carries a session.
// @Tags cafes
// @Produce json
// @Param id path int true "Cafe ID"
// @Success 200 {object} models.Cafe
// @Failure 404 {object} models.ErrorResponse
// @Router /cafes/{id} [get]
func (s *Server) GetCafe(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	cafe, err := s.cafeService.GetCafe(c.UserContext(), id, s.currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cafe)
}

// CreateCafe handles POST /api/cafes
// @Summary Add cafe
// @Tags cafes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.CafeRequest true "Cafe"
// @Success 201 {object} models.Cafe
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /cafes [post]
func (s *Server) CreateCafe(c *fiber.Ctx) error {
	var req validation.CafeRequest
	if err := validation.Parse(c, &req); err != nil {
		return respondError(c, err)
	}

	cafe, err := s.cafeService.CreateCafe(c.UserContext(), s.currentUserID(c), cafeInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cafe)
}

// UpdateCafe handles PUT /api/cafes/:id
// @Summary Edit cafe
// @Tags cafes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cafe ID"
// @Param request body validation.CafeRequest true "Cafe"
// @Success 200 {object} models.Cafe
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cafes/{id} [put]
func (s *Server) UpdateCafe(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req validation.CafeRequest
	if err := validation.Parse(c, &req); err != nil {
		return respondError(c, err)
	}

	cafe, err := s.cafeService.UpdateCafe(c.UserContext(), s.currentUserID(c), id, cafeInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cafe)
}

func cafeInput(req validation.CafeRequest) service.CafeInput {
	return service.CafeInput{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Address:     req.Address,
		CityCode:    req.CityCode,
		ImageURL:    req.ImageURL,
	}
}
