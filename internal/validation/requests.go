// Package validation holds the input contracts accepted at the HTTP boundary.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"cafehub/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// SignupRequest is the registration form. There is deliberately no admin field.
type SignupRequest struct {
	Username    string `json:"username" form:"username" validate:"required,max=30"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	FirstName   string `json:"first_name" form:"first_name" validate:"required"`
	LastName    string `json:"last_name" form:"last_name" validate:"required"`
	Description string `json:"description" form:"description"`
	Password    string `json:"password" form:"password" validate:"required,min=6,bcryptlen"`
	ImageURL    string `json:"image_url" form:"image_url" validate:"omitempty,url"`
}

// LoginRequest is the login form.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// CafeRequest is the add/edit cafe form.
type CafeRequest struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Description string `json:"description" form:"description"`
	URL         string `json:"url" form:"url" validate:"omitempty,url"`
	Address     string `json:"address" form:"address" validate:"required"`
	CityCode    string `json:"city_code" form:"city_code" validate:"required"`
	ImageURL    string `json:"image_url" form:"image_url" validate:"omitempty,url"`
}

// ProfileRequest is the edit profile form.
type ProfileRequest struct {
	Email       string `json:"email" form:"email" validate:"required,email"`
	FirstName   string `json:"first_name" form:"first_name" validate:"required"`
	LastName    string `json:"last_name" form:"last_name" validate:"required"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url" validate:"omitempty,url"`
}

// LikeRequest is the body of the like/unlike endpoints.
type LikeRequest struct {
	CafeID uint `json:"cafe_id" form:"cafe_id" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// min/max count runes; bcrypt limits bytes.
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return v
}

var errorMessages = map[string]string{
	"required":  "This field is required",
	"email":     "Enter a valid email address",
	"url":       "Enter a valid URL",
	"min":       "Value is too short",
	"max":       "Value is too long",
	"bcryptlen": "Password must be at most 72 bytes",
}

// Struct validates req and returns one message per failing field, keyed by its JSON name.
// An empty map means the request is valid.
func Struct(req any) map[string]string {
	fields := make(map[string]string)
	err := validate.Struct(req)
	if err == nil {
		return fields
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["_"] = err.Error()
		return fields
	}
	for _, fe := range validationErrors {
		msg, ok := errorMessages[fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		if fe.Tag() == "min" || fe.Tag() == "max" {
			msg = msg + " (" + fe.Tag() + " " + fe.Param() + ")"
		}
		fields[fe.Field()] = msg
	}
	return fields
}

// Parse binds the request body into req, normalizes it and validates it.
// Failures come back as a VALIDATION_ERROR carrying the field messages.
func Parse(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	normalize(req)
	if fields := Struct(req); len(fields) > 0 {
		return models.NewFieldValidationError("Please check the highlighted fields", fields)
	}
	return nil
}

func normalize(req any) {
	switch r := req.(type) {
	case *SignupRequest:
		r.Email = strings.TrimSpace(r.Email)
		r.FirstName = strings.TrimSpace(r.FirstName)
		r.LastName = strings.TrimSpace(r.LastName)
		r.Description = strings.TrimSpace(r.Description)
		r.ImageURL = strings.TrimSpace(r.ImageURL)
	case *CafeRequest:
		r.Name = strings.TrimSpace(r.Name)
		r.Address = strings.TrimSpace(r.Address)
		r.CityCode = strings.TrimSpace(r.CityCode)
		r.URL = strings.TrimSpace(r.URL)
		r.ImageURL = strings.TrimSpace(r.ImageURL)
	case *ProfileRequest:
		r.Email = strings.TrimSpace(r.Email)
		r.FirstName = strings.TrimSpace(r.FirstName)
		r.LastName = strings.TrimSpace(r.LastName)
		r.ImageURL = strings.TrimSpace(r.ImageURL)
	}
}
