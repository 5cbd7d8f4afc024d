package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DefaultCafeImageURL is stored when a cafe is saved without an image.
const DefaultCafeImageURL = "/static/images/default-cafe.jpg"

// Cafe is a directory listing. CityCode must reference an existing City.
type Cafe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	URL         string    `gorm:"not null" json:"url"`
	Address     string    `gorm:"type:text;not null" json:"address"`
	CityCode    string    `gorm:"not null;index" json:"city_code"`
	City        *City     `gorm:"foreignKey:CityCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"city,omitempty"`
	ImageURL    string    `gorm:"not null" json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// Liked reports whether the requesting user liked this cafe (computed)
	Liked bool `gorm:"-" json:"liked"`
}

func (c *Cafe) BeforeSave(_ *gorm.DB) error {
	if c.ImageURL == "" {
		c.ImageURL = DefaultCafeImageURL
	}
	return nil
}

// CityState renders "City, ST". It needs City preloaded.
func (c *Cafe) CityState() string {
	if c.City == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s", c.City.Name, c.City.State)
}
