package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultUserImageURL is stored when a user has no profile picture.
const DefaultUserImageURL = "/static/images/default-pic.png"

// User is an account. HashedPassword is a bcrypt hash and is never serialized.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Admin          bool      `gorm:"not null;default:false" json:"admin"`
	Email          string    `gorm:"not null" json:"email"`
	FirstName      string    `gorm:"not null" json:"first_name"`
	LastName       string    `gorm:"not null" json:"last_name"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	ImageURL       string    `gorm:"not null" json:"image_url"`
	HashedPassword string    `gorm:"not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	if u.ImageURL == "" {
		u.ImageURL = DefaultUserImageURL
	}
	return nil
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// PublicUser is what anyone may see of an account: no email, no admin flag.
type PublicUser struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public returns the public view of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Description: u.Description,
		ImageURL:    u.ImageURL,
		CreatedAt:   u.CreatedAt,
	}
}
