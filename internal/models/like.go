package models

import "time"

// Like records that a user favorited a cafe.
// The (UserID, CafeID) pair is the primary key, so a pair can only exist once.
type Like struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CafeID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"cafe_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Cafe *Cafe `gorm:"foreignKey:CafeID;constraint:OnDelete:CASCADE" json:"-"`
}
