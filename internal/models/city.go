// Package models contains data structures for the application's domain models.
package models

// City is immutable reference data keyed by a short code.
type City struct {
	Code  string `gorm:"primaryKey" json:"code"`
	Name  string `gorm:"not null" json:"name"`
	State string `gorm:"size:2;not null" json:"state"`
}

func (City) TableName() string {
	return "cities"
}
