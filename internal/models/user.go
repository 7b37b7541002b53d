// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Password holds a bcrypt hash and is
// never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Lists     []List    `gorm:"foreignKey:AuthorID" json:"lists,omitempty"`
	Movies    []Movie   `gorm:"foreignKey:AuthorID" json:"movies,omitempty"`
}
