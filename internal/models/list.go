package models

import "time"

// List is a user-created named collection of movies.
type List struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Movies    []Movie   `gorm:"foreignKey:ListID" json:"movies,omitempty"`
}

// TableName keeps the singular table name used by the persisted schema.
func (List) TableName() string { return "list" }
