package models

import "time"

// Movie categories offered when adding a movie to a list.
const (
	CategoryHorror = "horror"
	CategoryAction = "action"
	CategoryComedy = "comedy"
)

// Categories is the fixed set of valid movie categories.
var Categories = []string{CategoryHorror, CategoryAction, CategoryComedy}

// Movie is a catalog entry plus user-supplied rating/review, scoped to one
// list and one authoring user. Year and Rating are stored as text to match
// the persisted schema; Rating is validated to be numeric before writes.
type Movie struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `json:"title"`
	Year        string    `json:"year"`
	Description string    `json:"description"`
	Rating      string    `json:"rating"`
	Review      string    `json:"review"`
	ImgURL      string    `json:"img_url"`
	Category    string    `gorm:"index" json:"category"`
	ListID      uint      `gorm:"not null;index" json:"list_id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName keeps the singular table name used by the persisted schema.
func (Movie) TableName() string { return "movie" }
