package models

import "time"

type Idea struct {
	ID          int64     `db:"id" json:"id"`
	Image       *string   `db:"image" json:"image,omitempty"`
	Title       string    `db:"title" json:"title"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description"`
	Link        *string   `db:"link" json:"link,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// IdeaInput is a sanitized submission ready to be stored.
// Image and Link are nil when the user left them blank.
type IdeaInput struct {
	Title       string
	Category    string
	Description string
	Image       *string
	Link        *string
}
