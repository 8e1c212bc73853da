package domain

import "time"

// Ad is a single entry in the rotating advertisement carousel. Ads form an
// unordered set; the full list is always loaded.
type Ad struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
