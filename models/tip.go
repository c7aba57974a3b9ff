package models

import "time"

// Tip is a home-screen advice card.
type Tip struct {
	ID          string    `bson:"id" json:"id"`
	Icon        string    `bson:"icon" json:"icon"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Colors      []string  `bson:"colors" json:"colors"` // gradient hex colors
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}
