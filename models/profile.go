package models

import "time"

// ProfileService is one offering listed on a provider's complete profile.
type ProfileService struct {
	Name      string  `bson:"name" json:"name"`
	Category  string  `bson:"category" json:"category"`
	Price     float64 `bson:"price" json:"price"`
	PriceType string  `bson:"price_type" json:"priceType"` // "hourly" or "once-off"
}

// DayHours is a single weekday's operating window.
type DayHours struct {
	Start    string `bson:"start,omitempty" json:"start,omitempty"`
	End      string `bson:"end,omitempty" json:"end,omitempty"`
	IsClosed bool   `bson:"is_closed" json:"isClosed"`
}

// SocialLinks holds optional provider web presence links.
type SocialLinks struct {
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	TikTok    string `bson:"tiktok,omitempty" json:"tiktok,omitempty"`
}

// CompleteProfile is the extended business profile a provider fills in after
// registration. A user owns at most one.
type CompleteProfile struct {
	ID                string              `bson:"id" json:"id"`
	UserID            string              `bson:"user_id" json:"userId"`
	BusinessAddress   string              `bson:"business_address" json:"businessAddress"`
	Town              string              `bson:"town" json:"town"`
	YearsOfExperience int                 `bson:"years_of_experience" json:"yearsOfExperience"`
	Description       string              `bson:"description" json:"description"`
	Services          []ProfileService    `bson:"services" json:"services"`
	OperatingHours    map[string]DayHours `bson:"operating_hours" json:"operatingHours"`
	SocialLinks       SocialLinks         `bson:"social_links" json:"socialLinks"`
	Images            []string            `bson:"images" json:"images"`
	CreatedAt         time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updated_at" json:"updatedAt"`
}
