package entity

import "time"

// Category is a wedding-service category (venue, photographer, caterer,
// florist, band/DJ, ...). Storefronts are listed under exactly one category.
type Category struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Slug        string    `json:"slug" firestore:"slug"`
	Description string    `json:"description" firestore:"description"`
	Icon        string    `json:"icon,omitempty" firestore:"icon,omitempty"`
	Status      string    `json:"status" firestore:"status"` // "active", "hidden"
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
