package entity

import (
	"time"
)

type StorefrontImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

// Storefront is a vendor's public establishment listing, the addressable
// target of the provider side of a conversation.
type Storefront struct {
	ID          string `json:"id" firestore:"id"`
	OwnerID     string `json:"owner_id" firestore:"ownerId"`
	CategoryID  string `json:"category_id" firestore:"categoryId"`
	Name        string `json:"name" firestore:"name"`
	Description string `json:"description" firestore:"description"`

	City     string `json:"city" firestore:"city"`
	Region   string `json:"region" firestore:"region"`
	Address  string `json:"address,omitempty" firestore:"address,omitempty"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Email    string `json:"email,omitempty" firestore:"email,omitempty"`
	Website  string `json:"website,omitempty" firestore:"website,omitempty"`
	Capacity int    `json:"capacity,omitempty" firestore:"capacity,omitempty"`

	PriceMin float64 `json:"price_min,omitempty" firestore:"priceMin,omitempty"`
	PriceMax float64 `json:"price_max,omitempty" firestore:"priceMax,omitempty"`

	Images []StorefrontImage `json:"images" firestore:"images"`
	Status string            `json:"status" firestore:"status"` // "draft", "published", "suspended"

	Views    int  `json:"views" firestore:"views"`
	Featured bool `json:"featured" firestore:"featured"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}
