package entity

import "time"

type Favorite struct {
	ID           string    `json:"id" firestore:"id"`
	UserID       string    `json:"user_id" firestore:"userId"`
	StorefrontID string    `json:"storefront_id" firestore:"storefrontId"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}

type FavoriteWithStorefront struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	StorefrontID string      `json:"storefront_id"`
	Storefront   *Storefront `json:"storefront"`
	CreatedAt    time.Time   `json:"created_at"`
}
