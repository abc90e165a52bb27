package entity

import "time"

// SearchEntry records one storefront search a user performed, so recent
// searches can be replayed from their profile.
type SearchEntry struct {
	ID         string            `json:"id" firestore:"id"`
	UserID     string            `json:"user_id" firestore:"userId"`
	Query      string            `json:"query" firestore:"query"`
	Filters    map[string]string `json:"filters,omitempty" firestore:"filters,omitempty"`
	ResultHits int64             `json:"result_hits" firestore:"resultHits"`
	CreatedAt  time.Time         `json:"created_at" firestore:"createdAt"`
}
