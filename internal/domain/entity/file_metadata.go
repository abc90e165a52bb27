package entity

import "time"

// FileMetadata tracks an object uploaded to blob storage, so orphaned
// uploads can be reconciled against storefront image lists.
type FileMetadata struct {
	ID           string    `json:"id" firestore:"id"`
	OwnerID      string    `json:"owner_id" firestore:"ownerId"`
	StorefrontID string    `json:"storefront_id,omitempty" firestore:"storefrontId,omitempty"`
	ObjectName   string    `json:"object_name" firestore:"objectName"`
	URL          string    `json:"url" firestore:"url"`
	ContentType  string    `json:"content_type" firestore:"contentType"`
	Size         int64     `json:"size" firestore:"size"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}
