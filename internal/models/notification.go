package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds shown by the frontend widget.
const (
	NotificationKindInfo    = "info"
	NotificationKindSuccess = "success"
	NotificationKindWarning = "warning"
)

// Notification is a per-account message (MongoDB). Writes are fire-and-forget
// from the engine's point of view: a failed emit is logged, never rolled into
// the relational transaction that triggered it.
type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AccountID uint               `json:"account_id" bson:"account_id"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	Kind      string             `json:"kind" bson:"kind"`
	RelatedID uint               `json:"related_id,omitempty" bson:"related_id,omitempty"`
	IsRead    bool               `json:"is_read" bson:"is_read"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
