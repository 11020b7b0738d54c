package models

import "time"

// FriendRequestStatus is the lifecycle state of a directed friend request.
// pending is the only non-terminal state.
type FriendRequestStatus string

const (
	FriendRequestStatusPending   FriendRequestStatus = "pending"
	FriendRequestStatusAccepted  FriendRequestStatus = "accepted"
	FriendRequestStatusRejected  FriendRequestStatus = "rejected"
	FriendRequestStatusCancelled FriendRequestStatus = "cancelled"
)

// FriendRequest is a directed request from one classroom to another. The
// partial unique index allows any number of resolved requests between a pair
// but at most one pending one per direction.
type FriendRequest struct {
	ID                  uint                `json:"id" gorm:"primaryKey"`
	SenderClassroomID   uint                `json:"sender_classroom_id" gorm:"index;uniqueIndex:idx_pending_request,where:status = 'pending';not null"`
	ReceiverClassroomID uint                `json:"receiver_classroom_id" gorm:"index;uniqueIndex:idx_pending_request,where:status = 'pending';not null"`
	Status              FriendRequestStatus `json:"status" gorm:"type:varchar(20);default:'pending';not null"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// SendFriendRequestBody is the payload for sending a friend request.
type SendFriendRequestBody struct {
	SenderClassroomID   uint `json:"sender_classroom_id" validate:"required"`
	ReceiverClassroomID uint `json:"receiver_classroom_id" validate:"required"`
}

// ResolveFriendRequestBody identifies the classroom acting on a request.
type ResolveFriendRequestBody struct {
	ClassroomID uint `json:"classroom_id" validate:"required"`
}
