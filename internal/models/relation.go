package models

import "time"

// RelationEdge is one direction of a classroom friendship. An accepted
// friendship between A and B is always stored as the two rows (A→B) and
// (B→A), written in the same transaction. The composite unique index is what
// makes concurrent duplicate connects lose cleanly instead of racing.
type RelationEdge struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	FromClassroomID uint      `json:"from_classroom_id" gorm:"index;uniqueIndex:idx_relation_pair;not null"`
	ToClassroomID   uint      `json:"to_classroom_id" gorm:"uniqueIndex:idx_relation_pair;not null"`
	CreatedAt       time.Time `json:"created_at"`
}

// ConnectRequest identifies the caller's own classroom for connect/disconnect.
type ConnectRequest struct {
	FromClassroomID uint `json:"from_classroom_id" validate:"required"`
}

// Friend is a friends-list entry: the neighbouring classroom annotated with
// the manual interest overlap against the owning classroom.
type Friend struct {
	Classroom          Classroom `json:"classroom"`
	InterestSimilarity float64   `json:"interest_similarity"`
	ConnectedSince     time.Time `json:"connected_since"`
}
