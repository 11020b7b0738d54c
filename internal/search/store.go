// Package search keeps classroom interests synchronized with the vector
// collaborator and runs semantic matching queries against it. The vector
// index is a derived, eventually consistent view of the relational classroom
// records, never a source of truth.
package search

import (
	"context"
	"fmt"
)

// Entry is one classroom's record in the vector index. It exists iff the
// classroom currently has a non-empty interest set.
type Entry struct {
	Key           string
	Interests     string
	ClassroomID   uint
	ClassroomName string
	Location      string
}

// Hit is a ranked nearest-neighbour result.
type Hit struct {
	Key         string
	ClassroomID uint
	Similarity  float64
}

// Store is the vector collaborator surface the engine needs. Upsert replaces
// any prior entry for the same key.
type Store interface {
	Upsert(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, key string) error
	Query(ctx context.Context, text string, limit int) ([]Hit, error)
	DeleteAll(ctx context.Context) error
}

// EntryKey builds the stable per-classroom index key.
func EntryKey(classroomID uint) string {
	return fmt.Sprintf("classroom_%d", classroomID)
}
