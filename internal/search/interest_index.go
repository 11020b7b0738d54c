package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/penpalsapp/backend/internal/models"
	"github.com/penpalsapp/backend/internal/repositories"
)

// InterestIndex keeps a classroom's vector-index entry in step with its
// current interest set. Index failures are logged and swallowed: the
// classroom mutation that triggered a sync must never be blocked or rolled
// back by the vector collaborator.
type InterestIndex struct {
	store      Store
	classrooms repositories.ClassroomRepository
	logger     *zap.Logger
}

// NewInterestIndex creates a new InterestIndex
func NewInterestIndex(store Store, classroomRepo repositories.ClassroomRepository, logger *zap.Logger) *InterestIndex {
	return &InterestIndex{store: store, classrooms: classroomRepo, logger: logger}
}

// Sync refreshes the index entry for the classroom. An empty interest set
// means the entry is removed; otherwise the interests are joined into one
// text blob (order preserved) and the prior entry, if any, is replaced.
func (ix *InterestIndex) Sync(ctx context.Context, classroom *models.Classroom) {
	key := EntryKey(classroom.ID)

	if len(classroom.Interests) == 0 {
		if err := ix.store.Delete(ctx, key); err != nil {
			ix.logger.Warn("interest index delete failed",
				zap.Uint("classroom_id", classroom.ID), zap.Error(err))
		}
		return
	}

	entry := Entry{
		Key:           key,
		Interests:     strings.Join(classroom.Interests, " "),
		ClassroomID:   classroom.ID,
		ClassroomName: classroom.Name,
		Location:      classroom.Location,
	}
	if err := ix.store.Upsert(ctx, entry); err != nil {
		ix.logger.Warn("interest index upsert failed",
			zap.Uint("classroom_id", classroom.ID), zap.Error(err))
	}
}

// Remove drops the index entry for a deleted classroom.
func (ix *InterestIndex) Remove(ctx context.Context, classroomID uint) {
	if err := ix.store.Delete(ctx, EntryKey(classroomID)); err != nil {
		ix.logger.Warn("interest index delete failed",
			zap.Uint("classroom_id", classroomID), zap.Error(err))
	}
}

// Rebuild wipes the index and re-indexes every classroom with a non-empty
// interest set. Operational escape hatch for when the derived view has
// drifted from the relational records. Returns how many entries were written.
func (ix *InterestIndex) Rebuild(ctx context.Context) (int, error) {
	if err := ix.store.DeleteAll(ctx); err != nil {
		return 0, err
	}

	classrooms, err := ix.classrooms.GetClassroomsWithInterests()
	if err != nil {
		return 0, err
	}

	indexed := 0
	for i := range classrooms {
		c := &classrooms[i]
		if len(c.Interests) == 0 {
			continue
		}
		entry := Entry{
			Key:           EntryKey(c.ID),
			Interests:     strings.Join(c.Interests, " "),
			ClassroomID:   c.ID,
			ClassroomName: c.Name,
			Location:      c.Location,
		}
		if err := ix.store.Upsert(ctx, entry); err != nil {
			ix.logger.Warn("rebuild: upsert failed",
				zap.Uint("classroom_id", c.ID), zap.Error(err))
			continue
		}
		indexed++
	}

	ix.logger.Info("interest index rebuilt", zap.Int("indexed", indexed))
	return indexed, nil
}
