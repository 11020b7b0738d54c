package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/penpalsapp/backend/internal/matching"
	"github.com/penpalsapp/backend/internal/models"
	"github.com/penpalsapp/backend/internal/repositories"
)

const (
	// DefaultSearchLimit is used when the caller passes no limit.
	DefaultSearchLimit = 10
	// MaxSearchLimit bounds index pressure per query.
	MaxSearchLimit = 50
)

var (
	// ErrEmptyQuery is returned when no usable interest tags were supplied.
	ErrEmptyQuery = errors.New("no valid interests provided for search")

	// ErrIndexUnavailable is returned when the vector collaborator cannot
	// serve the query. Search is the one operation that cannot degrade past
	// it.
	ErrIndexUnavailable = errors.New("interest index unavailable")
)

// Match is one search result: the classroom with both the vector
// collaborator's score and the manual Jaccard overlap. The two scores are
// informational; results stay in native vector rank order.
type Match struct {
	Classroom          models.Classroom `json:"classroom"`
	SemanticSimilarity float64          `json:"semantic_similarity"`
	ManualSimilarity   float64          `json:"manual_similarity"`
}

// MatchFinder answers interest searches by querying the vector collaborator
// and re-hydrating full classroom records from the relational store.
type MatchFinder struct {
	store      Store
	classrooms repositories.ClassroomRepository
	logger     *zap.Logger
}

// NewMatchFinder creates a new MatchFinder
func NewMatchFinder(store Store, classroomRepo repositories.ClassroomRepository, logger *zap.Logger) *MatchFinder {
	return &MatchFinder{store: store, classrooms: classroomRepo, logger: logger}
}

// Search returns up to limit classrooms matching the query interests,
// ordered by semantic similarity descending. Hits whose classroom no longer
// exists in the relational store are dropped silently; the index is allowed
// to lag.
func (f *MatchFinder) Search(ctx context.Context, interests []string, limit int) ([]Match, error) {
	query := strings.Join(matching.SanitizeInterests(interests), " ")
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	hits, err := f.store.Query(ctx, query, limit)
	if err != nil {
		f.logger.Error("vector query failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	matches := make([]Match, 0, len(hits))
	for _, hit := range hits {
		classroom, err := f.classrooms.GetClassroomByID(hit.ClassroomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Stale index entry; the classroom went away.
				continue
			}
			return nil, err
		}

		matches = append(matches, Match{
			Classroom:          *classroom,
			SemanticSimilarity: round3(hit.Similarity),
			ManualSimilarity:   round3(matching.InterestSimilarity(interests, classroom.Interests)),
		})
	}
	return matches, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
