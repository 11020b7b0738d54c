package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/penpalsapp/backend/internal/matching"
	"github.com/penpalsapp/backend/internal/models"
	"github.com/penpalsapp/backend/internal/repositories"
)

// RelationGraphService owns the symmetric connection graph. Every accepted
// friendship is the edge pair (A→B, B→A); the pair is created and destroyed
// atomically, so callers never observe a one-sided friendship.
type RelationGraphService struct {
	relations  repositories.RelationRepository
	classrooms repositories.ClassroomRepository
	logger     *zap.Logger
}

// NewRelationGraphService creates a new RelationGraphService
func NewRelationGraphService(relationRepo repositories.RelationRepository, classroomRepo repositories.ClassroomRepository, logger *zap.Logger) *RelationGraphService {
	return &RelationGraphService{relations: relationRepo, classrooms: classroomRepo, logger: logger}
}

// Connect creates the bidirectional friendship between two classrooms. The
// unique (from,to) index is the arbiter for concurrent duplicate connects:
// exactly one caller wins, the rest get ErrAlreadyConnected.
func (s *RelationGraphService) Connect(fromID, toID uint) error {
	if fromID == toID {
		return ErrSelfConnection
	}

	for _, id := range []uint{fromID, toID} {
		if _, err := s.classrooms.GetClassroomByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassroomNotFound
			}
			return storeErr(err)
		}
	}

	exists, err := s.relations.EdgeExists(fromID, toID)
	if err != nil {
		return storeErr(err)
	}
	if exists {
		return ErrAlreadyConnected
	}

	if err := s.relations.CreateEdgePair(fromID, toID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyConnected
		}
		return storeErr(err)
	}

	s.logger.Info("classrooms connected", zap.Uint("from", fromID), zap.Uint("to", toID))
	return nil
}

// Disconnect removes both directions of the friendship. Whichever edges
// exist go away in one transaction; zero edges means there was nothing to
// disconnect.
func (s *RelationGraphService) Disconnect(fromID, toID uint) error {
	deleted, err := s.relations.DeleteEdgePair(fromID, toID)
	if err != nil {
		return storeErr(err)
	}
	if deleted == 0 {
		return ErrNotConnected
	}

	s.logger.Info("classrooms disconnected", zap.Uint("from", fromID), zap.Uint("to", toID))
	return nil
}

// ListFriends returns the classroom's friends annotated with manual interest
// similarity, best overlap first. Ties keep edge creation order, oldest
// friendship first.
func (s *RelationGraphService) ListFriends(classroomID uint) ([]models.Friend, error) {
	owner, err := s.classrooms.GetClassroomByID(classroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, storeErr(err)
	}

	edges, err := s.relations.GetOutgoingEdges(classroomID)
	if err != nil {
		return nil, storeErr(err)
	}

	friends := make([]models.Friend, 0, len(edges))
	for _, edge := range edges {
		friend, err := s.classrooms.GetClassroomByID(edge.ToClassroomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, storeErr(err)
		}

		similarity := matching.InterestSimilarity(owner.Interests, friend.Interests)
		friends = append(friends, models.Friend{
			Classroom:          *friend,
			InterestSimilarity: math.Round(similarity*1000) / 1000,
			ConnectedSince:     edge.CreatedAt,
		})
	}

	// Edges arrive oldest first; the stable sort keeps that order for ties.
	sort.SliceStable(friends, func(i, j int) bool {
		return friends[i].InterestSimilarity > friends[j].InterestSimilarity
	})
	return friends, nil
}

// FriendCount returns the number of friendships the classroom has.
func (s *RelationGraphService) FriendCount(classroomID uint) (int64, error) {
	count, err := s.relations.CountOutgoing(classroomID)
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
