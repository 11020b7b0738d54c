package repositories

import (
	"errors"

	"github.com/penpalsapp/backend/internal/models"
	"gorm.io/gorm"
)

// ErrRequestNotPending is returned by guarded status transitions when the
// request already left the pending state. Terminal states are write-once.
var ErrRequestNotPending = errors.New("friend request is no longer pending")

// FriendRequestRepository defines the interface for friend request operations
type FriendRequestRepository interface {
	CreateFriendRequest(req *models.FriendRequest) error
	GetFriendRequestByID(id uint) (*models.FriendRequest, error)
	GetPendingBySenderReceiver(senderID, receiverID uint) (*models.FriendRequest, error)
	GetPendingForReceiver(receiverID uint) ([]models.FriendRequest, error)
	ResolvePending(id uint, status models.FriendRequestStatus) error
	AcceptPendingWithEdges(id uint) (*models.FriendRequest, error)
}

// PostgresFriendRequestRepository implements FriendRequestRepository for PostgreSQL
type PostgresFriendRequestRepository struct {
	db *gorm.DB
}

// NewPostgresFriendRequestRepository creates a new PostgresFriendRequestRepository
func NewPostgresFriendRequestRepository(db *gorm.DB) *PostgresFriendRequestRepository {
	return &PostgresFriendRequestRepository{db: db}
}

// CreateFriendRequest inserts a new pending request. The partial unique index
// on pending (sender, receiver) turns a concurrent duplicate send into
// gorm.ErrDuplicatedKey.
func (r *PostgresFriendRequestRepository) CreateFriendRequest(req *models.FriendRequest) error {
	req.Status = models.FriendRequestStatusPending
	return r.db.Create(req).Error
}

func (r *PostgresFriendRequestRepository) GetFriendRequestByID(id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PostgresFriendRequestRepository) GetPendingBySenderReceiver(senderID, receiverID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where("sender_classroom_id = ? AND receiver_classroom_id = ? AND status = ?",
		senderID, receiverID, models.FriendRequestStatusPending).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PostgresFriendRequestRepository) GetPendingForReceiver(receiverID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Where("receiver_classroom_id = ? AND status = ?",
		receiverID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ResolvePending flips a pending request into a terminal state with no side
// effects. The WHERE status='pending' guard is the write-once check: zero
// rows affected means somebody resolved it first.
func (r *PostgresFriendRequestRepository) ResolvePending(id uint, status models.FriendRequestStatus) error {
	res := r.db.Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", id, models.FriendRequestStatusPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRequestNotPending
	}
	return nil
}

// AcceptPendingWithEdges accepts a pending request and creates both relation
// edges in a single transaction. Either the status flip and the full edge
// pair commit together or none of it does.
func (r *PostgresFriendRequestRepository) AcceptPendingWithEdges(id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND status = ?", id, models.FriendRequestStatusPending).
			Update("status", models.FriendRequestStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotPending
		}
		if err := tx.First(&req, id).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.RelationEdge{
			FromClassroomID: req.SenderClassroomID,
			ToClassroomID:   req.ReceiverClassroomID,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.RelationEdge{
			FromClassroomID: req.ReceiverClassroomID,
			ToClassroomID:   req.SenderClassroomID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}
