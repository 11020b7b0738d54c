package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/penpalsapp/backend/internal/models"
	"github.com/penpalsapp/backend/internal/repositories"
)

// FriendRequestService is the state machine for directed friend requests:
// pending → accepted | rejected | cancelled, all terminal. Sending to a
// classroom that already has a pending request the other way is implicit
// mutual consent: the reverse request is accepted on the spot and no new row
// is created.
type FriendRequestService struct {
	requests      repositories.FriendRequestRepository
	relations     repositories.RelationRepository
	classrooms    repositories.ClassroomRepository
	notifications repositories.NotificationRepository
	logger        *zap.Logger
}

// NewFriendRequestService creates a new FriendRequestService
func NewFriendRequestService(
	requestRepo repositories.FriendRequestRepository,
	relationRepo repositories.RelationRepository,
	classroomRepo repositories.ClassroomRepository,
	notificationRepo repositories.NotificationRepository,
	logger *zap.Logger,
) *FriendRequestService {
	return &FriendRequestService{
		requests:      requestRepo,
		relations:     relationRepo,
		classrooms:    classroomRepo,
		notifications: notificationRepo,
		logger:        logger,
	}
}

// Send creates a pending request from sender to receiver, or — when the
// receiver already has a pending request toward the sender — accepts that
// reverse request instead and returns it. The returned request's status
// tells the caller which happened.
func (s *FriendRequestService) Send(ctx context.Context, senderID, receiverID uint) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}

	sender, err := s.getClassroom(senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.getClassroom(receiverID)
	if err != nil {
		return nil, err
	}

	connected, err := s.relations.AnyEdgeBetween(senderID, receiverID)
	if err != nil {
		return nil, storeErr(err)
	}
	if connected {
		return nil, ErrAlreadyFriends
	}

	if _, err := s.requests.GetPendingBySenderReceiver(senderID, receiverID); err == nil {
		return nil, ErrDuplicatePending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err)
	}

	// Mutual check: a pending request the other way means both sides want
	// the connection. Accept it instead of stacking a second request.
	reverse, err := s.requests.GetPendingBySenderReceiver(receiverID, senderID)
	if err == nil {
		accepted, err := s.requests.AcceptPendingWithEdges(reverse.ID)
		if err != nil {
			return nil, s.translateAccept(err)
		}

		s.emit(ctx, receiver.AccountID, "Friend Request Accepted",
			fmt.Sprintf("%s accepted your friend request.", sender.Name),
			models.NotificationKindSuccess, accepted.ID)

		s.logger.Info("mutual friend request auto-accepted",
			zap.Uint("request_id", accepted.ID),
			zap.Uint("sender", senderID), zap.Uint("receiver", receiverID))
		return accepted, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err)
	}

	req := &models.FriendRequest{
		SenderClassroomID:   senderID,
		ReceiverClassroomID: receiverID,
	}
	if err := s.requests.CreateFriendRequest(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePending
		}
		return nil, storeErr(err)
	}

	s.emit(ctx, receiver.AccountID, "New Friend Request",
		fmt.Sprintf("%s sent your classroom a friend request.", sender.Name),
		models.NotificationKindInfo, req.ID)

	s.logger.Info("friend request sent",
		zap.Uint("request_id", req.ID),
		zap.Uint("sender", senderID), zap.Uint("receiver", receiverID))
	return req, nil
}

// Accept resolves a pending request as accepted and creates the edge pair,
// all in one transaction. Only the receiver may accept.
func (s *FriendRequestService) Accept(ctx context.Context, requestID, actingClassroomID uint) (*models.FriendRequest, error) {
	req, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.ReceiverClassroomID != actingClassroomID {
		return nil, ErrForbidden
	}
	if req.Status != models.FriendRequestStatusPending {
		return nil, ErrAlreadyResolved
	}

	accepted, err := s.requests.AcceptPendingWithEdges(req.ID)
	if err != nil {
		return nil, s.translateAccept(err)
	}

	if sender, err := s.getClassroom(accepted.SenderClassroomID); err == nil {
		receiverName := ""
		if receiver, err := s.getClassroom(accepted.ReceiverClassroomID); err == nil {
			receiverName = receiver.Name
		}
		s.emit(ctx, sender.AccountID, "Friend Request Accepted",
			fmt.Sprintf("%s accepted your friend request.", receiverName),
			models.NotificationKindSuccess, accepted.ID)
	}

	s.logger.Info("friend request accepted", zap.Uint("request_id", accepted.ID))
	return accepted, nil
}

// Reject resolves a pending request as rejected. No edges, no notification.
func (s *FriendRequestService) Reject(ctx context.Context, requestID, actingClassroomID uint) (*models.FriendRequest, error) {
	return s.resolve(requestID, actingClassroomID, models.FriendRequestStatusRejected, false)
}

// Cancel lets the sender withdraw a pending request.
func (s *FriendRequestService) Cancel(ctx context.Context, requestID, actingClassroomID uint) (*models.FriendRequest, error) {
	return s.resolve(requestID, actingClassroomID, models.FriendRequestStatusCancelled, true)
}

// PendingForClassroom lists incoming pending requests, newest first.
func (s *FriendRequestService) PendingForClassroom(classroomID uint) ([]models.FriendRequest, error) {
	requests, err := s.requests.GetPendingForReceiver(classroomID)
	if err != nil {
		return nil, storeErr(err)
	}
	return requests, nil
}

func (s *FriendRequestService) resolve(requestID, actingClassroomID uint, status models.FriendRequestStatus, actorIsSender bool) (*models.FriendRequest, error) {
	req, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}

	party := req.ReceiverClassroomID
	if actorIsSender {
		party = req.SenderClassroomID
	}
	if party != actingClassroomID {
		return nil, ErrForbidden
	}
	if req.Status != models.FriendRequestStatusPending {
		return nil, ErrAlreadyResolved
	}

	if err := s.requests.ResolvePending(req.ID, status); err != nil {
		if errors.Is(err, repositories.ErrRequestNotPending) {
			return nil, ErrAlreadyResolved
		}
		return nil, storeErr(err)
	}

	req.Status = status
	s.logger.Info("friend request resolved",
		zap.Uint("request_id", req.ID), zap.String("status", string(status)))
	return req, nil
}

func (s *FriendRequestService) getClassroom(id uint) (*models.Classroom, error) {
	classroom, err := s.classrooms.GetClassroomByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, storeErr(err)
	}
	return classroom, nil
}

func (s *FriendRequestService) getRequest(id uint) (*models.FriendRequest, error) {
	req, err := s.requests.GetFriendRequestByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, storeErr(err)
	}
	return req, nil
}

func (s *FriendRequestService) translateAccept(err error) error {
	switch {
	case errors.Is(err, repositories.ErrRequestNotPending):
		return ErrAlreadyResolved
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyConnected
	default:
		return storeErr(err)
	}
}

// emit writes a notification, best effort. The relational transition has
// already committed by the time this runs; a failed emit is only logged.
func (s *FriendRequestService) emit(ctx context.Context, accountID uint, title, message, kind string, relatedID uint) {
	n := &models.Notification{
		AccountID: accountID,
		Title:     title,
		Message:   message,
		Kind:      kind,
		RelatedID: relatedID,
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		s.logger.Warn("notification emit failed",
			zap.Uint("account_id", accountID), zap.Error(err))
	}
}
