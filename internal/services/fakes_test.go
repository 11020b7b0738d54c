package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/penpalsapp/backend/internal/models"
	"github.com/penpalsapp/backend/internal/repositories"
)

// In-memory repository fakes mirroring the Postgres/Mongo behaviour the
// services rely on: gorm sentinel errors, unique-pair arbitration and
// pending-only guarded updates.

type fakeClassroomRepo struct {
	classrooms map[uint]*models.Classroom
	err        error
}

func newFakeClassroomRepo(classrooms ...*models.Classroom) *fakeClassroomRepo {
	r := &fakeClassroomRepo{classrooms: make(map[uint]*models.Classroom)}
	for _, c := range classrooms {
		r.classrooms[c.ID] = c
	}
	return r
}

func (r *fakeClassroomRepo) CreateClassroom(c *models.Classroom) error {
	r.classrooms[c.ID] = c
	return nil
}

func (r *fakeClassroomRepo) GetClassroomByID(id uint) (*models.Classroom, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.classrooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeClassroomRepo) GetClassroomsByAccountID(accountID uint) ([]models.Classroom, error) {
	var out []models.Classroom
	for _, c := range r.classrooms {
		if c.AccountID == accountID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeClassroomRepo) GetClassrooms(limit int) ([]models.Classroom, error) {
	out := make([]models.Classroom, 0, len(r.classrooms))
	for _, c := range r.classrooms {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeClassroomRepo) GetClassroomsWithInterests() ([]models.Classroom, error) {
	var out []models.Classroom
	for _, c := range r.classrooms {
		if len(c.Interests) > 0 {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeClassroomRepo) UpdateClassroom(c *models.Classroom) error {
	r.classrooms[c.ID] = c
	return nil
}

func (r *fakeClassroomRepo) DeleteClassroom(id uint) error {
	delete(r.classrooms, id)
	return nil
}

type fakeRelationRepo struct {
	edges []models.RelationEdge
	now   time.Time
	err   error
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *fakeRelationRepo) tick() time.Time {
	r.now = r.now.Add(time.Minute)
	return r.now
}

func (r *fakeRelationRepo) CreateEdgePair(fromID, toID uint) error {
	if r.err != nil {
		return r.err
	}
	for _, e := range r.edges {
		if e.FromClassroomID == fromID && e.ToClassroomID == toID {
			return gorm.ErrDuplicatedKey
		}
	}
	ts := r.tick()
	r.edges = append(r.edges,
		models.RelationEdge{FromClassroomID: fromID, ToClassroomID: toID, CreatedAt: ts},
		models.RelationEdge{FromClassroomID: toID, ToClassroomID: fromID, CreatedAt: ts},
	)
	return nil
}

func (r *fakeRelationRepo) DeleteEdgePair(fromID, toID uint) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var kept []models.RelationEdge
	var deleted int64
	for _, e := range r.edges {
		if (e.FromClassroomID == fromID && e.ToClassroomID == toID) ||
			(e.FromClassroomID == toID && e.ToClassroomID == fromID) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.edges = kept
	return deleted, nil
}

func (r *fakeRelationRepo) EdgeExists(fromID, toID uint) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, e := range r.edges {
		if e.FromClassroomID == fromID && e.ToClassroomID == toID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRelationRepo) AnyEdgeBetween(aID, bID uint) (bool, error) {
	forward, err := r.EdgeExists(aID, bID)
	if err != nil || forward {
		return forward, err
	}
	return r.EdgeExists(bID, aID)
}

func (r *fakeRelationRepo) GetOutgoingEdges(classroomID uint) ([]models.RelationEdge, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.RelationEdge
	for _, e := range r.edges {
		if e.FromClassroomID == classroomID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRelationRepo) CountOutgoing(classroomID uint) (int64, error) {
	edges, err := r.GetOutgoingEdges(classroomID)
	if err != nil {
		return 0, err
	}
	return int64(len(edges)), nil
}

type fakeFriendRequestRepo struct {
	requests  map[uint]*models.FriendRequest
	relations *fakeRelationRepo
	nextID    uint
}

func newFakeFriendRequestRepo(relations *fakeRelationRepo) *fakeFriendRequestRepo {
	return &fakeFriendRequestRepo{
		requests:  make(map[uint]*models.FriendRequest),
		relations: relations,
		nextID:    1,
	}
}

func (r *fakeFriendRequestRepo) CreateFriendRequest(req *models.FriendRequest) error {
	for _, existing := range r.requests {
		if existing.Status == models.FriendRequestStatusPending &&
			existing.SenderClassroomID == req.SenderClassroomID &&
			existing.ReceiverClassroomID == req.ReceiverClassroomID {
			return gorm.ErrDuplicatedKey
		}
	}
	req.ID = r.nextID
	r.nextID++
	req.Status = models.FriendRequestStatusPending
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	return nil
}

func (r *fakeFriendRequestRepo) GetFriendRequestByID(id uint) (*models.FriendRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakeFriendRequestRepo) GetPendingBySenderReceiver(senderID, receiverID uint) (*models.FriendRequest, error) {
	for _, req := range r.requests {
		if req.Status == models.FriendRequestStatusPending &&
			req.SenderClassroomID == senderID && req.ReceiverClassroomID == receiverID {
			copied := *req
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFriendRequestRepo) GetPendingForReceiver(receiverID uint) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, req := range r.requests {
		if req.Status == models.FriendRequestStatusPending && req.ReceiverClassroomID == receiverID {
			out = append(out, *req)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeFriendRequestRepo) ResolvePending(id uint, status models.FriendRequestStatus) error {
	req, ok := r.requests[id]
	if !ok || req.Status != models.FriendRequestStatusPending {
		return repositories.ErrRequestNotPending
	}
	req.Status = status
	return nil
}

func (r *fakeFriendRequestRepo) AcceptPendingWithEdges(id uint) (*models.FriendRequest, error) {
	req, ok := r.requests[id]
	if !ok || req.Status != models.FriendRequestStatusPending {
		return nil, repositories.ErrRequestNotPending
	}
	if err := r.relations.CreateEdgePair(req.SenderClassroomID, req.ReceiverClassroomID); err != nil {
		return nil, err
	}
	req.Status = models.FriendRequestStatusAccepted
	copied := *req
	return &copied, nil
}

type fakeNotificationRepo struct {
	created []models.Notification
	err     error
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNotificationRepo) GetByAccountID(context.Context, uint, int64) ([]models.Notification, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeNotificationRepo) GetUnreadCount(context.Context, uint) (int64, error) {
	return 0, errors.New("not implemented")
}

func (r *fakeNotificationRepo) MarkAsRead(context.Context, string, uint) error {
	return errors.New("not implemented")
}

func (r *fakeNotificationRepo) DeleteNotification(context.Context, string, uint) error {
	return errors.New("not implemented")
}
