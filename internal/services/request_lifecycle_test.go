package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/penpalsapp/backend/internal/models"
)

type lifecycleFixture struct {
	svc           *FriendRequestService
	relations     *fakeRelationRepo
	requests      *fakeFriendRequestRepo
	notifications *fakeNotificationRepo
}

func newLifecycleFixture(classrooms ...*models.Classroom) *lifecycleFixture {
	relations := newFakeRelationRepo()
	requests := newFakeFriendRequestRepo(relations)
	notifications := &fakeNotificationRepo{}
	svc := NewFriendRequestService(requests, relations, newFakeClassroomRepo(classrooms...), notifications, zap.NewNop())
	return &lifecycleFixture{svc: svc, relations: relations, requests: requests, notifications: notifications}
}

func twoClassrooms() []*models.Classroom {
	return []*models.Classroom{
		{ID: 1, AccountID: 10, Name: "Room A"},
		{ID: 2, AccountID: 20, Name: "Room B"},
	}
}

func TestSendCreatesPendingRequest(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	req, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestStatusPending, req.Status)
	assert.Equal(t, uint(1), req.SenderClassroomID)
	assert.Equal(t, uint(2), req.ReceiverClassroomID)

	// The receiver's account gets notified.
	require.Len(t, f.notifications.created, 1)
	assert.Equal(t, uint(20), f.notifications.created[0].AccountID)
	assert.Equal(t, "New Friend Request", f.notifications.created[0].Title)
}

func TestSendToSelf(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	_, err := f.svc.Send(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestSendToMissingClassroom(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	_, err := f.svc.Send(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrClassroomNotFound)
}

func TestSendWhenAlreadyFriends(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)
	require.NoError(t, f.relations.CreateEdgePair(1, 2))

	_, err := f.svc.Send(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyFriends)
}

func TestSendDuplicatePending(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	_, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = f.svc.Send(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrDuplicatePending)
}

func TestSendMutualShortCircuit(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	first, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)

	// The reverse send accepts the existing request instead of creating a
	// second one.
	second, err := f.svc.Send(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.FriendRequestStatusAccepted, second.Status)

	connected, err := f.relations.AnyEdgeBetween(1, 2)
	require.NoError(t, err)
	assert.True(t, connected)

	// Only one request row exists.
	assert.Len(t, f.requests.requests, 1)

	// Send notification to room B's account, then acceptance back to room
	// A's account (the original sender).
	require.Len(t, f.notifications.created, 2)
	assert.Equal(t, uint(10), f.notifications.created[1].AccountID)
	assert.Equal(t, "Friend Request Accepted", f.notifications.created[1].Title)
}

func TestAcceptCreatesFriendship(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	req, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)

	accepted, err := f.svc.Accept(context.Background(), req.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestStatusAccepted, accepted.Status)

	connected, err := f.relations.AnyEdgeBetween(1, 2)
	require.NoError(t, err)
	assert.True(t, connected)

	// The sender's account is told about the acceptance.
	require.Len(t, f.notifications.created, 2)
	assert.Equal(t, uint(10), f.notifications.created[1].AccountID)
}

func TestAcceptOnlyReceiver(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	req, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = f.svc.Accept(context.Background(), req.ID, 1)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAcceptTwice(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	req, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = f.svc.Accept(context.Background(), req.ID, 2)
	require.NoError(t, err)

	_, err = f.svc.Accept(context.Background(), req.ID, 2)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestAcceptUnknownRequest(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	_, err := f.svc.Accept(context.Background(), 42, 2)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRejectTerminal(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	req, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)

	rejected, err := f.svc.Reject(context.Background(), req.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestStatusRejected, rejected.Status)

	// No friendship and no further transitions.
	connected, _ := f.relations.AnyEdgeBetween(1, 2)
	assert.False(t, connected)
	_, err = f.svc.Accept(context.Background(), req.ID, 2)
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	// A rejected request does not block a fresh send.
	again, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestStatusPending, again.Status)
}

func TestRejectOnlyReceiver(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	req, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = f.svc.Reject(context.Background(), req.ID, 1)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelOnlySender(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)

	req, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), req.ID, 2)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := f.svc.Cancel(context.Background(), req.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestStatusCancelled, cancelled.Status)
}

func TestPendingForClassroom(t *testing.T) {
	f := newLifecycleFixture(
		&models.Classroom{ID: 1, AccountID: 10, Name: "Room A"},
		&models.Classroom{ID: 2, AccountID: 20, Name: "Room B"},
		&models.Classroom{ID: 3, AccountID: 30, Name: "Room C"},
	)

	_, err := f.svc.Send(context.Background(), 1, 3)
	require.NoError(t, err)
	_, err = f.svc.Send(context.Background(), 2, 3)
	require.NoError(t, err)

	pending, err := f.svc.PendingForClassroom(3)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// Newest first.
	assert.Equal(t, uint(2), pending[0].SenderClassroomID)
	assert.Equal(t, uint(1), pending[1].SenderClassroomID)
}

func TestNotificationFailureDoesNotFailSend(t *testing.T) {
	f := newLifecycleFixture(twoClassrooms()...)
	f.notifications.err = assert.AnError

	req, err := f.svc.Send(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestStatusPending, req.Status)
}
