package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/penpalsapp/backend/internal/models"
)

func newRelationGraph(classrooms ...*models.Classroom) (*RelationGraphService, *fakeRelationRepo) {
	relations := newFakeRelationRepo()
	svc := NewRelationGraphService(relations, newFakeClassroomRepo(classrooms...), zap.NewNop())
	return svc, relations
}

func TestConnectCreatesBothDirections(t *testing.T) {
	svc, relations := newRelationGraph(
		&models.Classroom{ID: 1, Name: "A"},
		&models.Classroom{ID: 2, Name: "B"},
	)

	require.NoError(t, svc.Connect(1, 2))

	forward, err := relations.EdgeExists(1, 2)
	require.NoError(t, err)
	backward, err := relations.EdgeExists(2, 1)
	require.NoError(t, err)
	assert.True(t, forward)
	assert.True(t, backward)
}

func TestConnectSelf(t *testing.T) {
	svc, _ := newRelationGraph(&models.Classroom{ID: 1})

	err := svc.Connect(1, 1)
	assert.ErrorIs(t, err, ErrSelfConnection)
}

func TestConnectMissingClassroom(t *testing.T) {
	svc, _ := newRelationGraph(&models.Classroom{ID: 1})

	err := svc.Connect(1, 99)
	assert.ErrorIs(t, err, ErrClassroomNotFound)
}

func TestConnectTwice(t *testing.T) {
	svc, _ := newRelationGraph(
		&models.Classroom{ID: 1},
		&models.Classroom{ID: 2},
	)

	require.NoError(t, svc.Connect(1, 2))
	assert.ErrorIs(t, svc.Connect(1, 2), ErrAlreadyConnected)

	// The reverse direction already exists too.
	assert.ErrorIs(t, svc.Connect(2, 1), ErrAlreadyConnected)
}

func TestDisconnectRemovesBothDirections(t *testing.T) {
	svc, relations := newRelationGraph(
		&models.Classroom{ID: 1},
		&models.Classroom{ID: 2},
	)
	require.NoError(t, svc.Connect(1, 2))

	require.NoError(t, svc.Disconnect(2, 1))

	forward, _ := relations.EdgeExists(1, 2)
	backward, _ := relations.EdgeExists(2, 1)
	assert.False(t, forward)
	assert.False(t, backward)
}

func TestDisconnectNotConnected(t *testing.T) {
	svc, _ := newRelationGraph(
		&models.Classroom{ID: 1},
		&models.Classroom{ID: 2},
	)

	assert.ErrorIs(t, svc.Disconnect(1, 2), ErrNotConnected)
}

func TestListFriendsOrderedBySimilarity(t *testing.T) {
	owner := &models.Classroom{ID: 1, Interests: []string{"math", "art"}}
	svc, _ := newRelationGraph(
		owner,
		&models.Classroom{ID: 2, Interests: []string{"music"}},
		&models.Classroom{ID: 3, Interests: []string{"math", "art"}},
		&models.Classroom{ID: 4, Interests: []string{"art", "music"}},
	)
	require.NoError(t, svc.Connect(1, 2))
	require.NoError(t, svc.Connect(1, 3))
	require.NoError(t, svc.Connect(1, 4))

	friends, err := svc.ListFriends(1)
	require.NoError(t, err)
	require.Len(t, friends, 3)

	assert.Equal(t, uint(3), friends[0].Classroom.ID)
	assert.Equal(t, 1.0, friends[0].InterestSimilarity)
	assert.Equal(t, uint(4), friends[1].Classroom.ID)
	assert.Equal(t, 0.333, friends[1].InterestSimilarity)
	assert.Equal(t, uint(2), friends[2].Classroom.ID)
	assert.Equal(t, 0.0, friends[2].InterestSimilarity)
}

func TestListFriendsTiesKeepConnectionOrder(t *testing.T) {
	owner := &models.Classroom{ID: 1}
	svc, _ := newRelationGraph(
		owner,
		&models.Classroom{ID: 2},
		&models.Classroom{ID: 3},
		&models.Classroom{ID: 4},
	)
	// All similarities are zero; order must be oldest friendship first.
	require.NoError(t, svc.Connect(1, 3))
	require.NoError(t, svc.Connect(1, 2))
	require.NoError(t, svc.Connect(1, 4))

	friends, err := svc.ListFriends(1)
	require.NoError(t, err)
	require.Len(t, friends, 3)
	assert.Equal(t, uint(3), friends[0].Classroom.ID)
	assert.Equal(t, uint(2), friends[1].Classroom.ID)
	assert.Equal(t, uint(4), friends[2].Classroom.ID)
}

func TestListFriendsUnknownClassroom(t *testing.T) {
	svc, _ := newRelationGraph()

	_, err := svc.ListFriends(5)
	assert.ErrorIs(t, err, ErrClassroomNotFound)
}

func TestFriendCount(t *testing.T) {
	svc, _ := newRelationGraph(
		&models.Classroom{ID: 1},
		&models.Classroom{ID: 2},
		&models.Classroom{ID: 3},
	)
	require.NoError(t, svc.Connect(1, 2))
	require.NoError(t, svc.Connect(3, 1))

	count, err := svc.FriendCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
