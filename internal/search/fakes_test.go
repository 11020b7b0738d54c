package search

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/penpalsapp/backend/internal/models"
)

// fakeStore is an in-memory vector collaborator with per-operation error
// injection and canned query results.
type fakeStore struct {
	entries map[string]Entry
	hits    []Hit

	lastQuery string
	lastLimit int

	upsertErr error
	deleteErr error
	queryErr  error
	wipeErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]Entry)}
}

func (s *fakeStore) Upsert(_ context.Context, entry Entry) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.entries[entry.Key] = entry
	return nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.entries, key)
	return nil
}

func (s *fakeStore) Query(_ context.Context, text string, limit int) ([]Hit, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	s.lastQuery = text
	s.lastLimit = limit
	if len(s.hits) > limit {
		return s.hits[:limit], nil
	}
	return s.hits, nil
}

func (s *fakeStore) DeleteAll(context.Context) error {
	if s.wipeErr != nil {
		return s.wipeErr
	}
	s.entries = make(map[string]Entry)
	return nil
}

type fakeClassroomRepo struct {
	classrooms map[uint]*models.Classroom
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
