package repositories

import (
	"github.com/penpalsapp/backend/internal/models"
	"gorm.io/gorm"
)

// ClassroomRepository defines the interface for classroom data operations
type ClassroomRepository interface {
	CreateClassroom(classroom *models.Classroom) error
	GetClassroomByID(id uint) (*models.Classroom, error)
	GetClassroomsByAccountID(accountID uint) ([]models.Classroom, error)
	GetClassrooms(limit int) ([]models.Classroom, error)
	GetClassroomsWithInterests() ([]models.Classroom, error)
	UpdateClassroom(classroom *models.Classroom) error
	DeleteClassroom(id uint) error
}

// PostgresClassroomRepository implements ClassroomRepository for PostgreSQL
type PostgresClassroomRepository struct {
	db *gorm.DB
}

// NewPostgresClassroomRepository creates a new PostgresClassroomRepository
func NewPostgresClassroomRepository(db *gorm.DB) *PostgresClassroomRepository {
	return &PostgresClassroomRepository{db: db}
}

func (r *PostgresClassroomRepository) CreateClassroom(classroom *models.Classroom) error {
	return r.db.Create(classroom).Error
}

func (r *PostgresClassroomRepository) GetClassroomByID(id uint) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := r.db.First(&classroom, id).Error; err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *PostgresClassroomRepository) GetClassroomsByAccountID(accountID uint) ([]models.Classroom, error) {
	var classrooms []models.Classroom
	err := r.db.Where("account_id = ?", accountID).Order("id ASC").Find(&classrooms).Error
	return classrooms, err
}

// GetClassrooms retrieves classrooms sorted newest first
func (r *PostgresClassroomRepository) GetClassrooms(limit int) ([]models.Classroom, error) {
	var classrooms []models.Classroom
	if err := r.db.Order("id DESC").Limit(limit).Find(&classrooms).Error; err != nil {
		return nil, err
	}
	return classrooms, nil
}

// GetClassroomsWithInterests retrieves classrooms whose interest set is
// non-empty. Used by the index rebuild.
func (r *PostgresClassroomRepository) GetClassroomsWithInterests() ([]models.Classroom, error) {
	var classrooms []models.Classroom
	err := r.db.Where("interests IS NOT NULL AND interests::text NOT IN ('[]', 'null')").
		Find(&classrooms).Error
	if err != nil {
		return nil, err
	}
	return classrooms, nil
}

func (r *PostgresClassroomRepository) UpdateClassroom(classroom *models.Classroom) error {
	return r.db.Save(classroom).Error
}

// DeleteClassroom removes the classroom together with its relation edges and
// friend requests in one transaction, so no dangling edge survives.
func (r *PostgresClassroomRepository) DeleteClassroom(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("from_classroom_id = ? OR to_classroom_id = ?", id, id).
			Delete(&models.RelationEdge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_classroom_id = ? OR receiver_classroom_id = ?", id, id).
			Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Classroom{}, id).Error
	})
}
