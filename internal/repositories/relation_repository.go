package repositories

import (
	"github.com/penpalsapp/backend/internal/models"
	"gorm.io/gorm"
)

// RelationRepository defines the interface for relation edge operations.
// Edge pairs are always written and removed together; callers never get a way
// to persist a single direction.
type RelationRepository interface {
	CreateEdgePair(fromID, toID uint) error
	DeleteEdgePair(fromID, toID uint) (int64, error)
	EdgeExists(fromID, toID uint) (bool, error)
	AnyEdgeBetween(aID, bID uint) (bool, error)
	GetOutgoingEdges(classroomID uint) ([]models.RelationEdge, error)
	CountOutgoing(classroomID uint) (int64, error)
}

// PostgresRelationRepository implements RelationRepository for PostgreSQL
type PostgresRelationRepository struct {
	db *gorm.DB
}

// NewPostgresRelationRepository creates a new PostgresRelationRepository
func NewPostgresRelationRepository(db *gorm.DB) *PostgresRelationRepository {
	return &PostgresRelationRepository{db: db}
}

// CreateEdgePair inserts both directions in one transaction. A concurrent
// insert of the same pair trips the unique (from,to) index and the whole
// transaction rolls back with gorm.ErrDuplicatedKey.
func (r *PostgresRelationRepository) CreateEdgePair(fromID, toID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.RelationEdge{FromClassroomID: fromID, ToClassroomID: toID}).Error; err != nil {
			return err
		}
		return tx.Create(&models.RelationEdge{FromClassroomID: toID, ToClassroomID: fromID}).Error
	})
}

// DeleteEdgePair removes whichever directions exist between the pair and
// returns how many rows went away.
func (r *PostgresRelationRepository) DeleteEdgePair(fromID, toID uint) (int64, error) {
	res := r.db.Where(
		"(from_classroom_id = ? AND to_classroom_id = ?) OR (from_classroom_id = ? AND to_classroom_id = ?)",
		fromID, toID, toID, fromID,
	).Delete(&models.RelationEdge{})
	return res.RowsAffected, res.Error
}

func (r *PostgresRelationRepository) EdgeExists(fromID, toID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.RelationEdge{}).
		Where("from_classroom_id = ? AND to_classroom_id = ?", fromID, toID).
		Count(&count).Error
	return count > 0, err
}

// AnyEdgeBetween reports whether an edge exists in either direction.
func (r *PostgresRelationRepository) AnyEdgeBetween(aID, bID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.RelationEdge{}).
		Where("(from_classroom_id = ? AND to_classroom_id = ?) OR (from_classroom_id = ? AND to_classroom_id = ?)",
			aID, bID, bID, aID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRelationRepository) GetOutgoingEdges(classroomID uint) ([]models.RelationEdge, error) {
	var edges []models.RelationEdge
	err := r.db.Where("from_classroom_id = ?", classroomID).
		Order("created_at ASC").
		Find(&edges).Error
	return edges, err
}

func (r *PostgresRelationRepository) CountOutgoing(classroomID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.RelationEdge{}).
		Where("from_classroom_id = ?", classroomID).
		Count(&count).Error
	return count, err
}
