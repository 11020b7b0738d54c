package repositories

import (
	"github.com/penpalsapp/backend/internal/models"
	"gorm.io/gorm"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	CreateAccount(account *models.Account) error
	GetAccountByID(id uint) (*models.Account, error)
	GetAccountByEmail(email string) (*models.Account, error)
	UpdateAccount(account *models.Account) error
	DeleteAccount(id uint) error
}

// PostgresAccountRepository implements AccountRepository for PostgreSQL
type PostgresAccountRepository struct {
	db *gorm.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository
func NewPostgresAccountRepository(db *gorm.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) CreateAccount(account *models.Account) error {
	return r.db.Create(account).Error
}

func (r *PostgresAccountRepository) GetAccountByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *PostgresAccountRepository) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *PostgresAccountRepository) UpdateAccount(account *models.Account) error {
	return r.db.Save(account).Error
}

func (r *PostgresAccountRepository) DeleteAccount(id uint) error {
	return r.db.Delete(&models.Account{}, id).Error
}
