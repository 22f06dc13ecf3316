package repositories

import (
	"github.com/nkiselev/microfeed/backend/internal/models"
	"gorm.io/gorm"
)

// GroupRepository defines the interface for group data operations
type GroupRepository interface {
	CreateGroup(group *models.Group) error
	GetGroupBySlug(slug string) (*models.Group, error)
	GetGroups() ([]models.Group, error)
	DeleteGroup(id uint) error
}

// PostgresGroupRepository implements GroupRepository for PostgreSQL
type PostgresGroupRepository struct {
	db *gorm.DB
}

// NewPostgresGroupRepository creates a new PostgresGroupRepository
func NewPostgresGroupRepository(db *gorm.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

// CreateGroup creates a new group. The slug uniqueness constraint surfaces
// as an error from the driver on conflict.
func (r *PostgresGroupRepository) CreateGroup(group *models.Group) error {
	return r.db.Create(group).Error
}

// GetGroupBySlug retrieves a group by its unique slug
func (r *PostgresGroupRepository) GetGroupBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// GetGroups retrieves all groups
func (r *PostgresGroupRepository) GetGroups() ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Order("title").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteGroup deletes a group by ID. The group's posts cascade.
func (r *PostgresGroupRepository) DeleteGroup(id uint) error {
	return r.db.Delete(&models.Group{}, id).Error
}
