package repositories

import (
	"github.com/nkiselev/microfeed/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow-edge data operations
type FollowRepository interface {
	EnsureFollow(followerID, followingID uint) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// EnsureFollow creates the follow edge if it does not already exist.
// The unique (follower, following) index plus ON CONFLICT DO NOTHING makes
// this safe under concurrent duplicate requests: the loser's insert is a
// no-op, not an error.
func (r *PostgresFollowRepository) EnsureFollow(followerID, followingID uint) error {
	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

// DeleteFollow removes the follow edge if present. A missing edge is not
// an error.
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	return r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether follower has an edge to following
func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowersCount returns how many users follow the given user
func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

// GetFollowingCount returns how many users the given user follows
func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
