package repositories

import (
	"github.com/nkiselev/microfeed/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// List methods return posts newest first.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetAllPosts(offset, limit int) ([]models.Post, error)
	GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error)
	GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error)
	GetPostsByFollowed(followerID uint, offset, limit int) ([]models.Post, error)
	CountAllPosts() (int64, error)
	CountPostsByGroupID(groupID uint) (int64, error)
	CountPostsByAuthorID(authorID uint) (int64, error)
	CountPostsByFollowed(followerID uint) (int64, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post. CreatedAt is assigned by the store and
// never touched again.
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves a page of all posts, newest first
func (r *PostgresPostRepository) GetAllPosts(offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// GetPostsByGroupID retrieves a page of one group's posts, newest first
func (r *PostgresPostRepository) GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("group_id = ?", groupID).
		Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// GetPostsByAuthorID retrieves a page of one author's posts, newest first
func (r *PostgresPostRepository) GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// GetPostsByFollowed retrieves a page of posts authored by anyone the given
// user follows, newest first
func (r *PostgresPostRepository) GetPostsByFollowed(followerID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("author_id IN (?)",
		r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", followerID),
	).Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// CountAllPosts returns the total number of posts
func (r *PostgresPostRepository) CountAllPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// CountPostsByGroupID returns the number of posts in a group
func (r *PostgresPostRepository) CountPostsByGroupID(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

// CountPostsByAuthorID returns the number of posts by an author
func (r *PostgresPostRepository) CountPostsByAuthorID(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// CountPostsByFollowed returns the number of posts visible in a user's
// following feed
func (r *PostgresPostRepository) CountPostsByFollowed(followerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id IN (?)",
		r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", followerID),
	).Count(&count).Error
	return count, err
}

// UpdatePost persists edits to text, group and image. CreatedAt is kept as is.
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Model(post).Updates(map[string]interface{}{
		"text":     post.Text,
		"group_id": post.GroupID,
		"image_id": post.ImageID,
	}).Error
}

// DeletePost deletes a post by ID. Its comments cascade.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
