package repositories

import (
	"github.com/nkiselev/microfeed/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetNotificationsByRecipient(recipientID uint) ([]models.Notification, error)
	MarkAsRead(id, recipientID uint) error
}

// PostgresNotificationRepository implements NotificationRepository for PostgreSQL
type PostgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// CreateNotification creates a new notification
func (r *PostgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetNotificationsByRecipient retrieves a user's notifications, newest first
func (r *PostgresNotificationRepository) GetNotificationsByRecipient(recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").Find(&notifications).Error
	return notifications, err
}

// MarkAsRead marks one of the recipient's notifications as read
func (r *PostgresNotificationRepository) MarkAsRead(id, recipientID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
