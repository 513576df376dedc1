package repository

import (
	"context"

	"recipehub/internal/http-api/models"

	"gorm.io/gorm"
)

// NotificationRepository is the only reader/writer of notification rows.
// Every query is scoped to the recipient's user id; there is no lookup that
// takes an arbitrary recipient from request input.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	GetUnreadByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkAllAsRead(ctx context.Context, userID int64) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// GetByUser returns all of a user's notifications, newest first. Ties on the
// timestamp fall back to descending id so the order stays deterministic.
func (r *notificationRepository) GetByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) GetUnreadByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND read = false", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Update("read", true).Error
}
