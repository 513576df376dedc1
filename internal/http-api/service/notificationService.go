package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/notify"
	"recipehub/internal/http-api/repository"
)

// NotificationService is the only writer and primary reader of notification
// records. It owns the unread/read state machine and the filtering of
// notifications whose target no longer exists.
type NotificationService interface {
	Notify(ctx context.Context, recipientID int64, kind notify.Kind, targetID int64) error
	ListForRecipient(ctx context.Context, userID int64) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

type notificationService struct {
	repo     repository.NotificationRepository
	registry *notify.Registry
	logger   *slog.Logger
}

func NewNotificationService(repo repository.NotificationRepository, registry *notify.Registry, logger *slog.Logger) NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{
		repo:     repo,
		registry: registry,
		logger:   logger,
	}
}

// Notify persists an unread notification for the recipient. The kind is
// validated against the registry here so a misconfigured producer fails fast
// instead of writing records that can never render. Producers are responsible
// for not notifying a user about their own action.
func (s *notificationService) Notify(ctx context.Context, recipientID int64, kind notify.Kind, targetID int64) error {
	if !s.registry.Known(kind) {
		return fmt.Errorf("%w: %q", notify.ErrUnknownKind, kind)
	}

	notification := &models.Notification{
		UserID:   recipientID,
		Kind:     string(kind),
		TargetID: targetID,
	}
	return s.repo.Create(ctx, notification)
}

// ListForRecipient returns the user's notifications newest first, rendered
// through the registry. Notifications whose target was deleted are dropped
// silently; an unregistered kind is dropped too but logged, since that is a
// configuration problem rather than normal entity churn. Viewing the list
// marks every notification of the user as read.
func (s *notificationService) ListForRecipient(ctx context.Context, userID int64) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rendered := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		kind := notify.Kind(n.Kind)

		target, err := s.registry.Resolve(ctx, kind, n.TargetID)
		if err != nil {
			if errors.Is(err, notify.ErrUnknownKind) {
				s.logger.Warn("notification references unregistered kind",
					"kind", n.Kind, "notification_id", n.ID)
				continue
			}
			return nil, err
		}
		if target == nil {
			// target deleted since the notification was created
			continue
		}

		message, err := s.registry.Render(kind, target)
		if err != nil {
			s.logger.Warn("notification failed to render",
				"kind", n.Kind, "notification_id", n.ID, "error", err)
			continue
		}

		rendered = append(rendered, dto.NotificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Message:   message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}

	// Viewing the list is what marks notifications read. The update covers
	// the full unfiltered set belonging to the user, unresolvable rows
	// included.
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return nil, err
	}

	return rendered, nil
}

// UnreadCount counts unread notifications whose target still resolves. Pure
// peek for the polling badge; nothing transitions to read here.
func (s *notificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	notifications, err := s.repo.GetUnreadByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range notifications {
		target, err := s.registry.Resolve(ctx, notify.Kind(n.Kind), n.TargetID)
		if err != nil {
			if errors.Is(err, notify.ErrUnknownKind) {
				s.logger.Warn("notification references unregistered kind",
					"kind", n.Kind, "notification_id", n.ID)
				continue
			}
			return 0, err
		}
		if target != nil {
			count++
		}
	}
	return count, nil
}
