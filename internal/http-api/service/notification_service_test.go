package service_test

import (
	"context"
	"testing"
	"time"

	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/notify"
	"recipehub/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- MOCK REPOSITORY ---

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepo) GetByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepo) GetUnreadByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkAllAsRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- FIXTURE REGISTRY ---

// testRegistry resolves follow targets from the given user set and treats
// every other id as deleted.
func testRegistry(t *testing.T, users map[int64]*models.User) *notify.Registry {
	t.Helper()
	r := notify.NewRegistry()
	err := r.Register(notify.KindFollow, func(ctx context.Context, id int64) (any, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		return nil, nil
	}, `{{.Username}} started following you`)
	assert.NoError(t, err)
	return r
}

// --- TESTS ---

func TestNotificationService_Notify(t *testing.T) {
	users := map[int64]*models.User{7: {ID: 7, Username: "alice"}}

	t.Run("CreatesUnreadRecord", func(t *testing.T) {
		mockRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(mockRepo, testRegistry(t, users), nil)

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.UserID == 3 && n.Kind == "follow" && n.TargetID == 7 && !n.Read
		})).Return(nil).Once()

		err := svc.Notify(context.Background(), 3, notify.KindFollow, 7)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RejectsUnknownKind", func(t *testing.T) {
		mockRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(mockRepo, testRegistry(t, users), nil)

		err := svc.Notify(context.Background(), 3, "upvote", 7)
		assert.ErrorIs(t, err, notify.ErrUnknownKind)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_ListForRecipient(t *testing.T) {
	users := map[int64]*models.User{
		7: {ID: 7, Username: "alice"},
		8: {ID: 8, Username: "bob"},
	}
	now := time.Now()

	t.Run("RendersNewestFirstAndMarksRead", func(t *testing.T) {
		mockRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(mockRepo, testRegistry(t, users), nil)

		stored := []models.Notification{
			{ID: 2, UserID: 3, Kind: "follow", TargetID: 8, Read: false, CreatedAt: now},
			{ID: 1, UserID: 3, Kind: "follow", TargetID: 7, Read: true, CreatedAt: now.Add(-time.Hour)},
		}
		mockRepo.On("GetByUser", mock.Anything, int64(3)).Return(stored, nil).Once()
		mockRepo.On("MarkAllAsRead", mock.Anything, int64(3)).Return(nil).Once()

		result, err := svc.ListForRecipient(context.Background(), 3)
		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, int64(2), result[0].ID)
		assert.Contains(t, string(result[0].Message), "bob")
		assert.False(t, result[0].Read)
		assert.Equal(t, int64(1), result[1].ID)
		assert.Contains(t, string(result[1].Message), "alice")
		assert.True(t, result[1].Read)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DropsDeletedTargets", func(t *testing.T) {
		mockRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(mockRepo, testRegistry(t, users), nil)

		stored := []models.Notification{
			{ID: 2, UserID: 3, Kind: "follow", TargetID: 999, CreatedAt: now},
			{ID: 1, UserID: 3, Kind: "follow", TargetID: 7, CreatedAt: now.Add(-time.Hour)},
		}
		mockRepo.On("GetByUser", mock.Anything, int64(3)).Return(stored, nil).Once()
		mockRepo.On("MarkAllAsRead", mock.Anything, int64(3)).Return(nil).Once()

		result, err := svc.ListForRecipient(context.Background(), 3)
		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, int64(1), result[0].ID)
		// the dropped row is still flipped to read by MarkAllAsRead
		mockRepo.AssertExpectations(t)
	})

	t.Run("DropsUnregisteredKinds", func(t *testing.T) {
		mockRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(mockRepo, testRegistry(t, users), nil)

		stored := []models.Notification{
			{ID: 2, UserID: 3, Kind: "upvote", TargetID: 1, CreatedAt: now},
			{ID: 1, UserID: 3, Kind: "follow", TargetID: 7, CreatedAt: now.Add(-time.Hour)},
		}
		mockRepo.On("GetByUser", mock.Anything, int64(3)).Return(stored, nil).Once()
		mockRepo.On("MarkAllAsRead", mock.Anything, int64(3)).Return(nil).Once()

		result, err := svc.ListForRecipient(context.Background(), 3)
		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, int64(1), result[0].ID)
	})

	t.Run("EmptyList", func(t *testing.T) {
		mockRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(mockRepo, testRegistry(t, users), nil)

		mockRepo.On("GetByUser", mock.Anything, int64(3)).Return([]models.Notification{}, nil).Once()
		mockRepo.On("MarkAllAsRead", mock.Anything, int64(3)).Return(nil).Once()

		result, err := svc.ListForRecipient(context.Background(), 3)
		assert.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		mockRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(mockRepo, testRegistry(t, users), nil)

		mockRepo.On("GetByUser", mock.Anything, int64(3)).
			Return([]models.Notification{}, gorm.ErrInvalidDB).Once()

		_, err := svc.ListForRecipient(context.Background(), 3)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "MarkAllAsRead", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_UnreadCount(t *testing.T) {
	users := map[int64]*models.User{7: {ID: 7, Username: "alice"}}

	t.Run("CountsOnlyResolvable", func(t *testing.T) {
		mockRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(mockRepo, testRegistry(t, users), nil)

		unread := []models.Notification{
			{ID: 3, UserID: 3, Kind: "follow", TargetID: 7},
			{ID: 2, UserID: 3, Kind: "follow", TargetID: 999}, // deleted target
			{ID: 1, UserID: 3, Kind: "upvote", TargetID: 7},   // unregistered kind
		}
		mockRepo.On("GetUnreadByUser", mock.Anything, int64(3)).Return(unread, nil).Once()

		count, err := svc.UnreadCount(context.Background(), 3)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("DoesNotMarkRead", func(t *testing.T) {
		mockRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(mockRepo, testRegistry(t, users), nil)

		unread := []models.Notification{{ID: 1, UserID: 3, Kind: "follow", TargetID: 7}}
		mockRepo.On("GetUnreadByUser", mock.Anything, int64(3)).Return(unread, nil).Twice()

		for i := 0; i < 2; i++ {
			count, err := svc.UnreadCount(context.Background(), 3)
			assert.NoError(t, err)
			assert.Equal(t, 1, count)
		}
		mockRepo.AssertNotCalled(t, "MarkAllAsRead", mock.Anything, mock.Anything)
	})

	t.Run("Zero", func(t *testing.T) {
		mockRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(mockRepo, testRegistry(t, users), nil)

		mockRepo.On("GetUnreadByUser", mock.Anything, int64(3)).Return([]models.Notification{}, nil).Once()

		count, err := svc.UnreadCount(context.Background(), 3)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
