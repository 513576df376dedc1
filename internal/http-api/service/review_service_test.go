package service_test

import (
	"context"
	"errors"
	"testing"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/notify"
	"recipehub/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestReviewService_CreateReview(t *testing.T) {
	req := dto.CreateReviewRequest{Title: "Great", Body: "Made it twice already", Score: 5}

	t.Run("NotifiesRecipeOwner", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		recipeRepo := new(MockRecipeRepo)
		notifier := new(MockNotifier)
		svc := service.NewReviewService(reviewRepo, recipeRepo, notifier, nil)

		recipe := &models.Recipe{ID: 9, UserID: 1, Title: "Carbonara"}
		recipeRepo.On("GetByID", mock.Anything, int64(9)).Return(recipe, nil).Once()
		reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
			return r.UserID == 2 && r.RecipeID == 9 && r.Score == 5
		})).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Review).ID = 42
		}).Once()
		notifier.On("Notify", mock.Anything, int64(1), notify.KindReview, int64(42)).Return(nil).Once()
		reviewRepo.On("GetByID", mock.Anything, int64(42)).Return(&models.Review{
			ID: 42, UserID: 2, RecipeID: 9, Score: 5,
			Author: models.User{ID: 2, Username: "bob"},
		}, nil).Once()

		resp, err := svc.CreateReview(context.Background(), 2, 9, req)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "bob", resp.Username)
		notifier.AssertExpectations(t)
	})

	t.Run("NoSelfNotification", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		recipeRepo := new(MockRecipeRepo)
		notifier := new(MockNotifier)
		svc := service.NewReviewService(reviewRepo, recipeRepo, notifier, nil)

		recipe := &models.Recipe{ID: 9, UserID: 2}
		recipeRepo.On("GetByID", mock.Anything, int64(9)).Return(recipe, nil).Once()
		reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Review).ID = 43
		}).Once()
		reviewRepo.On("GetByID", mock.Anything, int64(43)).Return(&models.Review{ID: 43, UserID: 2, RecipeID: 9}, nil).Once()

		_, err := svc.CreateReview(context.Background(), 2, 9, req)
		assert.NoError(t, err)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotificationFailureDoesNotFailReview", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		recipeRepo := new(MockRecipeRepo)
		notifier := new(MockNotifier)
		svc := service.NewReviewService(reviewRepo, recipeRepo, notifier, nil)

		recipe := &models.Recipe{ID: 9, UserID: 1}
		recipeRepo.On("GetByID", mock.Anything, int64(9)).Return(recipe, nil).Once()
		reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Review).ID = 44
		}).Once()
		notifier.On("Notify", mock.Anything, int64(1), notify.KindReview, int64(44)).
			Return(errors.New("db down")).Once()
		reviewRepo.On("GetByID", mock.Anything, int64(44)).Return(&models.Review{ID: 44, UserID: 2, RecipeID: 9}, nil).Once()

		resp, err := svc.CreateReview(context.Background(), 2, 9, req)
		assert.NoError(t, err)
		assert.Equal(t, int64(44), resp.ID)
	})

	t.Run("RecipeNotFound", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		recipeRepo := new(MockRecipeRepo)
		notifier := new(MockNotifier)
		svc := service.NewReviewService(reviewRepo, recipeRepo, notifier, nil)

		recipeRepo.On("GetByID", mock.Anything, int64(999)).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.CreateReview(context.Background(), 2, 999, req)
		assert.ErrorIs(t, err, service.ErrRecipeNotFound)
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReviewService_DeleteReview(t *testing.T) {
	t.Run("OnlyOwnRows", func(t *testing.T) {
		reviewRepo := new(MockReviewRepo)
		svc := service.NewReviewService(reviewRepo, new(MockRecipeRepo), new(MockNotifier), nil)

		reviewRepo.On("Delete", mock.Anything, int64(42), int64(2)).Return(gorm.ErrRecordNotFound).Once()

		err := svc.DeleteReview(context.Background(), 42, 2)
		assert.ErrorIs(t, err, service.ErrReviewNotFound)
	})
}
