package service

import (
	"context"
	"errors"
	"log/slog"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/notify"
	"recipehub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewService interface {
	CreateReview(ctx context.Context, userID, recipeID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetRecipeReviews(ctx context.Context, recipeID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID, userID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	recipeRepo repository.RecipeRepository
	notifier   NotificationService
	logger     *slog.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, recipeRepo repository.RecipeRepository, notifier NotificationService, logger *slog.Logger) ReviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &reviewService{
		reviewRepo: reviewRepo,
		recipeRepo: recipeRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// CreateReview creates a review and notifies the recipe's owner, unless the
// reviewer owns the recipe themselves.
func (s *reviewService) CreateReview(ctx context.Context, userID, recipeID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	review := &models.Review{
		UserID:   userID,
		RecipeID: recipeID,
		Title:    req.Title,
		Body:     req.Body,
		Score:    req.Score,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// After-commit producer call; a notification failure is logged, never
	// propagated to the reviewer.
	if recipe.UserID != userID {
		if err := s.notifier.Notify(ctx, recipe.UserID, notify.KindReview, review.ID); err != nil {
			s.logger.Error("review notification failed",
				"recipe_id", recipeID, "review_id", review.ID, "error", err)
		}
	}

	// Reload with author data
	review, err = s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) GetRecipeReviews(ctx context.Context, recipeID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByRecipe(ctx, recipeID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	return dto.NewPaginatedReviewResponse(responses, int(total), page, pageSize), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID int64) error {
	if err := s.reviewRepo.Delete(ctx, reviewID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
