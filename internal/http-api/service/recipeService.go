package service

import (
	"context"
	"errors"
	"log/slog"

	"recipehub/internal/http-api/cache"
	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/notify"
	"recipehub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotOwner       = errors.New("you don't have permission to modify this resource")
)

type RecipeService interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Recipe, int64, error)
	GetByID(ctx context.Context, id int64) (*dto.RecipeResponse, error)
	Create(ctx context.Context, userID int64, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error)
	Update(ctx context.Context, id, userID int64, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error)
	Delete(ctx context.Context, id, userID int64) error
	Search(ctx context.Context, query string) ([]dto.RecipeResponse, error)
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
	notifier   NotificationService
	views      *cache.ViewCounter
	logger     *slog.Logger
}

func NewRecipeService(recipeRepo repository.RecipeRepository, notifier NotificationService, views *cache.ViewCounter, logger *slog.Logger) RecipeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &recipeService{
		recipeRepo: recipeRepo,
		notifier:   notifier,
		views:      views,
		logger:     logger,
	}
}

func (s *recipeService) GetAll(ctx context.Context, page, pageSize int) ([]models.Recipe, int64, error) {
	return s.recipeRepo.GetAll(ctx, page, pageSize)
}

// GetByID loads the recipe detail with reviews, bumping the view counter.
func (s *recipeService) GetByID(ctx context.Context, id int64) (*dto.RecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByIDWithReviews(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	resp := dto.FromModelToRecipeResponse(recipe)
	resp.Views = s.views.Incr(ctx, id)
	return resp, nil
}

// Create publishes a recipe. When the request names an origin recipe the new
// one is a derivation: the origin's owner gets a "derive" notification unless
// they are the author. A nonexistent origin id is cleared and produces no
// notification; the recipe itself is still created.
func (s *recipeService) Create(ctx context.Context, userID int64, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	var origin *models.Recipe
	originID := req.OriginRecipeID
	if originID != nil {
		var err error
		origin, err = s.recipeRepo.GetByID(ctx, *originID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			origin = nil
			originID = nil
		}
	}

	recipe := &models.Recipe{
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Ingredients:    req.Ingredients,
		Directions:     req.Directions,
		OriginRecipeID: originID,
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	// Notify after the recipe write committed. Never notify yourself about
	// deriving your own recipe, and never fail the creation over a
	// notification problem.
	if origin != nil && origin.UserID != userID {
		if err := s.notifier.Notify(ctx, origin.UserID, notify.KindDerive, recipe.ID); err != nil {
			s.logger.Error("derive notification failed",
				"origin_recipe_id", origin.ID, "recipe_id", recipe.ID, "error", err)
		}
	}

	created, err := s.recipeRepo.GetByID(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToRecipeResponse(created), nil
}

func (s *recipeService) Update(ctx context.Context, id, userID int64, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if recipe.UserID != userID {
		return nil, ErrNotOwner
	}

	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.Ingredients = req.Ingredients
	recipe.Directions = req.Directions

	if err := s.recipeRepo.Update(ctx, id, recipe); err != nil {
		return nil, err
	}

	updated, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToRecipeResponse(updated), nil
}

func (s *recipeService) Delete(ctx context.Context, id, userID int64) error {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if recipe.UserID != userID {
		return ErrNotOwner
	}

	return s.recipeRepo.Delete(ctx, id)
}

func (s *recipeService) Search(ctx context.Context, query string) ([]dto.RecipeResponse, error) {
	recipes, err := s.recipeRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		responses = append(responses, *dto.FromModelToRecipeResponse(&recipes[i]))
	}
	return responses, nil
}
