package repository

import (
	"context"
	"fmt"
	"strings"

	"recipehub/internal/http-api/models"

	"gorm.io/gorm"
)

type RecipeRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Recipe, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	GetByIDWithReviews(ctx context.Context, id int64) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, id int64, recipe *models.Recipe) error
	Delete(ctx context.Context, id int64) error
	GetByUser(ctx context.Context, userID int64, limit int) ([]models.Recipe, error)
	Search(ctx context.Context, query string) ([]models.Recipe, error)
}

type RecipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{db: db}
}

func (r *RecipeRepo) GetAll(ctx context.Context, page, pageSize int) ([]models.Recipe, int64, error) {
	var list []models.Recipe
	var total int64

	// Count total records
	if err := r.db.WithContext(ctx).Model(&models.Recipe{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *RecipeRepo) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).Preload("Author").First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetByIDWithReviews loads a recipe together with its reviews and their
// authors, for the detail view.
func (r *RecipeRepo) GetByIDWithReviews(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at DESC")
		}).
		Preload("Reviews.Author").
		First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepo) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepo) Update(ctx context.Context, id int64, recipe *models.Recipe) error {
	recipe.ID = id
	if err := r.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Recipe{}, id).Error; err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// GetByUser returns the user's most recent recipes, newest first.
func (r *RecipeRepo) GetByUser(ctx context.Context, userID int64, limit int) ([]models.Recipe, error) {
	var list []models.Recipe
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get recipes by user: %w", err)
	}
	return list, nil
}

// Search performs case-insensitive partial match on title, description and
// ingredients. Splits the query into tokens and requires each token to appear
// in at least one of the fields.
func (r *RecipeRepo) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	var list []models.Recipe
	tokens := strings.Fields(query)
	db := r.db.WithContext(ctx)

	// if empty tokens, return empty list
	if len(tokens) == 0 {
		return list, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*3)
	for _, t := range tokens {
		p := "%" + t + "%"
		clauses = append(clauses, "(title ILIKE ? OR COALESCE(description,'') ILIKE ? OR ingredients ILIKE ?)")
		args = append(args, p, p, p)
	}

	where := strings.Join(clauses, " AND ")
	if err := db.Preload("Author").Where(where, args...).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return list, nil
}
