package repository

import (
	"context"
	"fmt"
	"math/rand"

	"recipehub/internal/http-api/models"

	"gorm.io/gorm"
)

// Recipe book ids are random nine-digit numbers (100000000..999999999).
const recipeBookIDLowerBound = 100000000

type RecipeBookRepository interface {
	Create(ctx context.Context, book *models.RecipeBook) error
	GetByID(ctx context.Context, id int64) (*models.RecipeBook, error)
	GetRecipes(ctx context.Context, bookID int64, page, pageSize int) ([]models.Recipe, int64, error)
	GetByUser(ctx context.Context, userID int64) ([]models.RecipeBook, error)
	Update(ctx context.Context, book *models.RecipeBook) error
	Delete(ctx context.Context, id int64) error
	AddRecipes(ctx context.Context, bookID int64, recipeIDs []int64) error
	RemoveRecipes(ctx context.Context, bookID int64, recipeIDs []int64) error
}

type recipeBookRepository struct {
	db *gorm.DB
}

func NewRecipeBookRepository(db *gorm.DB) RecipeBookRepository {
	return &recipeBookRepository{db: db}
}

// Create assigns a random unique nine-digit id before inserting, retrying on
// the unlikely collision.
func (r *recipeBookRepository) Create(ctx context.Context, book *models.RecipeBook) error {
	for {
		id := recipeBookIDLowerBound + rand.Int63n(recipeBookIDLowerBound*9)
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.RecipeBook{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check recipe book id: %w", err)
		}
		if count == 0 {
			book.ID = id
			break
		}
	}

	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create recipe book: %w", err)
	}
	return nil
}

func (r *recipeBookRepository) GetByID(ctx context.Context, id int64) (*models.RecipeBook, error) {
	var book models.RecipeBook
	if err := r.db.WithContext(ctx).Preload("Owner").First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetRecipes pages through a book's recipes, newest additions first.
func (r *recipeBookRepository) GetRecipes(ctx context.Context, bookID int64, page, pageSize int) ([]models.Recipe, int64, error) {
	book := models.RecipeBook{ID: bookID}

	total := r.db.WithContext(ctx).Model(&book).Association("Recipes").Count()

	var recipes []models.Recipe
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Model(&book).
		Preload("Author").
		Order("recipes.created_at desc").
		Limit(pageSize).
		Offset(offset).
		Association("Recipes").
		Find(&recipes)
	if err != nil {
		return nil, 0, fmt.Errorf("get recipe book recipes: %w", err)
	}
	return recipes, total, nil
}

func (r *recipeBookRepository) GetByUser(ctx context.Context, userID int64) ([]models.RecipeBook, error) {
	var books []models.RecipeBook
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("get recipe books by user: %w", err)
	}
	return books, nil
}

func (r *recipeBookRepository) Update(ctx context.Context, book *models.RecipeBook) error {
	if err := r.db.WithContext(ctx).
		Model(&models.RecipeBook{ID: book.ID}).
		Updates(map[string]any{"title": book.Title, "description": book.Description}).Error; err != nil {
		return fmt.Errorf("update recipe book: %w", err)
	}
	return nil
}

func (r *recipeBookRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.RecipeBook{}, id).Error; err != nil {
		return fmt.Errorf("delete recipe book: %w", err)
	}
	return nil
}

func (r *recipeBookRepository) AddRecipes(ctx context.Context, bookID int64, recipeIDs []int64) error {
	if len(recipeIDs) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).Begin()
	var book models.RecipeBook
	if err := tx.First(&book, bookID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("recipe book not found: %w", err)
	}
	recipes := make([]models.Recipe, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		recipes = append(recipes, models.Recipe{ID: id})
	}
	if err := tx.Model(&book).Association("Recipes").Append(&recipes); err != nil {
		tx.Rollback()
		return fmt.Errorf("append recipes: %w", err)
	}
	return tx.Commit().Error
}

func (r *recipeBookRepository) RemoveRecipes(ctx context.Context, bookID int64, recipeIDs []int64) error {
	if len(recipeIDs) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).Begin()
	var book models.RecipeBook
	if err := tx.First(&book, bookID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("recipe book not found: %w", err)
	}
	recipes := make([]models.Recipe, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		recipes = append(recipes, models.Recipe{ID: id})
	}
	if err := tx.Model(&book).Association("Recipes").Delete(&recipes); err != nil {
		tx.Rollback()
		return fmt.Errorf("remove recipes: %w", err)
	}
	return tx.Commit().Error
}
