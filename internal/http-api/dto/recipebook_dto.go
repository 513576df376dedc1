package dto

import (
	"time"

	"recipehub/internal/http-api/models"
)

// CreateRecipeBookRequest for creating a recipe book
type CreateRecipeBookRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateRecipeBookRequest for editing an owned recipe book
type UpdateRecipeBookRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateBookRecipesRequest adds and removes recipes from a book in one call
type UpdateBookRecipesRequest struct {
	Add    []int64 `json:"add"`
	Remove []int64 `json:"remove"`
}

// RecipeBookResponse for returning recipe book information
type RecipeBookResponse struct {
	ID          int64     `json:"id"`
	Owner       string    `json:"owner,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromModelToRecipeBookResponse converts a RecipeBook model to RecipeBookResponse DTO
func FromModelToRecipeBookResponse(book *models.RecipeBook) *RecipeBookResponse {
	return &RecipeBookResponse{
		ID:          book.ID,
		Owner:       book.Owner.Username,
		Title:       book.Title,
		Description: book.Description,
		CreatedAt:   book.CreatedAt,
	}
}
