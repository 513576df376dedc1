package dto

import (
	"time"

	"recipehub/internal/http-api/models"
)

// CreateRecipeRequest for publishing a recipe. OriginRecipeID marks the new
// recipe as derived from an existing one.
type CreateRecipeRequest struct {
	Title          string `json:"title" binding:"required,min=1,max=50"`
	Description    string `json:"description" binding:"max=5000"`
	Ingredients    string `json:"ingredients" binding:"required"`
	Directions     string `json:"directions" binding:"required"`
	OriginRecipeID *int64 `json:"origin_recipe_id,omitempty"`
}

// UpdateRecipeRequest for editing an owned recipe
type UpdateRecipeRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"max=5000"`
	Ingredients string `json:"ingredients" binding:"required"`
	Directions  string `json:"directions" binding:"required"`
}

// RecipeResponse for returning a single recipe
type RecipeResponse struct {
	ID             int64            `json:"id"`
	Author         string           `json:"author"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Ingredients    string           `json:"ingredients"`
	Directions     string           `json:"directions"`
	OriginRecipeID *int64           `json:"origin_recipe_id,omitempty"`
	Views          int64            `json:"views,omitempty"`
	Reviews        []ReviewResponse `json:"reviews,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// FromModelToRecipeResponse converts a Recipe model to RecipeResponse DTO
func FromModelToRecipeResponse(recipe *models.Recipe) *RecipeResponse {
	resp := &RecipeResponse{
		ID:             recipe.ID,
		Author:         recipe.Author.Username,
		Title:          recipe.Title,
		Description:    recipe.Description,
		Ingredients:    recipe.Ingredients,
		Directions:     recipe.Directions,
		OriginRecipeID: recipe.OriginRecipeID,
		CreatedAt:      recipe.CreatedAt,
	}
	for i := range recipe.Reviews {
		resp.Reviews = append(resp.Reviews, *FromModelToReviewResponse(&recipe.Reviews[i]))
	}
	return resp
}

// PaginatedRecipeResponse for returning paginated recipes
type PaginatedRecipeResponse struct {
	Data       []RecipeResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedRecipeResponse creates a paginated recipe response
func NewPaginatedRecipeResponse(data []RecipeResponse, total, page, pageSize int) *PaginatedRecipeResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedRecipeResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
