package dto

import (
	"time"

	"recipehub/internal/http-api/models"
)

// CreateReviewRequest for reviewing a recipe
type CreateReviewRequest struct {
	Title string `json:"title" binding:"required,min=1,max=50"`
	Body  string `json:"body" binding:"required,min=1,max=5000"`
	Score int    `json:"score" binding:"required,min=1,max=5"`
}

// ReviewResponse for returning review information
type ReviewResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	RecipeID  int64     `json:"recipe_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		Username:  review.Author.Username,
		RecipeID:  review.RecipeID,
		Title:     review.Title,
		Body:      review.Body,
		Score:     review.Score,
		CreatedAt: review.CreatedAt,
	}
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []ReviewResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedReviewResponse creates a paginated review response
func NewPaginatedReviewResponse(data []ReviewResponse, total, page, pageSize int) *PaginatedReviewResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
