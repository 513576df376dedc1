package dto

import (
	"time"

	"recipehub/internal/http-api/models"
)

// UpdateProfileRequest for editing the authenticated user's profile
type UpdateProfileRequest struct {
	Bio string `json:"bio" binding:"max=1000"`
}

// ProfileResponse for a public user profile page
type ProfileResponse struct {
	ID             int64            `json:"id"`
	Username       string           `json:"username"`
	Bio            string           `json:"bio"`
	Joined         time.Time        `json:"joined"`
	FollowerCount  int64            `json:"follower_count"`
	FollowingCount int64            `json:"following_count"`
	RecentRecipes  []RecipeResponse `json:"recent_recipes"`
}

// UserSummary for follower/following listings
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio,omitempty"`
}

// FromModelToUserSummary converts a User model to UserSummary DTO
func FromModelToUserSummary(user *models.User) *UserSummary {
	return &UserSummary{
		ID:       user.ID,
		Username: user.Username,
		Bio:      user.Bio,
	}
}
