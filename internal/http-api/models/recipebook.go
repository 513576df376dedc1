package models

import "time"

// RecipeBook ids are random nine-digit numbers rather than a sequence, so a
// book URL can be shared without exposing how many books exist. The
// repository generates the id on create.
type RecipeBook struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null;size:50"`
	Description string    `json:"description" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Owner   User     `json:"owner,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Recipes []Recipe `json:"recipes,omitempty" gorm:"many2many:recipe_book_recipes;constraint:OnDelete:CASCADE;"`
}

func (RecipeBook) TableName() string {
	return "recipe_books"
}
