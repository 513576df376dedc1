package models

import "time"

type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64     `json:"user_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null;size:50"`
	Description string    `json:"description" gorm:"type:text"`
	Ingredients string    `json:"ingredients" gorm:"not null;type:text"`
	Directions  string    `json:"directions" gorm:"not null;type:text"`
	// Weak reference: the origin may be deleted after derivation, so no
	// foreign key constraint and no cascade.
	OriginRecipeID *int64    `json:"origin_recipe_id,omitempty" gorm:"index"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author  User     `json:"author,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:RecipeID"`
}

func (Recipe) TableName() string {
	return "recipes"
}
