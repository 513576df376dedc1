package models

import "time"

type ShoppingList struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null;size:50"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Owner User               `json:"owner,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Items []ShoppingListItem `json:"items,omitempty" gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE;"`
}

func (ShoppingList) TableName() string {
	return "shopping_lists"
}

type ShoppingListItem struct {
	ID             int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ShoppingListID int64  `json:"shopping_list_id" gorm:"not null;index"`
	Title          string `json:"title" gorm:"not null;size:50"`
	Done           bool   `json:"done" gorm:"not null;default:false"`
}

func (ShoppingListItem) TableName() string {
	return "shopping_list_items"
}
