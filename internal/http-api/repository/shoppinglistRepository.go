package repository

import (
	"context"
	"fmt"

	"recipehub/internal/http-api/models"

	"gorm.io/gorm"
)

type ShoppingListRepository interface {
	Create(ctx context.Context, list *models.ShoppingList) error
	GetByID(ctx context.Context, id int64) (*models.ShoppingList, error)
	GetByUser(ctx context.Context, userID int64) ([]models.ShoppingList, error)
	Update(ctx context.Context, list *models.ShoppingList) error
	Delete(ctx context.Context, id int64) error
	AddItem(ctx context.Context, item *models.ShoppingListItem) error
	GetItem(ctx context.Context, itemID int64) (*models.ShoppingListItem, error)
	UpdateItem(ctx context.Context, item *models.ShoppingListItem) error
	DeleteItem(ctx context.Context, itemID int64) error
}

type shoppingListRepository struct {
	db *gorm.DB
}

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

func (r *shoppingListRepository) Create(ctx context.Context, list *models.ShoppingList) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("create shopping list: %w", err)
	}
	return nil
}

func (r *shoppingListRepository) GetByID(ctx context.Context, id int64) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := r.db.WithContext(ctx).Preload("Items").First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *shoppingListRepository) GetByUser(ctx context.Context, userID int64) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("get shopping lists by user: %w", err)
	}
	return lists, nil
}

func (r *shoppingListRepository) Update(ctx context.Context, list *models.ShoppingList) error {
	if err := r.db.WithContext(ctx).
		Model(&models.ShoppingList{}).
		Where("id = ?", list.ID).
		Update("title", list.Title).Error; err != nil {
		return fmt.Errorf("update shopping list: %w", err)
	}
	return nil
}

func (r *shoppingListRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.ShoppingList{}, id).Error; err != nil {
		return fmt.Errorf("delete shopping list: %w", err)
	}
	return nil
}

func (r *shoppingListRepository) AddItem(ctx context.Context, item *models.ShoppingListItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("add shopping list item: %w", err)
	}
	return nil
}

func (r *shoppingListRepository) GetItem(ctx context.Context, itemID int64) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	if err := r.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingListRepository) UpdateItem(ctx context.Context, item *models.ShoppingListItem) error {
	if err := r.db.WithContext(ctx).
		Model(&models.ShoppingListItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{"title": item.Title, "done": item.Done}).Error; err != nil {
		return fmt.Errorf("update shopping list item: %w", err)
	}
	return nil
}

func (r *shoppingListRepository) DeleteItem(ctx context.Context, itemID int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.ShoppingListItem{}, itemID).Error; err != nil {
		return fmt.Errorf("delete shopping list item: %w", err)
	}
	return nil
}
