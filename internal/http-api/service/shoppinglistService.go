package service

import (
	"context"
	"errors"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrShoppingListNotFound = errors.New("shopping list not found")
	ErrItemNotFound         = errors.New("shopping list item not found")
)

type ShoppingListService interface {
	Create(ctx context.Context, userID int64, req dto.CreateShoppingListRequest) (*models.ShoppingList, error)
	Get(ctx context.Context, id, userID int64) (*models.ShoppingList, error)
	GetMine(ctx context.Context, userID int64) ([]models.ShoppingList, error)
	Update(ctx context.Context, id, userID int64, req dto.UpdateShoppingListRequest) error
	Delete(ctx context.Context, id, userID int64) error
	AddItem(ctx context.Context, listID, userID int64, req dto.AddShoppingListItemRequest) (*models.ShoppingListItem, error)
	UpdateItem(ctx context.Context, itemID, userID int64, req dto.UpdateShoppingListItemRequest) (*models.ShoppingListItem, error)
	DeleteItem(ctx context.Context, itemID, userID int64) error
}

type shoppingListService struct {
	repo repository.ShoppingListRepository
}

func NewShoppingListService(repo repository.ShoppingListRepository) ShoppingListService {
	return &shoppingListService{repo: repo}
}

func (s *shoppingListService) Create(ctx context.Context, userID int64, req dto.CreateShoppingListRequest) (*models.ShoppingList, error) {
	list := &models.ShoppingList{
		UserID: userID,
		Title:  req.Title,
	}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns a list only to its owner; shopping lists are private.
func (s *shoppingListService) Get(ctx context.Context, id, userID int64) (*models.ShoppingList, error) {
	return s.ownedList(ctx, id, userID)
}

func (s *shoppingListService) GetMine(ctx context.Context, userID int64) ([]models.ShoppingList, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *shoppingListService) Update(ctx context.Context, id, userID int64, req dto.UpdateShoppingListRequest) error {
	list, err := s.ownedList(ctx, id, userID)
	if err != nil {
		return err
	}
	list.Title = req.Title
	return s.repo.Update(ctx, list)
}

func (s *shoppingListService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.ownedList(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *shoppingListService) AddItem(ctx context.Context, listID, userID int64, req dto.AddShoppingListItemRequest) (*models.ShoppingListItem, error) {
	if _, err := s.ownedList(ctx, listID, userID); err != nil {
		return nil, err
	}

	item := &models.ShoppingListItem{
		ShoppingListID: listID,
		Title:          req.Title,
	}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingListService) UpdateItem(ctx context.Context, itemID, userID int64, req dto.UpdateShoppingListItemRequest) (*models.ShoppingListItem, error) {
	item, err := s.ownedItem(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Done != nil {
		item.Done = *req.Done
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingListService) DeleteItem(ctx context.Context, itemID, userID int64) error {
	if _, err := s.ownedItem(ctx, itemID, userID); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, itemID)
}

func (s *shoppingListService) ownedList(ctx context.Context, id, userID int64) (*models.ShoppingList, error) {
	list, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoppingListNotFound
		}
		return nil, err
	}
	if list.UserID != userID {
		return nil, ErrNotOwner
	}
	return list, nil
}

// ownedItem checks item ownership through the parent list.
func (s *shoppingListService) ownedItem(ctx context.Context, itemID, userID int64) (*models.ShoppingListItem, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if _, err := s.ownedList(ctx, item.ShoppingListID, userID); err != nil {
		return nil, err
	}
	return item, nil
}
