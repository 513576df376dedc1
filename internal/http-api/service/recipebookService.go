package service

import (
	"context"
	"errors"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrRecipeBookNotFound = errors.New("recipe book not found")

type RecipeBookService interface {
	Create(ctx context.Context, userID int64, req dto.CreateRecipeBookRequest) (*dto.RecipeBookResponse, error)
	Get(ctx context.Context, id int64, page, pageSize int) (*dto.RecipeBookResponse, *dto.PaginatedRecipeResponse, error)
	GetByUser(ctx context.Context, username string) ([]dto.RecipeBookResponse, error)
	Update(ctx context.Context, id, userID int64, req dto.UpdateRecipeBookRequest) error
	Delete(ctx context.Context, id, userID int64) error
	UpdateRecipes(ctx context.Context, id, userID int64, add, remove []int64) error
}

type recipeBookService struct {
	bookRepo repository.RecipeBookRepository
	userRepo repository.UserRepository
}

func NewRecipeBookService(bookRepo repository.RecipeBookRepository, userRepo repository.UserRepository) RecipeBookService {
	return &recipeBookService{
		bookRepo: bookRepo,
		userRepo: userRepo,
	}
}

func (s *recipeBookService) Create(ctx context.Context, userID int64, req dto.CreateRecipeBookRequest) (*dto.RecipeBookResponse, error) {
	book := &models.RecipeBook{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	created, err := s.bookRepo.GetByID(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToRecipeBookResponse(created), nil
}

// Get returns the book and a page of its recipes.
func (s *recipeBookService) Get(ctx context.Context, id int64, page, pageSize int) (*dto.RecipeBookResponse, *dto.PaginatedRecipeResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRecipeBookNotFound
		}
		return nil, nil, err
	}

	recipes, total, err := s.bookRepo.GetRecipes(ctx, id, page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		responses = append(responses, *dto.FromModelToRecipeResponse(&recipes[i]))
	}

	return dto.FromModelToRecipeBookResponse(book),
		dto.NewPaginatedRecipeResponse(responses, int(total), page, pageSize),
		nil
}

func (s *recipeBookService) GetByUser(ctx context.Context, username string) ([]dto.RecipeBookResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	books, err := s.bookRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RecipeBookResponse, 0, len(books))
	for i := range books {
		resp := dto.FromModelToRecipeBookResponse(&books[i])
		resp.Owner = user.Username
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *recipeBookService) Update(ctx context.Context, id, userID int64, req dto.UpdateRecipeBookRequest) error {
	book, err := s.ownedBook(ctx, id, userID)
	if err != nil {
		return err
	}

	book.Title = req.Title
	book.Description = req.Description
	return s.bookRepo.Update(ctx, book)
}

func (s *recipeBookService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.ownedBook(ctx, id, userID); err != nil {
		return err
	}
	return s.bookRepo.Delete(ctx, id)
}

// UpdateRecipes applies additions and removals in one call, as the recipe
// page's "save to my books" control submits both at once.
func (s *recipeBookService) UpdateRecipes(ctx context.Context, id, userID int64, add, remove []int64) error {
	if _, err := s.ownedBook(ctx, id, userID); err != nil {
		return err
	}

	if err := s.bookRepo.AddRecipes(ctx, id, add); err != nil {
		return err
	}
	return s.bookRepo.RemoveRecipes(ctx, id, remove)
}

func (s *recipeBookService) ownedBook(ctx context.Context, id, userID int64) (*models.RecipeBook, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeBookNotFound
		}
		return nil, err
	}
	if book.UserID != userID {
		return nil, ErrNotOwner
	}
	return book, nil
}
