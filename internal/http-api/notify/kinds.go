package notify

import (
	"context"
	"errors"

	"recipehub/internal/http-api/models"

	"gorm.io/gorm"
)

// Message templates per kind. Review targets must come preloaded with Author
// and Recipe, derive targets with Author.
const (
	reviewTemplate = `<a href="/u/{{.Author.Username}}">{{.Author.Username}}</a> reviewed your recipe <a href="/recipes/{{.RecipeID}}#review-{{.ID}}">{{.Recipe.Title}}</a> ({{.Score}}/5)`
	followTemplate = `<a href="/u/{{.Username}}">{{.Username}}</a> started following you`
	deriveTemplate = `<a href="/u/{{.Author.Username}}">{{.Author.Username}}</a> made a derived version of your recipe: <a href="/recipes/{{.ID}}">{{.Title}}</a>`
)

// Narrow views of the repositories, so the registry wiring does not depend on
// the full repository interfaces.
type (
	ReviewFinder interface {
		GetByID(ctx context.Context, id int64) (*models.Review, error)
	}
	RecipeFinder interface {
		GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	}
	UserFinder interface {
		GetByID(ctx context.Context, id int64) (*models.User, error)
	}
)

// TargetFinders carries the lookup capability each built-in kind needs.
type TargetFinders struct {
	Reviews ReviewFinder
	Recipes RecipeFinder
	Users   UserFinder
}

// NewDefaultRegistry builds the registry with the three built-in kinds.
// Called once from main before the server starts serving.
func NewDefaultRegistry(f TargetFinders) (*Registry, error) {
	r := NewRegistry()

	if err := r.Register(KindReview, func(ctx context.Context, id int64) (any, error) {
		review, err := f.Reviews.GetByID(ctx, id)
		return absentIfNotFound(review, err)
	}, reviewTemplate); err != nil {
		return nil, err
	}

	if err := r.Register(KindFollow, func(ctx context.Context, id int64) (any, error) {
		user, err := f.Users.GetByID(ctx, id)
		return absentIfNotFound(user, err)
	}, followTemplate); err != nil {
		return nil, err
	}

	if err := r.Register(KindDerive, func(ctx context.Context, id int64) (any, error) {
		recipe, err := f.Recipes.GetByID(ctx, id)
		return absentIfNotFound(recipe, err)
	}, deriveTemplate); err != nil {
		return nil, err
	}

	return r, nil
}

// absentIfNotFound translates gorm's not-found error into the registry's
// "target no longer exists" result.
func absentIfNotFound[T any](target *T, err error) (any, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return target, nil
}
