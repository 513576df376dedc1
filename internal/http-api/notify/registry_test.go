package notify_test

import (
	"context"
	"errors"
	"testing"

	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/notify"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- FAKE FINDERS ---

type fakeReviewFinder struct {
	reviews map[int64]*models.Review
}

func (f *fakeReviewFinder) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	if r, ok := f.reviews[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRecipeFinder struct {
	recipes map[int64]*models.Recipe
}

func (f *fakeRecipeFinder) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	if r, ok := f.recipes[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeUserFinder struct {
	users map[int64]*models.User
	err   error
}

func (f *fakeUserFinder) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func defaultRegistry(t *testing.T, f notify.TargetFinders) *notify.Registry {
	t.Helper()
	r, err := notify.NewDefaultRegistry(f)
	assert.NoError(t, err)
	return r
}

// --- TESTS ---

func TestRegistry_Register(t *testing.T) {
	r := notify.NewRegistry()

	find := func(ctx context.Context, id int64) (any, error) { return nil, nil }

	t.Run("RegistersKind", func(t *testing.T) {
		err := r.Register("comment", find, `{{.}}`)
		assert.NoError(t, err)
		assert.True(t, r.Known("comment"))
	})

	t.Run("RepeatedRegistrationIsSafe", func(t *testing.T) {
		assert.NoError(t, r.Register("comment", find, `{{.}}`))
		assert.NoError(t, r.Register("comment", find, `{{.}}`))
		assert.True(t, r.Known("comment"))
	})

	t.Run("BadTemplate", func(t *testing.T) {
		err := r.Register("broken", find, `{{.Unclosed`)
		assert.Error(t, err)
		assert.False(t, r.Known("broken"))
	})

	t.Run("UnregisteredKindIsUnknown", func(t *testing.T) {
		assert.False(t, r.Known("upvote"))
	})
}

func TestRegistry_Resolve(t *testing.T) {
	users := &fakeUserFinder{users: map[int64]*models.User{
		7: {ID: 7, Username: "alice"},
	}}
	r := defaultRegistry(t, notify.TargetFinders{
		Reviews: &fakeReviewFinder{},
		Recipes: &fakeRecipeFinder{},
		Users:   users,
	})

	t.Run("ExistingTarget", func(t *testing.T) {
		target, err := r.Resolve(context.Background(), notify.KindFollow, 7)
		assert.NoError(t, err)
		user, ok := target.(*models.User)
		assert.True(t, ok)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("DeletedTargetIsNilNil", func(t *testing.T) {
		target, err := r.Resolve(context.Background(), notify.KindFollow, 999)
		assert.NoError(t, err)
		assert.Nil(t, target)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), "upvote", 1)
		assert.ErrorIs(t, err, notify.ErrUnknownKind)
	})

	t.Run("FinderFailurePropagates", func(t *testing.T) {
		users.err = errors.New("connection refused")
		defer func() { users.err = nil }()

		_, err := r.Resolve(context.Background(), notify.KindFollow, 7)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, notify.ErrUnknownKind)
	})
}

func TestRegistry_Render(t *testing.T) {
	r := defaultRegistry(t, notify.TargetFinders{
		Reviews: &fakeReviewFinder{},
		Recipes: &fakeRecipeFinder{},
		Users:   &fakeUserFinder{},
	})

	t.Run("Follow", func(t *testing.T) {
		out, err := r.Render(notify.KindFollow, &models.User{ID: 7, Username: "alice"})
		assert.NoError(t, err)
		assert.Contains(t, string(out), "alice")
		assert.Contains(t, string(out), "started following you")
	})

	t.Run("Review", func(t *testing.T) {
		review := &models.Review{
			ID:       42,
			RecipeID: 9,
			Score:    4,
			Author:   models.User{Username: "bob"},
			Recipe:   models.Recipe{ID: 9, Title: "Carbonara"},
		}
		out, err := r.Render(notify.KindReview, review)
		assert.NoError(t, err)
		assert.Contains(t, string(out), "bob")
		assert.Contains(t, string(out), "Carbonara")
		assert.Contains(t, string(out), "/recipes/9#review-42")
		assert.Contains(t, string(out), "(4/5)")
	})

	t.Run("Derive", func(t *testing.T) {
		recipe := &models.Recipe{
			ID:     13,
			Title:  "Vegan Carbonara",
			Author: models.User{Username: "carol"},
		}
		out, err := r.Render(notify.KindDerive, recipe)
		assert.NoError(t, err)
		assert.Contains(t, string(out), "carol")
		assert.Contains(t, string(out), "/recipes/13")
		assert.Contains(t, string(out), "derived version")
	})

	t.Run("EscapesTargetContent", func(t *testing.T) {
		out, err := r.Render(notify.KindFollow, &models.User{Username: `<script>x</script>`})
		assert.NoError(t, err)
		assert.NotContains(t, string(out), "<script>")
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := r.Render("upvote", &models.User{})
		assert.ErrorIs(t, err, notify.ErrUnknownKind)
	})
}
