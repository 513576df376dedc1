package service

import (
	"context"
	"errors"
	"log/slog"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/notify"
	"recipehub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)

const recentRecipeCount = 5

type ProfileService interface {
	GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error)
	UpdateBio(ctx context.Context, userID int64, bio string) error
	Follow(ctx context.Context, followerID int64, username string) error
	Unfollow(ctx context.Context, followerID int64, username string) error
	Followers(ctx context.Context, username string) ([]dto.UserSummary, error)
	Following(ctx context.Context, username string) ([]dto.UserSummary, error)
}

type profileService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	recipeRepo repository.RecipeRepository
	notifier   NotificationService
	logger     *slog.Logger
}

func NewProfileService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	recipeRepo repository.RecipeRepository,
	notifier NotificationService,
	logger *slog.Logger,
) ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &profileService{
		userRepo:   userRepo,
		followRepo: followRepo,
		recipeRepo: recipeRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// GetProfile returns the public profile: user info, follower counts, and the
// five most recent recipes.
func (s *profileService) GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipeRepo.GetByUser(ctx, user.ID, recentRecipeCount)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileResponse{
		ID:             user.ID,
		Username:       user.Username,
		Bio:            user.Bio,
		Joined:         user.CreatedAt,
		FollowerCount:  followers,
		FollowingCount: following,
	}
	for i := range recipes {
		recipes[i].Author = *user
		resp.RecentRecipes = append(resp.RecentRecipes, *dto.FromModelToRecipeResponse(&recipes[i]))
	}
	return resp, nil
}

func (s *profileService) UpdateBio(ctx context.Context, userID int64, bio string) error {
	return s.userRepo.UpdateBio(ctx, userID, bio)
}

// Follow creates the follow edge and notifies the followed user. The target
// of the notification is the follower's own user record, so the followee's
// notification page can render who followed them.
func (s *profileService) Follow(ctx context.Context, followerID int64, username string) error {
	followee, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}

	if followee.ID == followerID {
		return ErrSelfFollow
	}

	exists, err := s.followRepo.Exists(ctx, followerID, followee.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFollowing
	}

	follow := &models.Follow{
		FollowerID: followerID,
		FolloweeID: followee.ID,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return err
	}

	if err := s.notifier.Notify(ctx, followee.ID, notify.KindFollow, followerID); err != nil {
		s.logger.Error("follow notification failed",
			"follower_id", followerID, "followee_id", followee.ID, "error", err)
	}
	return nil
}

func (s *profileService) Unfollow(ctx context.Context, followerID int64, username string) error {
	followee, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}

	if err := s.followRepo.Delete(ctx, followerID, followee.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFollowing
		}
		return err
	}
	return nil
}

func (s *profileService) Followers(ctx context.Context, username string) ([]dto.UserSummary, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	users, err := s.followRepo.FollowersOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return toSummaries(users), nil
}

func (s *profileService) Following(ctx context.Context, username string) ([]dto.UserSummary, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	users, err := s.followRepo.FollowingOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return toSummaries(users), nil
}

func (s *profileService) findUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func toSummaries(users []models.User) []dto.UserSummary {
	summaries := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, *dto.FromModelToUserSummary(&users[i]))
	}
	return summaries
}
