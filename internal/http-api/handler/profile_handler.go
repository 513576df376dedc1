package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/middleware"
	"recipehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// RegisterRoutes wires the profile endpoints. Reading a profile is public;
// editing your bio and following require auth.
func (h *ProfileHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/:username", h.Get)
	public.GET("/:username/followers", h.Followers)
	public.GET("/:username/following", h.Following)

	authed.PUT("/me", h.UpdateBio)
	authed.POST("/:username/follow", h.Follow)
	authed.DELETE("/:username/follow", h.Unfollow)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.svc.GetProfile(ctx, c.Param("username"))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateBio(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.UpdateBio(ctx, userID, req.Bio); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Follow(ctx, userID, c.Param("username")); err != nil {
		respondProfileError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Unfollow(ctx, userID, c.Param("username")); err != nil {
		respondProfileError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) Followers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.svc.Followers(ctx, c.Param("username"))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *ProfileHandler) Following(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.svc.Following(ctx, c.Param("username"))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
	case errors.Is(err, service.ErrAlreadyFollowing):
		c.JSON(http.StatusConflict, gin.H{"error": "already following this user"})
	case errors.Is(err, service.ErrNotFollowing):
		c.JSON(http.StatusNotFound, gin.H{"error": "not following this user"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
