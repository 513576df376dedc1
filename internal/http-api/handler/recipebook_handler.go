package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/middleware"
	"recipehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RecipeBookHandler struct {
	svc service.RecipeBookService
}

func NewRecipeBookHandler(svc service.RecipeBookService) *RecipeBookHandler {
	return &RecipeBookHandler{svc: svc}
}

func (h *RecipeBookHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/:book_id", h.Get)
	public.GET("/user/:username", h.ListByUser)
	authed.POST("", h.Create)
	authed.PUT("/:book_id", h.Update)
	authed.DELETE("/:book_id", h.Delete)
	authed.POST("/:book_id/recipes", h.UpdateRecipes)
}

func (h *RecipeBookHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateRecipeBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.svc.Create(ctx, userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, book)
}

func (h *RecipeBookHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe book id"})
		return
	}

	page, pageSize := parsePagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, recipes, err := h.svc.Get(ctx, id, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrRecipeBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": book, "recipes": recipes})
}

// ListByUser returns every book belonging to the named user.
func (h *RecipeBookHandler) ListByUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	books, err := h.svc.GetByUser(ctx, c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe_books": books})
}

func (h *RecipeBookHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe book id"})
		return
	}

	var req dto.UpdateRecipeBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Update(ctx, id, userID, req); err != nil {
		respondBookError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeBookHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe book id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id, userID); err != nil {
		respondBookError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateRecipes adds and removes recipes from an owned book in one request.
func (h *RecipeBookHandler) UpdateRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe book id"})
		return
	}

	var req dto.UpdateBookRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.UpdateRecipes(ctx, id, userID, req.Add, req.Remove); err != nil {
		respondBookError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondBookError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe book not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "not your recipe book"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
