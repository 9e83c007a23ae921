package handlers

import (
	"net/http"
	"time"

	"finanzas/api/logger"
	"finanzas/api/models"
	"finanzas/api/mongodb"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateCategoryRequest struct {
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// HandleListCategories returns the shared defaults plus the caller's
// custom categories in one list.
func HandleListCategories(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	categories, err := mongodb.GetCategoriesForUser(c.Request.Context(), claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list categories", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func HandleCreateCategory(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be income or expense"})
		return
	}

	category := &models.Category{
		ID:          uuid.NewString(),
		UserID:      claims.Sub,
		Name:        req.Name,
		Type:        req.Type,
		Icon:        req.Icon,
		Color:       req.Color,
		Description: req.Description,
		Keywords:    req.Keywords,
		IsDefault:   false,
		CreatedAt:   time.Now(),
	}
	if category.Keywords == nil {
		category.Keywords = []string{}
	}

	if err := mongodb.CreateCategory(c.Request.Context(), category); err != nil {
		logger.Get().Error("failed to create category", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// HandleDeleteCategory removes a custom category. The defaults live in
// the shared scope, so the user_id filter already makes them
// undeletable; a request against one comes back 404.
func HandleDeleteCategory(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	categoryID := c.Param("id")
	deleted, err := mongodb.DeleteCategory(c.Request.Context(), claims.Sub, categoryID)
	if err != nil {
		logger.Get().Error("failed to delete category", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting category"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
