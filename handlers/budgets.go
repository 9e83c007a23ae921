package handlers

import (
	"net/http"
	"time"

	"finanzas/api/logger"
	"finanzas/api/models"
	"finanzas/api/mongodb"
	"finanzas/api/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateBudgetRequest struct {
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Period   string  `json:"period"`
}

type UpdateBudgetRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Period string  `json:"period"`
}

// Budgets are monthly: spent is computed over the calendar month, so
// accepting any other period would silently report the wrong window.
func validPeriod(period string) bool {
	return period == "monthly"
}

// HandleListBudgets returns the budgets with spent/remaining computed
// from the month's transactions on every call. Stored spent counters
// drift; the transaction set is the source of truth.
func HandleListBudgets(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	month := monthParam(c)
	if month == "" {
		return
	}

	budgets, err := mongodb.GetBudgetsByUserID(c.Request.Context(), claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list budgets", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching budgets"})
		return
	}

	transactions, err := mongodb.GetTransactionsByMonth(c.Request.Context(), claims.Sub, month)
	if err != nil {
		logger.Get().Error("failed to load month transactions", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching budgets"})
		return
	}

	for i := range budgets {
		report.Fill(&budgets[i], transactions, month)
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets, "month": month})
}

func HandleCreateBudget(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Period == "" {
		req.Period = "monthly"
	}
	if !validPeriod(req.Period) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be monthly"})
		return
	}

	budget := &models.Budget{
		ID:        uuid.NewString(),
		UserID:    claims.Sub,
		Category:  req.Category,
		Amount:    req.Amount,
		Period:    req.Period,
		CreatedAt: time.Now(),
	}

	if err := mongodb.CreateBudget(c.Request.Context(), budget); err != nil {
		logger.Get().Error("failed to create budget", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating budget"})
		return
	}

	budget.Remaining = budget.Amount
	c.JSON(http.StatusCreated, budget)
}

func HandleUpdateBudget(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Period == "" {
		req.Period = "monthly"
	}
	if !validPeriod(req.Period) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be monthly"})
		return
	}

	budgetID := c.Param("id")
	updated, err := mongodb.UpdateBudget(c.Request.Context(), claims.Sub, budgetID, req.Amount, req.Period)
	if err != nil {
		logger.Get().Error("failed to update budget", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating budget"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func HandleDeleteBudget(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	budgetID := c.Param("id")
	deleted, err := mongodb.DeleteBudget(c.Request.Context(), claims.Sub, budgetID)
	if err != nil {
		logger.Get().Error("failed to delete budget", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting budget"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
