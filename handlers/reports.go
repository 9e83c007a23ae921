package handlers

import (
	"net/http"

	"finanzas/api/logger"
	"finanzas/api/mongodb"
	"finanzas/api/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleMonthlyReport summarizes one month of activity for the
// dashboard. Always computed from the raw transactions.
func HandleMonthlyReport(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	month := monthParam(c)
	if month == "" {
		return
	}

	transactions, err := mongodb.GetTransactionsByMonth(c.Request.Context(), claims.Sub, month)
	if err != nil {
		logger.Get().Error("failed to load month transactions", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error building report"})
		return
	}

	c.JSON(http.StatusOK, report.Monthly(transactions, month))
}
