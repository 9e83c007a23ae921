package handlers

import (
	"net/http"
	"time"

	"finanzas/api/category"
	"finanzas/api/config"
	"finanzas/api/logger"
	"finanzas/api/messaging"
	"finanzas/api/models"
	"finanzas/api/report"

	"github.com/gin-gonic/gin"
	"github.com/plaid/plaid-go/plaid"
)

// Shared handler dependencies, wired once at startup.
var (
	Cfg         *config.Config
	Categorizer *category.Classifier
	Chat        *messaging.Messenger
	PlaidClient *plaid.APIClient
)

// currentClaims pulls the authenticated claims the middleware stored.
// On failure it writes the 401 itself and returns false.
func currentClaims(c *gin.Context) (*models.SupabaseClaims, bool) {
	user, exists := c.Get("user")
	if !exists {
		logger.Get().Error("user not authenticated")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	claims, ok := user.(*models.SupabaseClaims)
	if !ok {
		logger.Get().Error("invalid user claims")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user claims"})
		return nil, false
	}
	return claims, true
}

// monthParam reads the ?month=YYYY-MM query, defaulting to the current
// month. Returns "" after writing a 400 when the value is malformed.
func monthParam(c *gin.Context) string {
	month := c.DefaultQuery("month", report.MonthOf(time.Now()))
	if _, err := time.Parse("2006-01", month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return ""
	}
	return month
}
