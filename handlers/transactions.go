package handlers

import (
	"net/http"
	"time"

	"finanzas/api/logger"
	"finanzas/api/models"
	"finanzas/api/mongodb"
	"finanzas/api/sse"
	"finanzas/api/statement"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateTransactionRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Description string  `json:"description" binding:"required"`
	Date        string  `json:"date"`
}

func HandleListTransactions(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	transactions, err := mongodb.GetTransactionsByUserID(c.Request.Context(), claims.Sub)
	if err != nil {
		logger.Get().Error("failed to list transactions", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// HandleCreateTransaction records a manual transaction. When the
// request has no category, the classifier resolves one from the
// description.
func HandleCreateTransaction(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be income or expense"})
		return
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	tx := &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      claims.Sub,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Date:        date,
		Source:      models.SourceManual,
		CreatedAt:   time.Now(),
	}

	if tx.Category == "" {
		categories, err := mongodb.GetCategoriesForUser(c.Request.Context(), claims.Sub)
		if err != nil {
			logger.Get().Error("failed to load categories", zap.Error(err), zap.String("user_id", claims.Sub))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating transaction"})
			return
		}
		result := Categorizer.Categorize(c.Request.Context(), claims.Sub, tx.Description, categories)
		tx.Category = result.Category
		if tx.Subcategory == "" {
			tx.Subcategory = result.Subcategory
		}
	}

	if err := mongodb.CreateTransaction(c.Request.Context(), tx); err != nil {
		logger.Get().Error("failed to create transaction", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating transaction"})
		return
	}

	sse.PublishTransaction(tx)
	c.JSON(http.StatusCreated, tx)
}

func HandleDeleteTransaction(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	transactionID := c.Param("id")
	deleted, err := mongodb.DeleteTransaction(c.Request.Context(), claims.Sub, transactionID)
	if err != nil {
		logger.Get().Error("failed to delete transaction", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting transaction"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleImportStatement ingests a CSV bank statement. Every row is
// categorized by description; the whole file is rejected on the first
// malformed row so a partial import never happens silently.
func HandleImportStatement(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	defer file.Close()

	rows, err := statement.Parse(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "statement contains no rows"})
		return
	}

	categories, err := mongodb.GetCategoriesForUser(c.Request.Context(), claims.Sub)
	if err != nil {
		logger.Get().Error("failed to load categories", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error importing statement"})
		return
	}

	imported := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		txType, amount := row.Direction()
		result := Categorizer.Categorize(c.Request.Context(), claims.Sub, row.Description, categories)

		tx := &models.Transaction{
			ID:          uuid.NewString(),
			UserID:      claims.Sub,
			Amount:      amount,
			Type:        txType,
			Category:    result.Category,
			Subcategory: result.Subcategory,
			Description: row.Description,
			Date:        row.Date,
			Source:      models.SourceCSVImport,
			CreatedAt:   time.Now(),
		}
		if err := mongodb.CreateTransaction(c.Request.Context(), tx); err != nil {
			logger.Get().Error("failed to store imported transaction", zap.Error(err), zap.String("user_id", claims.Sub))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error importing statement"})
			return
		}
		sse.PublishTransaction(tx)
		imported = append(imported, *tx)
	}

	logger.Get().Info("statement imported",
		zap.String("user_id", claims.Sub),
		zap.Int("count", len(imported)))
	c.JSON(http.StatusCreated, gin.H{"imported": len(imported), "transactions": imported})
}
