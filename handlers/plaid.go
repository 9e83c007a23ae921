package handlers

import (
	"net/http"
	"time"

	"finanzas/api/db"
	"finanzas/api/logger"
	"finanzas/api/models"
	"finanzas/api/mongodb"
	"finanzas/api/sse"

	"github.com/gin-gonic/gin"
	"github.com/plaid/plaid-go/plaid"
	"go.uber.org/zap"
)

type ExchangeTokenRequest struct {
	PublicToken string `json:"public_token" binding:"required"`
}

// HandleCreateLinkToken issues a Plaid Link token so the dashboard can
// open the bank-connection flow.
func HandleCreateLinkToken(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	linkTokenRequest := plaid.NewLinkTokenCreateRequest(
		"Finanzas",
		"es",
		[]plaid.CountryCode{plaid.COUNTRYCODE_US},
		plaid.LinkTokenCreateRequestUser{
			ClientUserId: claims.Sub,
		},
	)
	linkTokenRequest.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	linkToken, _, err := PlaidClient.PlaidApi.LinkTokenCreate(c.Request.Context()).LinkTokenCreateRequest(*linkTokenRequest).Execute()
	if err != nil {
		if plaidErr, ok := err.(*plaid.GenericOpenAPIError); ok {
			logger.Get().Error("plaid link token error", zap.String("body", string(plaidErr.Body())))
		} else {
			logger.Get().Error("failed to create link token", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating link token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"link_token": linkToken.GetLinkToken()})
}

// HandleExchangePublicToken trades the Link public token for an access
// token and stores the item. Reconnecting an existing item just
// reactivates it.
func HandleExchangePublicToken(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req ExchangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exchangeRequest := plaid.NewItemPublicTokenExchangeRequest(req.PublicToken)
	exchangeResponse, _, err := PlaidClient.PlaidApi.ItemPublicTokenExchange(c.Request.Context()).ItemPublicTokenExchangeRequest(*exchangeRequest).Execute()
	if err != nil {
		if plaidErr, ok := err.(*plaid.GenericOpenAPIError); ok {
			logger.Get().Error("plaid exchange error", zap.String("body", string(plaidErr.Body())))
		} else {
			logger.Get().Error("failed to exchange public token", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error linking bank account"})
		return
	}

	existingItem, err := db.GetPlaidItemByItemID(exchangeResponse.GetItemId())
	if err != nil {
		logger.Get().Error("failed to look up plaid item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error linking bank account"})
		return
	}

	if existingItem != nil {
		if err := db.UpdatePlaidItemStatus(existingItem.ItemID, "active"); err != nil {
			logger.Get().Error("failed to reactivate plaid item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error linking bank account"})
			return
		}
	} else {
		_, err = db.CreatePlaidItem(claims.Sub, exchangeResponse.GetAccessToken(), exchangeResponse.GetItemId())
		if err != nil {
			logger.Get().Error("failed to store plaid item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error linking bank account"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"item_id": exchangeResponse.GetItemId()})
}

// HandleSyncBankTransactions pulls the last 30 days from every linked
// bank and imports what is new. The provider's transaction id is the
// document id, so rerunning a sync is idempotent.
func HandleSyncBankTransactions(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	items, err := db.GetPlaidItemsByUserID(claims.Sub)
	if err != nil {
		logger.Get().Error("failed to load plaid items", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error syncing bank transactions"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusOK, gin.H{"imported": 0})
		return
	}

	categories, err := mongodb.GetCategoriesForUser(c.Request.Context(), claims.Sub)
	if err != nil {
		logger.Get().Error("failed to load categories", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error syncing bank transactions"})
		return
	}

	endDate := time.Now().Format("2006-01-02")
	startDate := time.Now().AddDate(0, 0, -30).Format("2006-01-02")

	imported := 0
	for _, item := range items {
		request := plaid.NewTransactionsGetRequest(item.AccessToken, startDate, endDate)
		result, _, err := PlaidClient.PlaidApi.TransactionsGet(c.Request.Context()).TransactionsGetRequest(*request).Execute()
		if err != nil {
			logger.Get().Error("plaid transactions fetch failed",
				zap.String("item_id", item.ItemID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error syncing bank transactions"})
			return
		}

		for _, pt := range result.GetTransactions() {
			if pt.GetPending() {
				continue
			}

			// Plaid reports money out as positive amounts.
			txType := models.TypeExpense
			amount := pt.GetAmount()
			if amount < 0 {
				txType = models.TypeIncome
				amount = -amount
			}

			description := pt.GetName()
			if merchant := pt.GetMerchantName(); merchant != "" {
				description = merchant
			}
			classified := Categorizer.Categorize(c.Request.Context(), claims.Sub, description, categories)

			tx := &models.Transaction{
				ID:          "plaid-" + pt.GetTransactionId(),
				UserID:      claims.Sub,
				Amount:      float64(amount),
				Type:        txType,
				Category:    classified.Category,
				Subcategory: classified.Subcategory,
				Description: description,
				Date:        pt.GetDate(),
				Source:      models.SourceBankImport,
				CreatedAt:   time.Now(),
			}

			inserted, err := mongodb.InsertTransactionIfAbsent(c.Request.Context(), tx)
			if err != nil {
				logger.Get().Error("failed to store bank transaction", zap.Error(err), zap.String("user_id", claims.Sub))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error syncing bank transactions"})
				return
			}
			if inserted {
				sse.PublishTransaction(tx)
				imported++
			}
		}
	}

	logger.Get().Info("bank sync completed",
		zap.String("user_id", claims.Sub), zap.Int("imported", imported))
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
