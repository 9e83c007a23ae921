package main

import (
	"context"
	"flag"
	"log"

	"finanzas/api/category"
	"finanzas/api/config"
	"finanzas/api/db"
	"finanzas/api/handlers"
	"finanzas/api/llm"
	"finanzas/api/logger"
	"finanzas/api/messaging"
	"finanzas/api/middleware"
	"finanzas/api/mongodb"

	"github.com/gin-gonic/gin"
	"github.com/plaid/plaid-go/plaid"
)

func main() {
	seedOnly := flag.Bool("seed-only", false, "seed default categories and exit")
	flag.Parse()

	cfg := config.Load()

	level := logger.InfoLevel
	if cfg.Development {
		level = logger.DebugLevel
	}
	if err := logger.Init(cfg.Development, level); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	if err := db.InitDB(cfg.PostgresURL); err != nil {
		log.Fatal("Failed to connect to Postgres:", err)
	}
	defer db.CloseDB()
	if err := db.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	if err := mongodb.InitMongoDB(cfg.MongoURI, cfg.MongoDatabase); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongodb.CloseMongoDB()

	if err := mongodb.EnsureDefaultCategories(context.Background(), category.Defaults()); err != nil {
		log.Fatal("Failed to seed default categories:", err)
	}
	if *seedOnly {
		logger.Get().Info("default categories seeded")
		return
	}

	handlers.Cfg = cfg

	var remote category.Remote
	if cfg.LLMAPIKey != "" {
		remote = llm.NewClassifier(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	}
	handlers.Categorizer = category.New(remote, mongodb.AppendKeywords)

	messenger := &messaging.Messenger{}
	if cfg.WhatsAppToken != "" {
		messenger.WhatsApp = messaging.NewWhatsAppClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneID)
	}
	if cfg.TelegramBotToken != "" {
		telegram, err := messaging.NewTelegramClient(cfg.TelegramBotToken)
		if err != nil {
			log.Fatal("Failed to initialize Telegram bot:", err)
		}
		messenger.Telegram = telegram
	}
	handlers.Chat = messenger

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.PlaidClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.PlaidSecret)
	configuration.UseEnvironment(plaid.Sandbox)
	handlers.PlaidClient = plaid.NewAPIClient(configuration)

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.CorsMiddleware(cfg.FrontendURL))

	// Webhooks authenticate with the platforms' own mechanisms, not the
	// dashboard JWT.
	router.GET("/webhook/whatsapp", handlers.HandleWebhookVerify)
	router.POST("/webhook/whatsapp", handlers.HandleWhatsAppWebhook)
	telegramPath := "/webhook/telegram"
	if cfg.TelegramWebhookPath != "" {
		telegramPath += "/" + cfg.TelegramWebhookPath
	}
	router.POST(telegramPath, handlers.HandleTelegramWebhook)

	// EventSource cannot send an Authorization header; HandleEvents does
	// its own token check.
	router.GET("/api/events", handlers.HandleEvents)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret, cfg.AuthURL))
	{
		api.GET("/users", handlers.HandleGetUser)
		api.PUT("/users", handlers.HandleUpdateProfile)
		api.POST("/users/link", handlers.HandleRequestLink)

		api.GET("/transactions", handlers.HandleListTransactions)
		api.POST("/transactions", handlers.HandleCreateTransaction)
		api.DELETE("/transactions/:id", handlers.HandleDeleteTransaction)
		api.POST("/transactions/import", handlers.HandleImportStatement)

		api.GET("/categories", handlers.HandleListCategories)
		api.POST("/categories", handlers.HandleCreateCategory)
		api.DELETE("/categories/:id", handlers.HandleDeleteCategory)

		api.GET("/budgets", handlers.HandleListBudgets)
		api.POST("/budgets", handlers.HandleCreateBudget)
		api.PUT("/budgets/:id", handlers.HandleUpdateBudget)
		api.DELETE("/budgets/:id", handlers.HandleDeleteBudget)

		api.GET("/reports/monthly", handlers.HandleMonthlyReport)

		api.POST("/plaid/create-link-token", handlers.HandleCreateLinkToken)
		api.POST("/plaid/exchange-token", handlers.HandleExchangePublicToken)
		api.POST("/plaid/sync", handlers.HandleSyncBankTransactions)
	}

	logger.Get().Info("server starting on port " + cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
