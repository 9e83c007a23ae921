package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finanzas/api/db"
	"finanzas/api/intent"
	"finanzas/api/linking"
	"finanzas/api/logger"
	"finanzas/api/models"
	"finanzas/api/mongodb"
	"finanzas/api/report"
	"finanzas/api/sse"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const helpText = `No entendí tu mensaje 🤔

Puedes escribirme cosas como:
• "Gasté 25000 en almuerzo"
• "Recibí 1000000 de salario"
• "50000 taxi"
• "Presupuesto 500000 para comida"
• "reporte" para ver tu resumen del mes`

// Store operations the chat pipeline uses, as variables so tests can
// stub them without a running cluster.
var (
	listCategories    = mongodb.GetCategoriesForUser
	storeTransaction  = mongodb.CreateTransaction
	storeBudget       = mongodb.CreateBudget
	monthTransactions = mongodb.GetTransactionsByMonth
)

const linkInstructions = `Este número no está vinculado a ninguna cuenta. Entra al panel web, solicita un código de vinculación y envíalo por este chat.`

// WhatsApp Cloud API webhook payload, trimmed to the fields we read.
type whatsAppWebhook struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// HandleWebhookVerify answers the Meta subscription handshake: echo
// hub.challenge when the verify token matches, 403 otherwise.
func HandleWebhookVerify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == Cfg.WebhookVerifyToken {
		logger.Get().Info("webhook verified")
		c.String(http.StatusOK, challenge)
		return
	}

	logger.Get().Warn("webhook verification rejected", zap.String("mode", mode))
	c.Status(http.StatusForbidden)
}

// HandleWhatsAppWebhook processes inbound WhatsApp messages. The reply
// to Meta is always 200: a non-2xx makes the platform retry and the
// user would see duplicated transactions.
func HandleWhatsAppWebhook(c *gin.Context) {
	var payload whatsAppWebhook
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Get().Warn("malformed whatsapp payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "" && msg.Type != "text" {
					continue
				}
				text := strings.TrimSpace(msg.Text.Body)
				if text == "" {
					continue
				}
				sender := linking.NormalizeIdentifier(models.PlatformWhatsApp, msg.From)
				processChatMessage(c.Request.Context(), models.PlatformWhatsApp, sender, sender, text)
			}
		}
	}

	c.Status(http.StatusOK)
}

// HandleTelegramWebhook processes bot updates. The identifier for a
// Telegram user is the chat id, which is only known once they message
// the bot, so OTP verification is the moment it gets captured.
func HandleTelegramWebhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Get().Warn("malformed telegram update", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		c.Status(http.StatusOK)
		return
	}

	chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
	text := strings.TrimSpace(update.Message.Text)
	processChatMessage(c.Request.Context(), models.PlatformTelegram, chatID, chatID, text)

	c.Status(http.StatusOK)
}

// processChatMessage is the shared pipeline behind both platforms:
// account resolution first, then intent parsing. The OTP verify path
// only applies to senders no verified account owns — a linked user's
// bare six-digit message is an ordinary (unrecognized) message.
// identifier is what resolves the account (phone number or chat id),
// replyTo is where the answer goes.
func processChatMessage(ctx context.Context, platform models.Platform, identifier, replyTo, text string) {
	user, err := db.GetVerifiedByIdentifier(platform, identifier)
	if err != nil {
		logger.Get().Error("failed to resolve chat identity",
			zap.String("platform", string(platform)), zap.Error(err))
		return
	}
	if user == nil {
		if linking.IsOTP(text) {
			verifyOTP(ctx, platform, identifier, replyTo, text)
			return
		}
		Chat.Reply(platform, replyTo, linkInstructions)
		return
	}

	parsed, ok := intent.Parse(text)
	if !ok {
		Chat.Reply(platform, replyTo, helpText)
		return
	}

	switch parsed.Kind {
	case intent.KindTransaction:
		recordChatTransaction(ctx, platform, replyTo, user.UserID, parsed)
	case intent.KindBudget:
		recordChatBudget(ctx, platform, replyTo, user.UserID, parsed)
	case intent.KindReport:
		sendChatReport(ctx, platform, replyTo, user.UserID)
	}
}

// verifyOTP completes a pending link. WhatsApp codes must arrive from
// the same number the link was requested for; Telegram records the
// sending chat id as the linked identifier here.
func verifyOTP(ctx context.Context, platform models.Platform, identifier, replyTo, code string) {
	user, err := db.GetPendingByOTP(platform, code)
	if err != nil {
		logger.Get().Error("failed to look up otp", zap.Error(err))
		return
	}
	if user == nil {
		Chat.Reply(platform, replyTo, "Código incorrecto o vencido. Solicita uno nuevo desde el panel web.")
		return
	}

	link := linking.Link{State: linking.Pending, OTP: user.OTP.String, ExpiresAt: user.OTPExpiresAt.Time}
	if err := link.Validate(code, time.Now()); err != nil {
		if errors.Is(err, linking.ErrExpired) {
			Chat.Reply(platform, replyTo, "El código venció. Solicita uno nuevo desde el panel web.")
		} else {
			Chat.Reply(platform, replyTo, "Código incorrecto o vencido. Solicita uno nuevo desde el panel web.")
		}
		return
	}

	if platform == models.PlatformWhatsApp && user.WhatsAppNumber.String != identifier {
		logger.Get().Warn("otp submitted from unexpected number",
			zap.String("user_id", user.UserID))
		Chat.Reply(platform, replyTo, "Este código fue solicitado para otro número.")
		return
	}

	if err := db.CompleteLink(user.UserID, platform, identifier); err != nil {
		if errors.Is(err, db.ErrIdentifierTaken) {
			Chat.Reply(platform, replyTo, "Esta identidad ya está vinculada a otra cuenta.")
			return
		}
		logger.Get().Error("failed to complete link",
			zap.String("user_id", user.UserID), zap.Error(err))
		Chat.Reply(platform, replyTo, "No pude completar la vinculación. Intenta de nuevo.")
		return
	}

	logger.Get().Info("chat identity linked",
		zap.String("user_id", user.UserID),
		zap.String("platform", string(platform)))
	Chat.Reply(platform, replyTo, "✅ ¡Cuenta vinculada! Ya puedes registrar tus movimientos por este chat.")
}

func recordChatTransaction(ctx context.Context, platform models.Platform, replyTo, userID string, parsed intent.Intent) {
	categories, err := listCategories(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load categories", zap.Error(err), zap.String("user_id", userID))
		Chat.Reply(platform, replyTo, "No pude registrar el movimiento. Intenta de nuevo.")
		return
	}

	result := Categorizer.Categorize(ctx, userID, parsed.Description, categories)

	tx := &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      parsed.Amount,
		Type:        parsed.Type,
		Category:    result.Category,
		Subcategory: result.Subcategory,
		Description: parsed.Description,
		Date:        time.Now().Format("2006-01-02"),
		Source:      string(platform),
		CreatedAt:   time.Now(),
	}

	if err := storeTransaction(ctx, tx); err != nil {
		logger.Get().Error("failed to store chat transaction", zap.Error(err), zap.String("user_id", userID))
		Chat.Reply(platform, replyTo, "No pude registrar el movimiento. Intenta de nuevo.")
		return
	}

	sse.PublishTransaction(tx)

	emoji := "💸"
	label := "Gasto"
	if tx.Type == models.TypeIncome {
		emoji = "💰"
		label = "Ingreso"
	}
	Chat.Reply(platform, replyTo, fmt.Sprintf("%s %s registrado: $%.0f en %s (%s)",
		emoji, label, tx.Amount, tx.Description, tx.Category))
}

// recordChatBudget creates a budget from a chat message. The category
// text is canonicalized against the user's category set when it names
// or keyword-matches one; otherwise it is kept as typed.
func recordChatBudget(ctx context.Context, platform models.Platform, replyTo, userID string, parsed intent.Intent) {
	categories, err := listCategories(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load categories", zap.Error(err), zap.String("user_id", userID))
		Chat.Reply(platform, replyTo, "No pude crear el presupuesto. Intenta de nuevo.")
		return
	}

	name := parsed.Description
	if matched := categoryNamed(categories, name); matched != "" {
		name = matched
	} else if r := Categorizer.Categorize(ctx, userID, parsed.Description, categories); r.Category != models.FallbackCategory {
		name = r.Category
	}

	budget := &models.Budget{
		ID:        uuid.NewString(),
		UserID:    userID,
		Category:  name,
		Amount:    parsed.Amount,
		Period:    "monthly",
		CreatedAt: time.Now(),
	}

	if err := storeBudget(ctx, budget); err != nil {
		logger.Get().Error("failed to store chat budget", zap.Error(err), zap.String("user_id", userID))
		Chat.Reply(platform, replyTo, "No pude crear el presupuesto. Intenta de nuevo.")
		return
	}

	Chat.Reply(platform, replyTo, fmt.Sprintf("📊 Presupuesto creado: $%.0f para %s al mes",
		budget.Amount, budget.Category))
}

func categoryNamed(categories []models.Category, name string) string {
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, name) {
			return cat.Name
		}
	}
	return ""
}

func sendChatReport(ctx context.Context, platform models.Platform, replyTo, userID string) {
	month := report.MonthOf(time.Now())
	transactions, err := monthTransactions(ctx, userID, month)
	if err != nil {
		logger.Get().Error("failed to build chat report", zap.Error(err), zap.String("user_id", userID))
		Chat.Reply(platform, replyTo, "No pude generar el reporte. Intenta de nuevo.")
		return
	}

	Chat.Reply(platform, replyTo, report.FormatChat(report.Monthly(transactions, month)))
}
