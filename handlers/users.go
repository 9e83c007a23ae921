package handlers

import (
	"net/http"
	"time"

	"finanzas/api/db"
	"finanzas/api/linking"
	"finanzas/api/logger"
	"finanzas/api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UpdateProfileRequest struct {
	MonthlyIncome float64 `json:"monthly_income"`
	Currency      string  `json:"currency" binding:"required"`
}

type LinkRequest struct {
	Platform   string `json:"platform" binding:"required"`
	Identifier string `json:"identifier" binding:"required"`
}

// HandleGetUser returns the caller's profile, creating the account row
// on first sight.
func HandleGetUser(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	if err := db.EnsureUser(claims.Sub, claims.Email); err != nil {
		logger.Get().Error("failed to ensure user", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
		return
	}

	user, err := db.GetUserByID(claims.Sub)
	if err != nil || user == nil {
		logger.Get().Error("failed to fetch user", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
		return
	}

	pub := user.Public()
	now := time.Now()
	pub.WhatsAppState = platformState(user, models.PlatformWhatsApp, now).String()
	pub.TelegramState = platformState(user, models.PlatformTelegram, now).String()
	c.JSON(http.StatusOK, pub)
}

// platformState reconstructs the linking state for one platform. The
// single pending OTP only counts for the platform it was issued for.
func platformState(user *models.User, platform models.Platform, now time.Time) linking.State {
	verified := user.WhatsAppVerified
	if platform == models.PlatformTelegram {
		verified = user.TelegramVerified
	}
	otp := ""
	if user.OTPPlatform.String == string(platform) {
		otp = user.OTP.String
	}
	return linking.StateOf(verified, otp, user.OTPExpiresAt.Time, now).State
}

func HandleUpdateProfile(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := db.UpdateProfile(claims.Sub, req.MonthlyIncome, req.Currency); err != nil {
		logger.Get().Error("failed to update profile", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleRequestLink starts linking a chat identity to the account: it
// stores a pending OTP and tells the user where to type it. WhatsApp
// codes are also pushed to the phone when a sender is configured;
// Telegram codes can only travel dashboard -> bot, since the chat id is
// unknown until the user messages the bot first.
func HandleRequestLink(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform := models.Platform(req.Platform)
	if platform != models.PlatformWhatsApp && platform != models.PlatformTelegram {
		c.JSON(http.StatusBadRequest, gin.H{"error": "platform must be whatsapp or telegram"})
		return
	}

	identifier := linking.NormalizeIdentifier(platform, req.Identifier)
	if identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifier is required"})
		return
	}

	taken, err := db.IdentifierTaken(platform, identifier, claims.Sub)
	if err != nil {
		logger.Get().Error("failed to check identifier", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error starting link"})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "Identifier already linked to another account"})
		return
	}

	otp, err := linking.NewOTP()
	if err != nil {
		logger.Get().Error("failed to generate otp", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error starting link"})
		return
	}

	expiresAt := time.Now().Add(linking.OTPTTL)
	if err := db.BeginLink(claims.Sub, platform, identifier, otp, expiresAt); err != nil {
		logger.Get().Error("failed to begin link", zap.Error(err), zap.String("user_id", claims.Sub))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error starting link"})
		return
	}

	logger.Get().Info("link started",
		zap.String("user_id", claims.Sub),
		zap.String("platform", string(platform)))

	if platform == models.PlatformWhatsApp && Chat != nil {
		Chat.Reply(platform, identifier, "Tu código de verificación es "+otp+". Respóndelo en este chat para vincular tu cuenta.")
	}

	c.JSON(http.StatusOK, gin.H{
		"otp":        otp,
		"expires_at": expiresAt,
		"message":    "Envía este código desde tu chat para completar la vinculación",
	})
}
