package messaging

import (
	"finanzas/api/logger"
	"finanzas/api/models"

	"go.uber.org/zap"
)

// PlatformSender is what the webhook pipeline needs from a platform
// client.
type PlatformSender interface {
	Send(identifier, text string) error
}

// Messenger routes a reply to the platform the message came from.
// Delivery is best effort: failures are logged and swallowed, a chat
// reply must never fail the transaction that triggered it.
type Messenger struct {
	WhatsApp PlatformSender
	Telegram PlatformSender
}

func (m *Messenger) Reply(platform models.Platform, identifier, text string) {
	var sender PlatformSender
	switch platform {
	case models.PlatformWhatsApp:
		sender = m.WhatsApp
	case models.PlatformTelegram:
		sender = m.Telegram
	}
	if sender == nil {
		logger.Get().Warn("no sender configured for platform",
			zap.String("platform", string(platform)))
		return
	}

	if err := sender.Send(identifier, text); err != nil {
		logger.Get().Error("failed to send chat reply",
			zap.String("platform", string(platform)),
			zap.String("identifier", identifier),
			zap.Error(err))
	}
}
