package models

import (
	"database/sql"
	"time"
)

// Platform identifies which chat front door an identifier belongs to.
type Platform string

const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformTelegram Platform = "telegram"
)

// User is the account record kept in Postgres. Linking state is per
// platform; the OTP fields describe the single in-flight link attempt
// and are NULL otherwise.
type User struct {
	UserID           string         `json:"user_id"`
	Email            string         `json:"email"`
	MonthlyIncome    float64        `json:"monthly_income"`
	Currency         string         `json:"currency"`
	WhatsAppNumber   sql.NullString `json:"-"`
	WhatsAppVerified bool           `json:"-"`
	TelegramNumber   sql.NullString `json:"-"`
	TelegramChatID   sql.NullString `json:"-"`
	TelegramVerified bool           `json:"-"`
	OTP              sql.NullString `json:"-"`
	OTPPlatform      sql.NullString `json:"-"`
	OTPExpiresAt     sql.NullTime   `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
}

// PublicUser is the shape returned to the dashboard. Linked identifiers
// are echoed back, the OTP never is.
type PublicUser struct {
	UserID           string    `json:"user_id"`
	Email            string    `json:"email"`
	MonthlyIncome    float64   `json:"monthly_income"`
	Currency         string    `json:"currency"`
	WhatsAppNumber   string    `json:"whatsapp_number,omitempty"`
	WhatsAppVerified bool      `json:"whatsapp_verified"`
	WhatsAppState    string    `json:"whatsapp_state,omitempty"`
	TelegramNumber   string    `json:"telegram_number,omitempty"`
	TelegramVerified bool      `json:"telegram_verified"`
	TelegramState    string    `json:"telegram_state,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		UserID:           u.UserID,
		Email:            u.Email,
		MonthlyIncome:    u.MonthlyIncome,
		Currency:         u.Currency,
		WhatsAppNumber:   u.WhatsAppNumber.String,
		WhatsAppVerified: u.WhatsAppVerified,
		TelegramNumber:   u.TelegramNumber.String,
		TelegramVerified: u.TelegramVerified,
		CreatedAt:        u.CreatedAt,
	}
}
