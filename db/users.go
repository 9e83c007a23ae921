package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"finanzas/api/models"

	"github.com/lib/pq"
)

// ErrIdentifierTaken surfaces the partial-unique-index violation: the
// identifier is already verified under a different account.
var ErrIdentifierTaken = errors.New("identifier already linked to another account")

const userColumns = `user_id, email, monthly_income, currency,
	whatsapp_number, whatsapp_verified,
	telegram_number, telegram_chat_id, telegram_verified,
	otp, otp_platform, otp_expires_at, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.UserID, &user.Email, &user.MonthlyIncome, &user.Currency,
		&user.WhatsAppNumber, &user.WhatsAppVerified,
		&user.TelegramNumber, &user.TelegramChatID, &user.TelegramVerified,
		&user.OTP, &user.OTPPlatform, &user.OTPExpiresAt, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning user: %v", err)
	}
	return user, nil
}

// EnsureUser creates the account row on first sight of an authenticated
// subject. Safe to call on every request.
func EnsureUser(userID, email string) error {
	query := `
		INSERT INTO users (user_id, email)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := DB.Exec(query, userID, email); err != nil {
		return fmt.Errorf("error ensuring user %s: %v", userID, err)
	}
	return nil
}

func GetUserByID(userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return scanUser(DB.QueryRow(query, userID))
}

func UpdateProfile(userID string, monthlyIncome float64, currency string) error {
	query := `
		UPDATE users
		SET monthly_income = $1, currency = $2
		WHERE user_id = $3
	`
	if _, err := DB.Exec(query, monthlyIncome, currency, userID); err != nil {
		return fmt.Errorf("error updating profile for user %s: %v", userID, err)
	}
	return nil
}

// GetVerifiedByIdentifier resolves the account a chat message belongs
// to. WhatsApp messages are matched by phone number, Telegram by chat
// id. Returns nil when no verified account owns the identifier.
func GetVerifiedByIdentifier(platform models.Platform, identifier string) (*models.User, error) {
	var query string
	switch platform {
	case models.PlatformWhatsApp:
		query = `SELECT ` + userColumns + ` FROM users WHERE whatsapp_number = $1 AND whatsapp_verified`
	case models.PlatformTelegram:
		query = `SELECT ` + userColumns + ` FROM users WHERE telegram_chat_id = $1 AND telegram_verified`
	default:
		return nil, fmt.Errorf("unknown platform: %s", platform)
	}
	return scanUser(DB.QueryRow(query, identifier))
}

// IdentifierTaken pre-checks a link request so the caller can 409
// before generating an OTP. The partial unique index still backs this
// up at verification time, so the check-then-act window is harmless.
func IdentifierTaken(platform models.Platform, identifier, exceptUserID string) (bool, error) {
	var query string
	switch platform {
	case models.PlatformWhatsApp:
		query = `SELECT EXISTS (
			SELECT 1 FROM users
			WHERE whatsapp_number = $1 AND whatsapp_verified AND user_id <> $2
		)`
	case models.PlatformTelegram:
		query = `SELECT EXISTS (
			SELECT 1 FROM users
			WHERE telegram_number = $1 AND telegram_verified AND user_id <> $2
		)`
	default:
		return false, fmt.Errorf("unknown platform: %s", platform)
	}

	var taken bool
	if err := DB.QueryRow(query, identifier, exceptUserID).Scan(&taken); err != nil {
		return false, fmt.Errorf("error checking identifier: %v", err)
	}
	return taken, nil
}

// BeginLink records a pending link attempt: the identifier, a fresh
// OTP and its expiry. A new attempt overwrites any stale pending state.
func BeginLink(userID string, platform models.Platform, identifier, otp string, expiresAt time.Time) error {
	var query string
	switch platform {
	case models.PlatformWhatsApp:
		query = `
			UPDATE users
			SET whatsapp_number = $1, whatsapp_verified = false,
			    otp = $2, otp_platform = $3, otp_expires_at = $4
			WHERE user_id = $5
		`
	case models.PlatformTelegram:
		query = `
			UPDATE users
			SET telegram_number = $1, telegram_verified = false,
			    otp = $2, otp_platform = $3, otp_expires_at = $4
			WHERE user_id = $5
		`
	default:
		return fmt.Errorf("unknown platform: %s", platform)
	}

	result, err := DB.Exec(query, identifier, otp, string(platform), expiresAt, userID)
	if err != nil {
		return fmt.Errorf("error beginning link for user %s: %v", userID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// GetPendingByOTP finds the account whose in-flight link attempt holds
// this code. Expiry is validated by the caller against the returned
// fields, not here.
func GetPendingByOTP(platform models.Platform, otp string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE otp = $1 AND otp_platform = $2`
	return scanUser(DB.QueryRow(query, otp, string(platform)))
}

// CompleteLink flips the platform to verified and clears the OTP
// fields in one statement. For Telegram the chat id is only learned at
// verification time, so it is written here. A unique-index violation
// maps to ErrIdentifierTaken.
func CompleteLink(userID string, platform models.Platform, telegramChatID string) error {
	var err error
	switch platform {
	case models.PlatformWhatsApp:
		query := `
			UPDATE users
			SET whatsapp_verified = true,
			    otp = NULL, otp_platform = NULL, otp_expires_at = NULL
			WHERE user_id = $1
		`
		_, err = DB.Exec(query, userID)
	case models.PlatformTelegram:
		query := `
			UPDATE users
			SET telegram_chat_id = $1, telegram_verified = true,
			    otp = NULL, otp_platform = NULL, otp_expires_at = NULL
			WHERE user_id = $2
		`
		_, err = DB.Exec(query, telegramChatID, userID)
	default:
		return fmt.Errorf("unknown platform: %s", platform)
	}

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrIdentifierTaken
		}
		return fmt.Errorf("error completing link for user %s: %v", userID, err)
	}
	return nil
}
