package handlers

import (
	"context"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finanzas/api/category"
	"finanzas/api/config"
	"finanzas/api/db"
	"finanzas/api/messaging"
	"finanzas/api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSender struct {
	sent []string
}

func (f *fakeSender) Send(identifier, text string) error {
	f.sent = append(f.sent, identifier+": "+text)
	return nil
}

func newDBMock(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	db.DB = mockDB
	return mock
}

func userRow(userID, otp, otpPlatform string, expiresAt time.Time, whatsappNumber driver.Value) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "email", "monthly_income", "currency",
		"whatsapp_number", "whatsapp_verified",
		"telegram_number", "telegram_chat_id", "telegram_verified",
		"otp", "otp_platform", "otp_expires_at", "created_at",
	}).AddRow(
		userID, "ana@example.com", 0.0, "COP",
		whatsappNumber, false,
		nil, nil, false,
		otp, otpPlatform, expiresAt, time.Now(),
	)
}

func TestWebhookVerifyEchoesChallenge(t *testing.T) {
	Cfg = &config.Config{WebhookVerifyToken: "secret-token"}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)

	HandleWebhookVerify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345", w.Body.String())
}

func TestWebhookVerifyRejectsBadToken(t *testing.T) {
	Cfg = &config.Config{WebhookVerifyToken: "secret-token"}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)

	HandleWebhookVerify(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWhatsAppWebhookUnknownSenderGetsLinkInstructions(t *testing.T) {
	mock := newDBMock(t)
	sender := &fakeSender{}
	Chat = &messaging.Messenger{WhatsApp: sender}

	mock.ExpectQuery(`FROM users WHERE whatsapp_number = \$1 AND whatsapp_verified`).
		WithArgs("+573001234567").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	body := `{"entry":[{"changes":[{"value":{"messages":[{"from":"573001234567","type":"text","text":{"body":"Gasté 25000 en almuerzo"}}]}}]}]}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	HandleWhatsAppWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "no está vinculado")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWhatsAppWebhookVerifiesOTP(t *testing.T) {
	mock := newDBMock(t)
	sender := &fakeSender{}
	Chat = &messaging.Messenger{WhatsApp: sender}

	expiresAt := time.Now().Add(5 * time.Minute)
	mock.ExpectQuery(`FROM users WHERE whatsapp_number = \$1 AND whatsapp_verified`).
		WithArgs("+573001234567").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectQuery(`FROM users WHERE otp = \$1 AND otp_platform = \$2`).
		WithArgs("482913", "whatsapp").
		WillReturnRows(userRow("user-1", "482913", "whatsapp", expiresAt, "+573001234567"))
	mock.ExpectExec(`UPDATE users\s+SET whatsapp_verified = true`).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"entry":[{"changes":[{"value":{"messages":[{"from":"573001234567","type":"text","text":{"body":"482913"}}]}}]}]}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	HandleWhatsAppWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Cuenta vinculada")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWhatsAppWebhookRejectsOTPFromOtherNumber(t *testing.T) {
	mock := newDBMock(t)
	sender := &fakeSender{}
	Chat = &messaging.Messenger{WhatsApp: sender}

	expiresAt := time.Now().Add(5 * time.Minute)
	mock.ExpectQuery(`FROM users WHERE whatsapp_number = \$1 AND whatsapp_verified`).
		WithArgs("+579999999999").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectQuery(`FROM users WHERE otp = \$1 AND otp_platform = \$2`).
		WithArgs("482913", "whatsapp").
		WillReturnRows(userRow("user-1", "482913", "whatsapp", expiresAt, "+573001234567"))

	body := `{"entry":[{"changes":[{"value":{"messages":[{"from":"579999999999","type":"text","text":{"body":"482913"}}]}}]}]}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	HandleWhatsAppWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "otro número")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWhatsAppWebhookExpiredOTP(t *testing.T) {
	mock := newDBMock(t)
	sender := &fakeSender{}
	Chat = &messaging.Messenger{WhatsApp: sender}

	expiresAt := time.Now().Add(-time.Minute)
	mock.ExpectQuery(`FROM users WHERE whatsapp_number = \$1 AND whatsapp_verified`).
		WithArgs("+573001234567").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectQuery(`FROM users WHERE otp = \$1 AND otp_platform = \$2`).
		WithArgs("482913", "whatsapp").
		WillReturnRows(userRow("user-1", "482913", "whatsapp", expiresAt, "+573001234567"))

	body := `{"entry":[{"changes":[{"value":{"messages":[{"from":"573001234567","type":"text","text":{"body":"482913"}}]}}]}]}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	HandleWhatsAppWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "venció")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTelegramWebhookCapturesChatIDOnVerify(t *testing.T) {
	mock := newDBMock(t)
	sender := &fakeSender{}
	Chat = &messaging.Messenger{Telegram: sender}

	expiresAt := time.Now().Add(5 * time.Minute)
	mock.ExpectQuery(`FROM users WHERE telegram_chat_id = \$1 AND telegram_verified`).
		WithArgs("987654321").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectQuery(`FROM users WHERE otp = \$1 AND otp_platform = \$2`).
		WithArgs("482913", "telegram").
		WillReturnRows(userRow("user-1", "482913", "telegram", expiresAt, nil))
	mock.ExpectExec(`UPDATE users\s+SET telegram_chat_id = \$1, telegram_verified = true`).
		WithArgs("987654321", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"update_id":1,"message":{"message_id":1,"chat":{"id":987654321,"type":"private"},"text":"482913"}}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	HandleTelegramWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Cuenta vinculada")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWhatsAppWebhookBareDigitsFromLinkedUserIsNotOTP(t *testing.T) {
	mock := newDBMock(t)
	sender := &fakeSender{}
	Chat = &messaging.Messenger{WhatsApp: sender}

	// The sender is already verified, so the six digits must not reach
	// the OTP lookup.
	mock.ExpectQuery(`FROM users WHERE whatsapp_number = \$1 AND whatsapp_verified`).
		WithArgs("+573001234567").
		WillReturnRows(userRow("user-1", "", "", time.Time{}, "+573001234567"))

	body := `{"entry":[{"changes":[{"value":{"messages":[{"from":"573001234567","type":"text","text":{"body":"482913"}}]}}]}]}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	HandleWhatsAppWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "No entendí")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWhatsAppWebhookCreatesBudget(t *testing.T) {
	mock := newDBMock(t)
	sender := &fakeSender{}
	Chat = &messaging.Messenger{WhatsApp: sender}
	Categorizer = category.New(nil, nil)

	origList, origStore := listCategories, storeBudget
	t.Cleanup(func() { listCategories, storeBudget = origList, origStore })

	listCategories = func(_ context.Context, userID string) ([]models.Category, error) {
		return []models.Category{
			{Name: "Alimentación", Type: models.TypeExpense, Keywords: []string{"comida", "almuerzo"}},
		}, nil
	}

	var created *models.Budget
	storeBudget = func(_ context.Context, budget *models.Budget) error {
		created = budget
		return nil
	}

	mock.ExpectQuery(`FROM users WHERE whatsapp_number = \$1 AND whatsapp_verified`).
		WithArgs("+573001234567").
		WillReturnRows(userRow("user-1", "", "", time.Time{}, "+573001234567"))

	body := `{"entry":[{"changes":[{"value":{"messages":[{"from":"573001234567","type":"text","text":{"body":"Presupuesto 500000 para comida"}}]}}]}]}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	HandleWhatsAppWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, created)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, float64(500000), created.Amount)
	// "comida" keyword-matches the food category, so the budget lands
	// on the canonical name.
	assert.Equal(t, "Alimentación", created.Category)
	assert.Equal(t, "monthly", created.Period)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Presupuesto creado")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWhatsAppWebhookUnrecognizedMessageGetsHelp(t *testing.T) {
	mock := newDBMock(t)
	sender := &fakeSender{}
	Chat = &messaging.Messenger{WhatsApp: sender}

	mock.ExpectQuery(`FROM users WHERE whatsapp_number = \$1 AND whatsapp_verified`).
		WithArgs("+573001234567").
		WillReturnRows(userRow("user-1", "", "", time.Time{}, "+573001234567"))

	body := `{"entry":[{"changes":[{"value":{"messages":[{"from":"573001234567","type":"text","text":{"body":"hola qué tal"}}]}}]}]}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	HandleWhatsAppWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "No entendí")
	assert.NoError(t, mock.ExpectationsWereMet())
}
