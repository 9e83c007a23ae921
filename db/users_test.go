package db

import (
	"testing"
	"time"

	"finanzas/api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	DB = mockDB
	t.Cleanup(func() { mockDB.Close() })
	return mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "email", "monthly_income", "currency",
		"whatsapp_number", "whatsapp_verified",
		"telegram_number", "telegram_chat_id", "telegram_verified",
		"otp", "otp_platform", "otp_expires_at", "created_at",
	})
}

func TestGetUserByID(t *testing.T) {
	mock := newMock(t)
	created := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM users WHERE user_id").
		WithArgs("u-1").
		WillReturnRows(userRows().AddRow(
			"u-1", "ana@example.com", 2500000.0, "COP",
			"+573001234567", true,
			nil, nil, false,
			nil, nil, nil, created,
		))

	user, err := GetUserByID("u-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.True(t, user.WhatsAppVerified)
	assert.False(t, user.OTP.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByIDNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM users WHERE user_id").
		WithArgs("missing").
		WillReturnRows(userRows())

	user, err := GetUserByID("missing")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestIdentifierTaken(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("+573001234567", "u-2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := IdentifierTaken(models.PlatformWhatsApp, "+573001234567", "u-2")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestBeginLink(t *testing.T) {
	mock := newMock(t)
	expires := time.Now().Add(10 * time.Minute)
	mock.ExpectExec("UPDATE users").
		WithArgs("573001234567", "123456", "telegram", expires, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := BeginLink("u-1", models.PlatformTelegram, "573001234567", "123456", expires)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeginLinkUnknownUser(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := BeginLink("ghost", models.PlatformWhatsApp, "+57300", "123456", time.Now())
	assert.Error(t, err)
}

func TestCompleteLinkConflictMapsToErrIdentifierTaken(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE users").
		WithArgs("99887766", "u-1").
		WillReturnError(&pq.Error{Code: "23505"})

	err := CompleteLink("u-1", models.PlatformTelegram, "99887766")
	assert.ErrorIs(t, err, ErrIdentifierTaken)
}

func TestGetPendingByOTP(t *testing.T) {
	mock := newMock(t)
	expires := time.Now().Add(5 * time.Minute)
	mock.ExpectQuery("FROM users WHERE otp").
		WithArgs("123456", "telegram").
		WillReturnRows(userRows().AddRow(
			"u-1", "ana@example.com", 0.0, "COP",
			nil, false,
			"573001234567", nil, false,
			"123456", "telegram", expires, time.Now(),
		))

	user, err := GetPendingByOTP(models.PlatformTelegram, "123456")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "123456", user.OTP.String)
	assert.Equal(t, "telegram", user.OTPPlatform.String)
}
