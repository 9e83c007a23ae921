package linking

import (
	"testing"
	"time"

	"finanzas/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestStateOf(t *testing.T) {
	assert.Equal(t, Verified, StateOf(true, "", time.Time{}, now).State)
	assert.Equal(t, Pending, StateOf(false, "123456", now.Add(OTPTTL), now).State)
	assert.Equal(t, Unlinked, StateOf(false, "", time.Time{}, now).State)

	// Expired pending reads as unlinked.
	assert.Equal(t, Unlinked, StateOf(false, "123456", now.Add(-time.Second), now).State)
}

func TestValidateRejectsAfterExpiry(t *testing.T) {
	link := Link{State: Pending, OTP: "123456", ExpiresAt: now.Add(OTPTTL)}

	assert.NoError(t, link.Validate("123456", now))
	// Matching code, but past the window.
	assert.ErrorIs(t, link.Validate("123456", now.Add(OTPTTL+time.Second)), ErrExpired)
	assert.ErrorIs(t, link.Validate("123456", now.Add(OTPTTL)), ErrExpired)
}

func TestValidateRejectsMismatchAndNoPending(t *testing.T) {
	link := Link{State: Pending, OTP: "123456", ExpiresAt: now.Add(OTPTTL)}
	assert.ErrorIs(t, link.Validate("654321", now), ErrMismatch)

	assert.ErrorIs(t, Link{State: Unlinked}.Validate("123456", now), ErrNoPending)
	assert.ErrorIs(t, Link{State: Verified}.Validate("123456", now), ErrNoPending)
}

func TestNewOTP(t *testing.T) {
	code, err := NewOTP()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.True(t, IsOTP(code))
}

func TestIsOTP(t *testing.T) {
	assert.True(t, IsOTP("000123"))
	assert.False(t, IsOTP("12345"))
	assert.False(t, IsOTP("1234567"))
	assert.False(t, IsOTP("12a456"))
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "+573001234567", NormalizeIdentifier(models.PlatformWhatsApp, "57 300 123-4567"))
	assert.Equal(t, "+573001234567", NormalizeIdentifier(models.PlatformWhatsApp, "+573001234567"))
	assert.Equal(t, "573001234567", NormalizeIdentifier(models.PlatformTelegram, "+57 300 1234567"))
}
