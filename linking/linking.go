// Package linking holds the chat-account linking state machine:
// Unlinked -> Pending{otp, expiresAt} -> Verified, per platform. The
// store persists the fields; every transition decision lives here so
// illegal states stay unrepresentable.
package linking

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"finanzas/api/models"
)

// OTPTTL is how long a one-time code stays valid.
const OTPTTL = 10 * time.Minute

var (
	ErrNoPending = errors.New("no pending link for user")
	ErrExpired   = errors.New("otp expired")
	ErrMismatch  = errors.New("otp mismatch")
)

type State int

const (
	Unlinked State = iota
	Pending
	Verified
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Verified:
		return "verified"
	default:
		return "unlinked"
	}
}

// Link is the per-platform linking state of one user.
type Link struct {
	State     State
	OTP       string
	ExpiresAt time.Time
}

// StateOf reconstructs the state from the persisted fields. A verified
// record never carries an OTP; a pending record is one with an OTP that
// has not expired yet. An expired pending record reads as Unlinked and
// stays on disk until a fresh link attempt overwrites it.
func StateOf(verified bool, otp string, expiresAt time.Time, now time.Time) Link {
	switch {
	case verified:
		return Link{State: Verified}
	case otp != "" && now.Before(expiresAt):
		return Link{State: Pending, OTP: otp, ExpiresAt: expiresAt}
	default:
		return Link{State: Unlinked}
	}
}

// Validate checks a submitted code against the link state. Fails closed:
// only an exact match inside the validity window passes.
func (l Link) Validate(code string, now time.Time) error {
	if l.State != Pending {
		return ErrNoPending
	}
	if !now.Before(l.ExpiresAt) {
		return ErrExpired
	}
	if l.OTP != code {
		return ErrMismatch
	}
	return nil
}

// NewOTP returns a 6-digit code from crypto/rand.
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// IsOTP reports whether a chat message looks like a code submission.
func IsOTP(text string) bool {
	if len(text) != 6 {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeIdentifier strips whitespace and applies the per-platform
// prefix rule: WhatsApp numbers are stored E.164 with a leading +,
// Telegram phone numbers without one.
func NormalizeIdentifier(platform models.Platform, raw string) string {
	s := strings.Join(strings.Fields(raw), "")
	s = strings.ReplaceAll(s, "-", "")
	switch platform {
	case models.PlatformWhatsApp:
		if s != "" && !strings.HasPrefix(s, "+") {
			s = "+" + s
		}
	case models.PlatformTelegram:
		s = strings.TrimPrefix(s, "+")
	}
	return s
}
