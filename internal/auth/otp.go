package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/pateljenish9878/Task-Management/internal/mail"
	"github.com/pateljenish9878/Task-Management/internal/models"
	"github.com/pateljenish9878/Task-Management/internal/store"
	"github.com/pateljenish9878/Task-Management/internal/util"
)

// OTPService drives the password-reset flow: one live code per email,
// a fixed validity window, single use enforced at the final reset step.
type OTPService struct {
	users  store.UserStore
	otps   store.OTPStore
	sender mail.Sender
	ttl    time.Duration
}

// NewOTPService builds the reset-flow service. A non-positive ttl falls
// back to 10 minutes.
func NewOTPService(users store.UserStore, otps store.OTPStore, sender mail.Sender, ttl time.Duration) *OTPService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPService{users: users, otps: otps, sender: sender, ttl: ttl}
}

// RequestReset issues a fresh code for the email, superseding any
// earlier one, and tries to deliver it. A failed send does not fail the
// request: the code stays redeemable and the returned flag tells the
// caller whether the mail actually went out.
func (s *OTPService) RequestReset(email string) (delivered bool, err error) {
	email = strings.TrimSpace(email)

	if _, err := s.users.FindByEmail(email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrEmailNotFound
		}
		return false, fmt.Errorf("lookup email: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return false, fmt.Errorf("generate code: %w", err)
	}

	// delete-then-insert keeps at most one live code per email
	if err := s.otps.DeleteByEmail(email); err != nil {
		return false, fmt.Errorf("clear previous otp: %w", err)
	}
	if err := s.otps.Save(&models.OTP{Email: email, Code: code, CreatedAt: time.Now()}); err != nil {
		return false, fmt.Errorf("save otp: %w", err)
	}

	return s.sender.Send(email, code), nil
}

// Verify checks the (email, code) pair and its age without consuming the
// record, so the same code can still authorize the reset step.
func (s *OTPService) Verify(email, code string) error {
	_, err := s.lookup(email, code)
	return err
}

// ConsumeAndReset re-validates the code from scratch (the window may
// have elapsed since Verify), sets the new password and deletes the
// record so the code cannot be replayed.
func (s *OTPService) ConsumeAndReset(email, code, newPassword, confirm string) error {
	email = strings.TrimSpace(email)

	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if _, err := s.lookup(email, code); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("lookup email: %w", err)
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.otps.DeleteByEmail(email); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

func (s *OTPService) lookup(email, code string) (*models.OTP, error) {
	rec, err := s.otps.FindByEmailAndCode(strings.TrimSpace(email), strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, fmt.Errorf("lookup otp: %w", err)
	}
	if time.Since(rec.CreatedAt) > s.ttl {
		return nil, ErrInvalidOTP
	}
	return rec, nil
}

// generateCode returns a uniform random code in [100000, 999999], so it
// is always exactly six digits.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
