package store

import (
	"errors"
	"fmt"

	"github.com/pateljenish9878/Task-Management/internal/models"

	"gorm.io/gorm"
)

// OTPStore persists password-reset codes.
type OTPStore interface {
	FindByEmail(email string) (*models.OTP, error)
	FindByEmailAndCode(email, code string) (*models.OTP, error)
	Save(otp *models.OTP) error
	DeleteByEmail(email string) error
}

type gormOTPStore struct {
	db *gorm.DB
}

// NewOTPStore returns an OTPStore backed by the given database.
func NewOTPStore(db *gorm.DB) OTPStore {
	return &gormOTPStore{db: db}
}

func (s *gormOTPStore) FindByEmail(email string) (*models.OTP, error) {
	var otp models.OTP
	if err := s.db.Where("email = ?", email).First(&otp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find otp by email: %w", err)
	}
	return &otp, nil
}

func (s *gormOTPStore) FindByEmailAndCode(email, code string) (*models.OTP, error) {
	var otp models.OTP
	if err := s.db.Where("email = ? AND code = ?", email, code).First(&otp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find otp by email and code: %w", err)
	}
	return &otp, nil
}

func (s *gormOTPStore) Save(otp *models.OTP) error {
	if err := s.db.Create(otp).Error; err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

func (s *gormOTPStore) DeleteByEmail(email string) error {
	if err := s.db.Where("email = ?", email).Delete(&models.OTP{}).Error; err != nil {
		return fmt.Errorf("delete otp by email: %w", err)
	}
	return nil
}
