package models

import "time"

// OTP is a password-reset code bound to an email address. At most one
// row exists per email: requesting a new code replaces the old row.
// Expiry is enforced by age check at read time, not by deletion.
type OTP struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:128;index;not null"`
	Code      string `gorm:"size:6;not null"`
	CreatedAt time.Time
}
