package models

import "time"

// Role values stored on User.Role.
const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

// User represents a registered account.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:16;not null;default:standard"`

	ProfileImage     string `gorm:"size:255"`
	Bio              string `gorm:"size:512"`
	Phone            string `gorm:"size:32"`
	ProfileCompleted bool   `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentUser is the request-scoped identity attached by the session
// middleware. It carries everything downstream handlers need and never
// the password hash.
type CurrentUser struct {
	ID               uint
	Username         string
	Email            string
	Role             string
	ProfileImage     string
	Bio              string
	Phone            string
	ProfileCompleted bool
	CreatedAt        time.Time
}

// Context returns the stripped view of the user for request attachment.
func (u *User) Context() *CurrentUser {
	return &CurrentUser{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		Role:             u.Role,
		ProfileImage:     u.ProfileImage,
		Bio:              u.Bio,
		Phone:            u.Phone,
		ProfileCompleted: u.ProfileCompleted,
		CreatedAt:        u.CreatedAt,
	}
}
