package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so callers cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserExists means the username or the email is already taken.
	ErrUserExists = errors.New("user with this email or username already exists")
	// ErrPasswordMismatch means password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrEmailNotFound means no account owns the given email.
	ErrEmailNotFound = errors.New("no account found with that email address")
	// ErrInvalidToken covers bad signature, malformed structure and
	// expiry on a session token. All three read as "not authenticated".
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidOTP covers a wrong code and an expired one, so the
	// response does not act as a code-guessing oracle.
	ErrInvalidOTP = errors.New("invalid or expired OTP")
)
