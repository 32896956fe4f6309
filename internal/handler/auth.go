package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/pateljenish9878/Task-Management/internal/auth"
	"github.com/pateljenish9878/Task-Management/internal/middleware"
	"github.com/pateljenish9878/Task-Management/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler owns the login, registration and password-reset flows.
// All endpoints are form posts answered with flash-style redirects.
type AuthHandler struct {
	Credentials  *auth.Credentials
	Tokens       *auth.TokenService
	OTP          *auth.OTPService
	CookieMaxAge int
	Secure       bool
}

// NewAuthHandler wires the handler to its services. cookieMaxAge is in
// seconds and should match the token validity window.
func NewAuthHandler(creds *auth.Credentials, tokens *auth.TokenService, otp *auth.OTPService, cookieMaxAge int, secure bool) *AuthHandler {
	return &AuthHandler{
		Credentials:  creds,
		Tokens:       tokens,
		OTP:          otp,
		CookieMaxAge: cookieMaxAge,
		Secure:       secure,
	}
}

// Register handles the signup form. On success the user lands on the
// login page; there is no auto-login.
func (h *AuthHandler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirmPassword")

	if username == "" || email == "" || password == "" {
		util.RedirectError(c, "/register", "All fields are required")
		return
	}

	if _, err := h.Credentials.Register(username, email, password, confirm); err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch):
			util.RedirectError(c, "/register", "Passwords do not match")
		case errors.Is(err, auth.ErrUserExists):
			util.RedirectError(c, "/register", "User with this email or username already exists")
		default:
			log.Printf("register: %v", err)
			util.RedirectError(c, "/register", "An error occurred during registration")
		}
		return
	}

	util.RedirectSuccess(c, "/login", "Registration successful. Please log in.")
}

// Login checks credentials, issues a session token and stores it in the
// cookie carrier. Unknown email and wrong password answer identically.
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	user, err := h.Credentials.VerifyCredentials(email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			util.RedirectError(c, "/login", "Invalid email or password")
		} else {
			log.Printf("login: %v", err)
			util.RedirectError(c, "/login", "An error occurred during login")
		}
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		log.Printf("issue token: %v", err)
		util.RedirectError(c, "/login", "An error occurred during login")
		return
	}

	middleware.SetTokenCookie(c, token, h.CookieMaxAge, h.Secure)
	c.Redirect(http.StatusFound, "/tasks")
}

// Logout clears the cookie. The token itself stays valid until expiry;
// there is no server-side state to revoke.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// ForgotPassword issues a reset code for the email and reports delivery
// separately from issuance: a failed send still leaves a valid code.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if email == "" {
		util.RedirectError(c, "/forgot-password", "Email is required")
		return
	}

	delivered, err := h.OTP.RequestReset(email)
	if err != nil {
		if errors.Is(err, auth.ErrEmailNotFound) {
			util.RedirectError(c, "/forgot-password", "No account found with that email address")
		} else {
			log.Printf("forgot password: %v", err)
			util.RedirectError(c, "/forgot-password", "An error occurred. Please try again.")
		}
		return
	}

	target := "/verify-otp?email=" + url.QueryEscape(email)
	if delivered {
		util.RedirectSuccess(c, target, "An OTP has been sent to your email address.")
		return
	}
	util.RedirectError(c, target, "Email sending failed")
}

// VerifyOTP checks the submitted code without consuming it; the reset
// form posts the same code again and it is re-checked there.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	code := strings.TrimSpace(c.PostForm("otp"))

	if err := h.OTP.Verify(email, code); err != nil {
		if errors.Is(err, auth.ErrInvalidOTP) {
			util.RedirectError(c, "/verify-otp?email="+url.QueryEscape(email), "Invalid or expired OTP")
		} else {
			log.Printf("verify otp: %v", err)
			util.RedirectError(c, "/verify-otp?email="+url.QueryEscape(email), "An error occurred. Please try again.")
		}
		return
	}

	c.Redirect(http.StatusFound, "/reset-password?email="+url.QueryEscape(email)+"&otp="+url.QueryEscape(code))
}

// ResetPassword consumes the code and sets the new password. The code
// and its window are re-validated here regardless of any earlier
// VerifyOTP call.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	code := strings.TrimSpace(c.PostForm("otp"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirmPassword")

	resetPage := "/reset-password?email=" + url.QueryEscape(email) + "&otp=" + url.QueryEscape(code)

	if err := h.OTP.ConsumeAndReset(email, code, password, confirm); err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch):
			util.RedirectError(c, resetPage, "Passwords do not match")
		case errors.Is(err, auth.ErrInvalidOTP):
			util.RedirectError(c, "/verify-otp?email="+url.QueryEscape(email), "Invalid or expired OTP")
		case errors.Is(err, auth.ErrEmailNotFound):
			util.RedirectError(c, resetPage, "User not found")
		default:
			log.Printf("reset password: %v", err)
			util.RedirectError(c, resetPage, "An error occurred. Please try again.")
		}
		return
	}

	util.RedirectSuccess(c, "/login", "Password reset successful. Please log in with your new password.")
}
