package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pateljenish9878/Task-Management/internal/auth"
	"github.com/pateljenish9878/Task-Management/internal/config"
	"github.com/pateljenish9878/Task-Management/internal/database"
	"github.com/pateljenish9878/Task-Management/internal/middleware"
	"github.com/pateljenish9878/Task-Management/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeSender struct {
	deliver bool
	codes   []string
}

func (f *fakeSender) Send(email, code string) bool {
	f.codes = append(f.codes, code)
	return f.deliver
}

func setupApp(t *testing.T) (*gin.Engine, *fakeSender, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireHours: 24},
		OTP:    config.OTPConfig{ExpireMinutes: 10},
	}
	sender := &fakeSender{deliver: true}
	return SetupRouter(cfg, db, sender), sender, db
}

func postForm(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// tokenCookie extracts the session cookie set by a login response, or
// nil when none was issued.
func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.TokenCookie && ck.Value != "" {
			return ck
		}
	}
	return nil
}

func register(t *testing.T, r http.Handler, username, email, password string) {
	t.Helper()
	w := postForm(r, "/register", url.Values{
		"username":        {username},
		"email":           {email},
		"password":        {password},
		"confirmPassword": {password},
	})
	if w.Code != http.StatusFound || !strings.HasPrefix(w.Header().Get("Location"), "/login?success=") {
		t.Fatalf("register failed: %d %q", w.Code, w.Header().Get("Location"))
	}
}

func login(t *testing.T, r http.Handler, email, password string) *http.Cookie {
	t.Helper()
	w := postForm(r, "/login", url.Values{"email": {email}, "password": {password}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/tasks" {
		t.Fatalf("login failed: %d %q", w.Code, w.Header().Get("Location"))
	}
	ck := tokenCookie(w)
	if ck == nil {
		t.Fatal("login did not set a session cookie")
	}
	return ck
}

func TestAuthFlow(t *testing.T) {
	r, _, _ := setupApp(t)

	register(t, r, "alice", "alice@x.com", "pw123")

	// wrong password: generic failure, no token issued
	w := postForm(r, "/login", url.Values{"email": {"alice@x.com"}, "password": {"wrongpw"}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login?error="+url.QueryEscape("Invalid email or password") {
		t.Fatalf("expected invalid-credentials redirect, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if tokenCookie(w) != nil {
		t.Fatal("failed login must not issue a token")
	}

	// unknown email answers identically
	w = postForm(r, "/login", url.Values{"email": {"nobody@x.com"}, "password": {"pw123"}})
	if w.Header().Get("Location") != "/login?error="+url.QueryEscape("Invalid email or password") {
		t.Fatalf("unknown email should fail the same way, got %q", w.Header().Get("Location"))
	}

	ck := login(t, r, "alice@x.com", "pw123")

	// the token decodes to the expected claims
	tokens := auth.NewTokenService("test-secret", 24*time.Hour)
	claims, err := tokens.Verify(ck.Value)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Username != "alice" || claims.Role != models.RoleStandard || claims.Email != "alice@x.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	// the session reaches protected routes
	w = getPath(r, "/api/me", ck)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"username":"alice"`) {
		t.Errorf("expected identity from /api/me, got %d %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("identity context must not leak password material")
	}

	// logout clears the cookie and bounces to login
	w = getPath(r, "/logout", ck)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Errorf("expected logout redirect, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestDuplicateRegistration(t *testing.T) {
	r, _, db := setupApp(t)

	register(t, r, "alice", "alice@x.com", "pw123")

	dupUsername := postForm(r, "/register", url.Values{
		"username":        {"alice"},
		"email":           {"other@x.com"},
		"password":        {"pw123"},
		"confirmPassword": {"pw123"},
	})
	if !strings.HasPrefix(dupUsername.Header().Get("Location"), "/register?error=") {
		t.Errorf("duplicate username should fail, got %q", dupUsername.Header().Get("Location"))
	}

	dupEmail := postForm(r, "/register", url.Values{
		"username":        {"alice2"},
		"email":           {"alice@x.com"},
		"password":        {"pw123"},
		"confirmPassword": {"pw123"},
	})
	if !strings.HasPrefix(dupEmail.Header().Get("Location"), "/register?error=") {
		t.Errorf("duplicate email should fail, got %q", dupEmail.Header().Get("Location"))
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 user after duplicate attempts, got %d", count)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	r, sender, db := setupApp(t)

	register(t, r, "alice", "alice@x.com", "pw123")

	// request a reset code
	w := postForm(r, "/forgot-password", url.Values{"email": {"alice@x.com"}})
	if w.Code != http.StatusFound || !strings.HasPrefix(w.Header().Get("Location"), "/verify-otp?email=") {
		t.Fatalf("expected redirect to verify page, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if !strings.Contains(w.Header().Get("Location"), "success=") {
		t.Errorf("expected delivery success flash, got %q", w.Header().Get("Location"))
	}

	var count int64
	db.Model(&models.OTP{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one OTP record, got %d", count)
	}
	code := sender.codes[0]
	if len(code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", code)
	}

	// wrong code: rejected, record stays
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	w = postForm(r, "/verify-otp", url.Values{"email": {"alice@x.com"}, "otp": {wrong}})
	if !strings.Contains(w.Header().Get("Location"), "error=") {
		t.Errorf("wrong code should be rejected, got %q", w.Header().Get("Location"))
	}
	db.Model(&models.OTP{}).Count(&count)
	if count != 1 {
		t.Errorf("record should survive a failed verify, got %d", count)
	}

	// correct code moves to the reset form without consuming it
	w = postForm(r, "/verify-otp", url.Values{"email": {"alice@x.com"}, "otp": {code}})
	if w.Code != http.StatusFound || !strings.HasPrefix(w.Header().Get("Location"), "/reset-password?email=") {
		t.Fatalf("expected redirect to reset page, got %d %q", w.Code, w.Header().Get("Location"))
	}

	// reset with the code
	w = postForm(r, "/reset-password", url.Values{
		"email":           {"alice@x.com"},
		"otp":             {code},
		"password":        {"pw456"},
		"confirmPassword": {"pw456"},
	})
	if w.Code != http.StatusFound || !strings.HasPrefix(w.Header().Get("Location"), "/login?success=") {
		t.Fatalf("expected reset success redirect, got %d %q", w.Code, w.Header().Get("Location"))
	}
	db.Model(&models.OTP{}).Count(&count)
	if count != 0 {
		t.Errorf("record should be deleted after reset, got %d", count)
	}

	// old password is dead, new one works
	w = postForm(r, "/login", url.Values{"email": {"alice@x.com"}, "password": {"pw123"}})
	if !strings.Contains(w.Header().Get("Location"), "error=") {
		t.Errorf("old password should no longer log in, got %q", w.Header().Get("Location"))
	}
	login(t, r, "alice@x.com", "pw456")

	// the consumed code cannot be replayed
	w = postForm(r, "/reset-password", url.Values{
		"email":           {"alice@x.com"},
		"otp":             {code},
		"password":        {"pw789"},
		"confirmPassword": {"pw789"},
	})
	if !strings.Contains(w.Header().Get("Location"), "error=") {
		t.Errorf("replayed code should be rejected, got %q", w.Header().Get("Location"))
	}
}

func TestAdminGate(t *testing.T) {
	r, _, db := setupApp(t)

	register(t, r, "alice", "alice@x.com", "pw123")
	register(t, r, "boss", "boss@x.com", "pw123")
	if err := db.Model(&models.User{}).Where("username = ?", "boss").
		Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}

	aliceCk := login(t, r, "alice@x.com", "pw123")
	w := getPath(r, "/api/admin/users", aliceCk)
	if w.Code != http.StatusFound || !strings.HasPrefix(w.Header().Get("Location"), "/?error=") {
		t.Errorf("standard user should be denied, got %d %q", w.Code, w.Header().Get("Location"))
	}

	bossCk := login(t, r, "boss@x.com", "pw123")
	w = getPath(r, "/api/admin/users", bossCk)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"username":"alice"`) {
		t.Errorf("admin should see the user list, got %d %s", w.Code, w.Body.String())
	}
}

func TestHomeAndGuestRedirects(t *testing.T) {
	r, _, _ := setupApp(t)

	// guests land on the login page
	w := getPath(r, "/")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Errorf("guest home should redirect to /login, got %d %q", w.Code, w.Header().Get("Location"))
	}

	// unknown routes behave the same for guests
	w = getPath(r, "/no-such-page")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Errorf("unknown route should redirect guests to /login, got %d %q", w.Code, w.Header().Get("Location"))
	}

	register(t, r, "alice", "alice@x.com", "pw123")
	ck := login(t, r, "alice@x.com", "pw123")

	// signed-in users land on their tasks
	w = getPath(r, "/", ck)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/tasks" {
		t.Errorf("signed-in home should redirect to /tasks, got %d %q", w.Code, w.Header().Get("Location"))
	}

	// guest-only pages bounce signed-in users
	w = getPath(r, "/login", ck)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/tasks" {
		t.Errorf("login page should bounce signed-in users, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestChangePasswordFlow(t *testing.T) {
	r, _, _ := setupApp(t)

	register(t, r, "alice", "alice@x.com", "pw123")
	ck := login(t, r, "alice@x.com", "pw123")

	// wrong current password
	w := postForm(r, "/profile/update-password", url.Values{
		"currentPassword": {"wrongpw"},
		"newPassword":     {"pw456"},
		"confirmPassword": {"pw456"},
	}, ck)
	if !strings.Contains(w.Header().Get("Location"), "error=") {
		t.Errorf("wrong current password should fail, got %q", w.Header().Get("Location"))
	}

	w = postForm(r, "/profile/update-password", url.Values{
		"currentPassword": {"pw123"},
		"newPassword":     {"pw456"},
		"confirmPassword": {"pw456"},
	}, ck)
	if w.Code != http.StatusFound || !strings.HasPrefix(w.Header().Get("Location"), "/profile?success=") {
		t.Fatalf("expected change success, got %d %q", w.Code, w.Header().Get("Location"))
	}

	login(t, r, "alice@x.com", "pw456")
}
