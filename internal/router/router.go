package router

import (
	"net/http"
	"time"

	"github.com/pateljenish9878/Task-Management/internal/auth"
	"github.com/pateljenish9878/Task-Management/internal/config"
	"github.com/pateljenish9878/Task-Management/internal/handler"
	"github.com/pateljenish9878/Task-Management/internal/mail"
	"github.com/pateljenish9878/Task-Management/internal/middleware"
	"github.com/pateljenish9878/Task-Management/internal/models"
	"github.com/pateljenish9878/Task-Management/internal/store"
	"github.com/pateljenish9878/Task-Management/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires stores, services and middleware onto a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, sender mail.Sender) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	users := store.NewUserStore(db)
	otps := store.NewOTPStore(db)

	tokenTTL := time.Duration(cfg.JWT.ExpireHours) * time.Hour
	tokens := auth.NewTokenService(cfg.JWT.Secret, tokenTTL)
	creds := auth.NewCredentials(users)
	otpSvc := auth.NewOTPService(users, otps, sender, time.Duration(cfg.OTP.ExpireMinutes)*time.Minute)

	secure := cfg.Server.Mode == gin.ReleaseMode
	authHandler := handler.NewAuthHandler(creds, tokens, otpSvc, int(tokens.TTL().Seconds()), secure)

	// home: signed-in users land on their tasks, guests on the login page
	r.GET("/", middleware.AttachIfPresent(tokens, users), func(c *gin.Context) {
		if middleware.CurrentUser(c) != nil {
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		c.Redirect(http.StatusFound, "/login")
	})

	// guest-only pages and form posts
	guest := r.Group("", middleware.RedirectIfAuthenticated(tokens))
	guest.GET("/login", handler.Page("login"))
	guest.POST("/login", authHandler.Login)
	guest.GET("/register", handler.Page("register"))
	guest.POST("/register", authHandler.Register)
	guest.GET("/forgot-password", handler.Page("forgot-password"))
	guest.POST("/forgot-password", authHandler.ForgotPassword)
	guest.GET("/verify-otp", handler.Page("verify-otp"))
	guest.POST("/verify-otp", authHandler.VerifyOTP)
	guest.GET("/reset-password", handler.Page("reset-password"))
	guest.POST("/reset-password", authHandler.ResetPassword)

	// signed-in surface
	r.GET("/logout", middleware.RequireSession(tokens, users), authHandler.Logout)
	r.GET("/tasks", middleware.RequireSession(tokens, users), handler.Tasks)

	profile := r.Group("/profile", middleware.RequireSession(tokens, users))
	profile.GET("", handler.Page("profile"))
	profile.GET("/change-password", handler.Page("change-password"))
	profile.POST("/update-password", handler.ChangePassword(creds, users))

	api := r.Group("/api", middleware.RequireSession(tokens, users))
	api.GET("/me", handler.GetMe)

	admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.GET("/users", handler.ListUsers(users))

	// unknown routes behave like the home route
	r.NoRoute(middleware.AttachIfPresent(tokens, users), func(c *gin.Context) {
		if middleware.CurrentUser(c) != nil {
			util.RedirectError(c, "/tasks", "Page not found")
			return
		}
		c.Redirect(http.StatusFound, "/login")
	})

	return r
}
