package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/pateljenish9878/Task-Management/internal/auth"
	"github.com/pateljenish9878/Task-Management/internal/middleware"
	"github.com/pateljenish9878/Task-Management/internal/store"
	"github.com/pateljenish9878/Task-Management/internal/util"

	"github.com/gin-gonic/gin"
)

// ChangePassword updates the signed-in user's password after checking
// the current one. The full record is reloaded because the identity
// context deliberately carries no password hash.
func ChangePassword(creds *auth.Credentials, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cu := middleware.CurrentUser(c)
		if cu == nil {
			c.Redirect(http.StatusFound, "/login")
			return
		}

		current := c.PostForm("currentPassword")
		newPassword := c.PostForm("newPassword")
		confirm := c.PostForm("confirmPassword")

		user, err := users.FindByID(cu.ID)
		if err != nil {
			log.Printf("load user %d: %v", cu.ID, err)
			util.RedirectError(c, "/profile/change-password", "An error occurred. Please try again.")
			return
		}

		if err := creds.ChangePassword(user, current, newPassword, confirm); err != nil {
			switch {
			case errors.Is(err, auth.ErrPasswordMismatch):
				util.RedirectError(c, "/profile/change-password", "New passwords do not match")
			case errors.Is(err, auth.ErrInvalidCredentials):
				util.RedirectError(c, "/profile/change-password", "Current password is incorrect")
			default:
				log.Printf("change password: %v", err)
				util.RedirectError(c, "/profile/change-password", "An error occurred. Please try again.")
			}
			return
		}

		util.RedirectSuccess(c, "/profile", "Password updated successfully")
	}
}
