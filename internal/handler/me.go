package handler

import (
	"net/http"

	"github.com/pateljenish9878/Task-Management/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GetMe returns the identity context of the signed-in user.
func GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":                user.ID,
			"username":          user.Username,
			"email":             user.Email,
			"role":              user.Role,
			"profile_image":     user.ProfileImage,
			"bio":               user.Bio,
			"phone":             user.Phone,
			"profile_completed": user.ProfileCompleted,
			"created_at":        user.CreatedAt,
		},
	})
}
