package handler

import (
	"log"
	"net/http"

	"github.com/pateljenish9878/Task-Management/internal/store"

	"github.com/gin-gonic/gin"
)

// ListUsers returns every account for the admin view. The route sits
// behind the admin role gate.
func ListUsers(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := users.List()
		if err != nil {
			log.Printf("list users: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
			return
		}

		out := make([]gin.H, 0, len(all))
		for i := range all {
			u := all[i].Context()
			out = append(out, gin.H{
				"id":         u.ID,
				"username":   u.Username,
				"email":      u.Email,
				"role":       u.Role,
				"created_at": u.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"users": out})
	}
}
