package util

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// RedirectError sends the browser to path with a flash-style error
// message carried in the query string.
func RedirectError(c *gin.Context, path, msg string) {
	redirectFlash(c, path, "error", msg)
}

// RedirectSuccess sends the browser to path with a flash-style success
// message carried in the query string.
func RedirectSuccess(c *gin.Context, path, msg string) {
	redirectFlash(c, path, "success", msg)
}

func redirectFlash(c *gin.Context, path, key, msg string) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusFound, path+sep+key+"="+url.QueryEscape(msg))
}
