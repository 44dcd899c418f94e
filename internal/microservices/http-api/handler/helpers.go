package handler

import (
	"log/slog"
	"net/http"

	"takosu/internal/microservices/http-api/middleware"
	"takosu/internal/shared"
	"takosu/internal/widget/view"

	"github.com/gin-gonic/gin"
)

// isXHR reports whether the request carries the programmatic-request marker.
func isXHR(c *gin.Context) bool {
	return c.GetHeader(shared.XHRHeader) == shared.XHRValue
}

// wantsJSON reports whether a page request prefers the JSON rendition.
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func renderPage(c *gin.Context, logger *slog.Logger, page view.Page) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderPage(c.Writer, page); err != nil {
		logger.Error("render page failed", "path", c.Request.URL.Path, "error", err)
	}
}

// viewer returns the authenticated user or aborts with 401.
func viewer(c *gin.Context) (shared.AuthClaims, bool) {
	v, ok := middleware.Viewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return shared.AuthClaims{}, false
	}
	return v, true
}

func internalError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
