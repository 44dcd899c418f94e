package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler of the site.
type Handlers struct {
	Auth       *AuthHandler
	Catalog    *CatalogHandler
	Chat       *ChatHandler
	Comment    *CommentHandler
	Profile    *ProfileHandler
	Suggestion *SuggestionHandler
}

// SetupRoutes mounts the public pages and, behind auth, the chat, comment,
// detail, profile and suggestion pages. protected runs in order on every
// authenticated route.
//
// Titles are path segments escaped with url.PathEscape, and some contain "/"
// (Fate/Zero), so routing matches on the escaped path and unescapes params.
func SetupRoutes(r *gin.Engine, h Handlers, protected ...gin.HandlerFunc) {
	r.UseRawPath = true
	r.UnescapePathValues = true

	h.Auth.RegisterRoutes(r)
	h.Catalog.RegisterPublicRoutes(r)

	authed := r.Group("/", protected...)
	h.Catalog.RegisterRoutes(authed)
	h.Chat.RegisterRoutes(authed)
	h.Comment.RegisterRoutes(authed)
	h.Profile.RegisterRoutes(authed)
	h.Suggestion.RegisterRoutes(authed)
}
