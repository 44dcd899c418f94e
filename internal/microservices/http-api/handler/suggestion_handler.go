package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"takosu/internal/microservices/http-api/dto"
	"takosu/internal/microservices/http-api/service"
	"takosu/internal/widget/view"

	"github.com/gin-gonic/gin"
)

const suggestionPath = "/suggestion/"

// SuggestionHandler serves the suggestion box.
type SuggestionHandler struct {
	svc    service.SuggestionService
	logger *slog.Logger
}

func NewSuggestionHandler(svc service.SuggestionService, logger *slog.Logger) *SuggestionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestionHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers suggestion routes; the group must already be authenticated
func (h *SuggestionHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET(suggestionPath, h.Page)
	rg.POST(suggestionPath, h.Create)
}

// Page shows the suggestion form, plus every suggestion to admins.
// GET /suggestion/
func (h *SuggestionHandler) Page(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	page := dto.SuggestionPage{IsAdmin: v.IsAdmin, Suggestions: []dto.SuggestionResponse{}}
	if v.IsAdmin {
		list, err := h.svc.List(c.Request.Context(), v)
		if err != nil {
			internalError(c, h.logger, "list suggestions failed", err)
			return
		}
		page.Suggestions = list
	}

	if isXHR(c) || wantsJSON(c) {
		c.JSON(http.StatusOK, page)
		return
	}

	box := view.NewContainer()
	for _, s := range page.Suggestions {
		frag, err := view.RenderSuggestion(view.SuggestionItem{
			Author: s.Username, Subject: s.Subject, Message: s.Message, CreatedAt: s.CreatedAt,
		})
		if err != nil {
			internalError(c, h.logger, "render suggestion failed", err)
			return
		}
		box.Append(frag)
	}
	renderPage(c, h.logger, view.Page{
		Title:       "Buzón de sugerencias",
		ContainerID: "suggestion-list",
		Body:        box.HTML(),
	})
}

// Create stores a suggestion from the form fields "subject" and "message".
// POST /suggestion/
func (h *SuggestionHandler) Create(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	var form dto.SuggestionForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Submit(c.Request.Context(), v, form.Subject, form.Message); err != nil {
		if errors.Is(err, service.ErrEmptySuggestion) || errors.Is(err, service.ErrSubjectTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.logger, "store suggestion failed", err)
		return
	}

	if isXHR(c) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, suggestionPath)
}
