package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"takosu/internal/microservices/http-api/dto"
	"takosu/internal/microservices/http-api/service"
	"takosu/internal/widget/view"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the help chat pages and their long-poll endpoint.
type ChatHandler struct {
	chatService service.ChatService
	logger      *slog.Logger
}

func NewChatHandler(chatService service.ChatService, logger *slog.Logger) *ChatHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{chatService: chatService, logger: logger}
}

// RegisterRoutes registers chat routes; the group must already be authenticated
func (h *ChatHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/help-chat/:id/", h.Detail)
	rg.POST("/help-chat/:id/", h.Send)
	rg.GET("/conversations/redirect/", h.Redirect)
	rg.GET("/conversations/", h.List)
}

func conversationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrConversationNotFound.Error()})
		return 0, false
	}
	return id, true
}

func (h *ChatHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		internalError(c, h.logger, "chat request failed", err)
	}
}

// Detail renders a conversation, or with ?message=1 on a programmatic request
// long-polls for messages newer than ?after=.
// GET /help-chat/:id/
func (h *ChatHandler) Detail(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}
	v, ok := viewer(c)
	if !ok {
		return
	}

	if isXHR(c) && c.Query("message") == "1" {
		recs, err := h.chatService.WaitForMessages(c.Request.Context(), v, id, dto.ParseAfter(c.Query("after")))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
		return
	}

	conv, err := h.chatService.Conversation(c.Request.Context(), v, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	history, err := h.chatService.History(c.Request.Context(), v, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.ChatPage{ConversationID: id, Owner: conv.User.Username, Messages: history})
		return
	}

	box := view.NewContainer()
	log := view.NewMessageLog(box)
	for _, rec := range history {
		if err := log.Render(rec); err != nil {
			internalError(c, h.logger, "render message failed", err)
			return
		}
	}
	renderPage(c, h.logger, view.Page{
		Title:       "Chat de ayuda",
		ContainerID: "chat-box",
		Body:        box.HTML(),
		Scripts:     []view.Script{{ID: "conversationId", Value: id}},
	})
}

// Send stores a message from the form field "message".
// POST /help-chat/:id/
func (h *ChatHandler) Send(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}
	v, ok := viewer(c)
	if !ok {
		return
	}

	var form dto.MessageForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.chatService.PostMessage(c.Request.Context(), v, id, form.Message); err != nil {
		h.fail(c, err)
		return
	}

	if isXHR(c) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, dto.ConversationURL(id))
}

// Redirect sends admins to the conversation list and users to their own conversation.
// GET /conversations/redirect/
func (h *ChatHandler) Redirect(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	path, err := h.chatService.RedirectPath(c.Request.Context(), v)
	if err != nil {
		internalError(c, h.logger, "conversation redirect failed", err)
		return
	}

	if isXHR(c) {
		c.JSON(http.StatusOK, gin.H{"url": path})
		return
	}
	c.Redirect(http.StatusFound, path)
}

// List returns every conversation to admins and the viewer's own otherwise.
// GET /conversations/
func (h *ChatHandler) List(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	list, err := h.chatService.ListConversations(c.Request.Context(), v)
	if err != nil {
		internalError(c, h.logger, "list conversations failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}
