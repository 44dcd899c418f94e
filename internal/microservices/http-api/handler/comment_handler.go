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

type CommentHandler struct {
	commentService service.CommentService
	logger         *slog.Logger
}

func NewCommentHandler(commentService service.CommentService, logger *slog.Logger) *CommentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentHandler{commentService: commentService, logger: logger}
}

// RegisterRoutes registers episode routes; the group must already be authenticated
func (h *CommentHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/watch/:anime/episode/:number/", h.Episode)
	rg.POST("/watch/:anime/episode/:number/", h.Create)
}

func episodeParams(c *gin.Context) (string, int, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrEpisodeNotFound.Error()})
		return "", 0, false
	}
	return c.Param("anime"), number, true
}

func (h *CommentHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrEpisodeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	internalError(c, h.logger, "comment request failed", err)
}

// Episode renders the episode page, or with ?comment=1 on a programmatic
// request long-polls for comments newer than ?after=.
// GET /watch/:anime/episode/:number/
func (h *CommentHandler) Episode(c *gin.Context) {
	anime, number, ok := episodeParams(c)
	if !ok {
		return
	}

	if isXHR(c) && c.Query("comment") == "1" {
		recs, err := h.commentService.WaitForComments(c.Request.Context(), anime, number, dto.ParseAfter(c.Query("after")))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
		return
	}

	ep, err := h.commentService.Episode(c.Request.Context(), anime, number)
	if err != nil {
		h.fail(c, err)
		return
	}
	comments, err := h.commentService.History(c.Request.Context(), anime, number)
	if err != nil {
		h.fail(c, err)
		return
	}
	initial := dto.LatestStamp(comments)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.EpisodePage{
			Anime:            ep.AnimeTitle,
			EpisodeNumber:    ep.EpisodeNumber,
			Title:            ep.Title,
			VideoURL:         ep.VideoURL,
			InitialTimestamp: initial,
			Comments:         comments,
		})
		return
	}

	box := view.NewContainer()
	log := view.NewCommentLog(box)
	for _, rec := range comments {
		if err := log.Render(rec); err != nil {
			internalError(c, h.logger, "render comment failed", err)
			return
		}
	}
	renderPage(c, h.logger, view.Page{
		Title:       ep.Title,
		ContainerID: "comment-container",
		Body:        box.HTML(),
		Scripts:     []view.Script{{ID: "initialTimestamp", Value: initial}},
	})
}

// Create stores the form field "content" as a comment; blank content is ignored.
// POST /watch/:anime/episode/:number/
func (h *CommentHandler) Create(c *gin.Context) {
	anime, number, ok := episodeParams(c)
	if !ok {
		return
	}
	v, ok := viewer(c)
	if !ok {
		return
	}

	var form dto.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.commentService.PostComment(c.Request.Context(), v, anime, number, form.Content); err != nil {
		h.fail(c, err)
		return
	}

	if isXHR(c) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, dto.EpisodeURL(anime, number))
}
