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

// multipart framing allowed on top of the icon itself
const uploadOverhead = 64 << 10

// ProfileHandler serves the viewer's profile: icon and favorite anime.
type ProfileHandler struct {
	svc    service.ProfileService
	logger *slog.Logger
}

func NewProfileHandler(svc service.ProfileService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers profile routes; the group must already be authenticated
func (h *ProfileHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/profile/", h.Show)
	rg.POST("/profile/", h.UpdateIcon)
	rg.POST("/anime/:title/favorite/", h.ToggleFavorite)
}

func (h *ProfileHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrAnimeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidIcon):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrIconTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	default:
		internalError(c, h.logger, "profile request failed", err)
	}
}

// Show renders the profile with the icon form and the favorite anime as cards.
// GET /profile/
func (h *ProfileHandler) Show(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	profile, err := h.svc.Profile(c.Request.Context(), v)
	if err != nil {
		h.fail(c, err)
		return
	}

	if isXHR(c) || wantsJSON(c) {
		c.JSON(http.StatusOK, profile)
		return
	}

	box := view.NewContainer()
	header, err := view.RenderProfileHeader(view.ProfileHeader{Username: profile.Username, Icon: profile.Icon})
	if err != nil {
		internalError(c, h.logger, "render profile failed", err)
		return
	}
	box.Append(header)
	favorites := view.NewContainer()
	if err := view.NewGrid(favorites).ShowResults(profile.Favorites); err != nil {
		internalError(c, h.logger, "render favorites failed", err)
		return
	}
	box.Append(favorites.HTML())
	renderPage(c, h.logger, view.Page{Title: "Perfil", ContainerID: "profile", Body: box.HTML()})
}

// UpdateIcon replaces the viewer's icon with the multipart file "icon".
// POST /profile/
func (h *ProfileHandler) UpdateIcon(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxIconSize+uploadOverhead)
	fh, err := c.FormFile("icon")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, service.ErrIconTooLarge)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "icon file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		internalError(c, h.logger, "open uploaded icon failed", err)
		return
	}
	defer f.Close()

	icon, err := h.svc.UpdateIcon(c.Request.Context(), v, f)
	if err != nil {
		h.fail(c, err)
		return
	}

	if isXHR(c) {
		c.JSON(http.StatusOK, dto.IconResponse{Icon: icon})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ToggleFavorite adds the anime to the viewer's favorites or removes it.
// POST /anime/:title/favorite/
func (h *ProfileHandler) ToggleFavorite(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	title := c.Param("title")
	favorite, err := h.svc.ToggleFavorite(c.Request.Context(), v, title)
	if err != nil {
		h.fail(c, err)
		return
	}

	if isXHR(c) {
		c.JSON(http.StatusOK, dto.FavoriteResponse{Title: title, Favorite: favorite})
		return
	}
	c.Redirect(http.StatusSeeOther, dto.AnimeURL(title))
}
