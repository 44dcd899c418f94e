package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"takosu/internal/microservices/http-api/service"
	"takosu/internal/widget/view"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	svc    service.CatalogService
	logger *slog.Logger
}

func NewCatalogHandler(svc service.CatalogService, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

// RegisterPublicRoutes registers the pages anyone can browse
func (h *CatalogHandler) RegisterPublicRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.GET("/search/", h.Search)
}

// RegisterRoutes registers routes that need an authenticated group
func (h *CatalogHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/anime/:title/", h.Detail)
}

// Index serves the home page carousels; programmatic requests get the
// categories payload alone.
// GET /
func (h *CatalogHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cats, err := h.svc.Categories(ctx)
	if err != nil {
		internalError(c, h.logger, "load categories failed", err)
		return
	}

	if isXHR(c) || wantsJSON(c) {
		c.JSON(http.StatusOK, cats)
		return
	}

	body, err := view.RenderCategories(cats)
	if err != nil {
		internalError(c, h.logger, "render categories failed", err)
		return
	}
	renderPage(c, h.logger, view.Page{
		Title:       "Inicio",
		ContainerID: "categories",
		Body:        body,
		Scripts:     []view.Script{{ID: "categories-data", Value: cats}},
	})
}

// Search matches titles containing ?search= (all titles when empty).
// GET /search/
func (h *CatalogHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	query := c.Query("search")
	results, err := h.svc.Search(ctx, query)
	if err != nil {
		internalError(c, h.logger, "search failed", err)
		return
	}

	if isXHR(c) {
		c.JSON(http.StatusOK, results)
		return
	}

	box := view.NewContainer()
	grid := view.NewGrid(box)
	if len(results) == 0 && strings.TrimSpace(query) != "" {
		err = grid.ShowEmpty(query)
	} else {
		err = grid.ShowResults(results)
	}
	if err != nil {
		internalError(c, h.logger, "render search failed", err)
		return
	}
	renderPage(c, h.logger, view.Page{
		Title:       "Buscar",
		ContainerID: "results-grid",
		Body:        box.HTML(),
		Scripts:     []view.Script{{ID: "search-value", Value: query}},
	})
}

// Detail returns an anime with its episodes in order.
// GET /anime/:title/
func (h *CatalogHandler) Detail(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.svc.Detail(ctx, c.Param("title"))
	if err != nil {
		if errors.Is(err, service.ErrAnimeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.logger, "load anime failed", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
