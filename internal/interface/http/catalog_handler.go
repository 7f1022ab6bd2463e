package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/supgamedex/gamedex-api/internal/infrastructure/rawg"
	"github.com/supgamedex/gamedex-api/pkg/response"
)

// CatalogHandler exposes read-only passthrough routes to the catalog API.
type CatalogHandler struct {
	Catalog *rawg.Client
	Logger  *logrus.Logger
}

func NewCatalogHandler(catalog *rawg.Client, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Logger: logger}
}

const (
	defaultPageSize = 10
	maxPageSize     = 40
)

func pagination(c *gin.Context) (page, pageSize int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v >= 1 {
		page = v
	}
	pageSize = defaultPageSize
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v >= 1 {
		pageSize = v
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// List - GET /api/games
func (h *CatalogHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	raw, err := h.Catalog.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Search - GET /api/games/search?name=
func (h *CatalogHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "name is required")
		return
	}
	page, pageSize := pagination(c)
	raw, err := h.Catalog.SearchByName(c.Request.Context(), name, page, pageSize)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Filter - GET /api/games/filter?genre=&developer=&platform=&search=&preset=
func (h *CatalogHandler) Filter(c *gin.Context) {
	preset := c.Query("preset")
	if !rawg.ValidPreset(preset) {
		response.Error(c, http.StatusBadRequest, "invalid preset")
		return
	}
	page, pageSize := pagination(c)
	raw, err := h.Catalog.Filter(c.Request.Context(), rawg.FilterOptions{
		Page:      page,
		PageSize:  pageSize,
		Genre:     c.Query("genre"),
		Developer: c.Query("developer"),
		Platform:  c.Query("platform"),
		Search:    c.Query("search"),
		Preset:    rawg.Preset(preset),
	})
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *CatalogHandler) upstreamError(c *gin.Context, err error) {
	var ue *rawg.UpstreamError
	if errors.As(err, &ue) {
		h.Logger.WithFields(logrus.Fields{"status": ue.StatusCode, "message": ue.Message}).
			Warn("catalog request failed")
		response.Error(c, http.StatusInternalServerError, ue.Error())
		return
	}
	h.Logger.WithError(err).Error("catalog request failed")
	response.Error(c, http.StatusInternalServerError, "failed to fetch games")
}
