package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/supgamedex/gamedex-api/internal/application"
	"github.com/supgamedex/gamedex-api/internal/domain/entity"
	"github.com/supgamedex/gamedex-api/internal/infrastructure/rawg"
	"github.com/supgamedex/gamedex-api/pkg/response"
	"github.com/supgamedex/gamedex-api/pkg/validation"
)

type LibraryHandler struct {
	Svc    *application.LibraryService
	Logger *logrus.Logger
}

func NewLibraryHandler(svc *application.LibraryService, logger *logrus.Logger) *LibraryHandler {
	return &LibraryHandler{Svc: svc, Logger: logger}
}

type addGameRequest struct {
	RAWGID   int64   `json:"rawg_id" binding:"required"`
	Comment  *string `json:"comment"`
	Rating   *int32  `json:"rating" binding:"omitempty,gte=0,lte=100"`
	Progress *string `json:"progress"`
	Status   *string `json:"status"`
}

type updateGameRequest struct {
	Comment  *string `json:"comment"`
	Rating   *int32  `json:"rating" binding:"omitempty,gte=0,lte=100"`
	Progress *string `json:"progress"`
	Status   *string `json:"status"`
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// AddGame - POST /api/users/:user_id/games
func (h *LibraryHandler) AddGame(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	var req addGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.ToDetails(err))
		return
	}
	entry, err := h.Svc.AddOrUpdate(c.Request.Context(), userID, req.RAWGID, entity.EntryUpdate{
		Comment:  req.Comment,
		Rating:   req.Rating,
		Progress: req.Progress,
		Status:   req.Status,
	})
	if err != nil {
		h.libraryError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "game added/updated", "game": entry})
}

// UpdateGame - PUT /api/users/:user_id/games/:game_id
func (h *LibraryHandler) UpdateGame(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	gameID, ok := pathID(c, "game_id")
	if !ok {
		return
	}
	var req updateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.ToDetails(err))
		return
	}
	entry, err := h.Svc.UpdateEntry(c.Request.Context(), userID, gameID, entity.EntryUpdate{
		Comment:  req.Comment,
		Rating:   req.Rating,
		Progress: req.Progress,
		Status:   req.Status,
	})
	if err != nil {
		h.libraryError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "game updated", "game": entry})
}

// ListGames - GET /api/users/:user_id/games
func (h *LibraryHandler) ListGames(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	u, entries, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		h.libraryError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": u.Email, "games": entries})
}

// RemoveGame - DELETE /api/users/:user_id/games/:game_id
func (h *LibraryHandler) RemoveGame(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	gameID, ok := pathID(c, "game_id")
	if !ok {
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), userID, gameID); err != nil {
		h.libraryError(c, err)
		return
	}
	response.Message(c, "game removed from library")
}

func (h *LibraryHandler) libraryError(c *gin.Context, err error) {
	var ue *rawg.UpstreamError
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "user not found")
	case errors.Is(err, application.ErrEntryNotFound):
		response.Error(c, http.StatusNotFound, "game not found for this user")
	case errors.Is(err, rawg.ErrNotFound):
		response.Error(c, http.StatusNotFound, "game not found in catalog")
	case errors.As(err, &ue):
		response.Error(c, http.StatusInternalServerError, ue.Error())
	default:
		h.Logger.WithError(err).Error("library operation failed")
		response.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
