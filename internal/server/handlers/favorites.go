package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/server/utils"
	"github.com/skycast/skycast/internal/session"
)

type FavoritesHandler struct {
	store  *session.Store
	logger *zap.Logger
}

func NewFavoritesHandler(store *session.Store, logger *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		store:  store,
		logger: logger,
	}
}

func (h *FavoritesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Favorites())
}

func (h *FavoritesHandler) Add(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid favorite payload",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid favorite payload",
			Code:    "INVALID_PARAMS",
			Details: errs[0].Message,
		})
		return
	}

	loc := location.Location{
		Name:    req.Name,
		Country: req.Country,
		State:   req.State,
		Lat:     req.Lat,
		Lon:     req.Lon,
	}

	if !h.store.AddFavorite(loc) {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "Location is already a favorite",
			Code:  "DUPLICATE_FAVORITE",
		})
		return
	}

	h.logger.Info("Favorite added", zap.String("name", loc.Name))
	c.JSON(http.StatusCreated, loc)
}

func (h *FavoritesHandler) Remove(c *gin.Context) {
	name := c.Param("name")

	if !h.store.RemoveFavorite(name) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "No favorite with that name",
			Code:  "NOT_FOUND",
		})
		return
	}

	h.logger.Info("Favorite removed", zap.String("name", name))
	c.Status(http.StatusNoContent)
}

func (h *FavoritesHandler) Clear(c *gin.Context) {
	h.store.ClearFavorites()
	c.Status(http.StatusNoContent)
}
