package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/server/utils"
)

type LocationHandler struct {
	resolver *location.Resolver
	logger   *zap.Logger
}

func NewLocationHandler(resolver *location.Resolver, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// Search returns the full geocoding candidate list for a query so clients can
// disambiguate themselves. The weather endpoint always picks the first.
func (h *LocationHandler) Search(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)

	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Query parameter q is required",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	locations, err := h.resolver.Search(ctx, req.Query)
	if err != nil {
		h.logger.Warn("Geocoding search failed",
			zap.String("query", req.Query),
			zap.Error(err))
		writeFetchError(c, err)
		return
	}

	if len(locations) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: location.ErrNotFound.Error(),
			Code:  "NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, locations)
}
