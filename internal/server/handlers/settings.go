package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skycast/skycast/internal/session"
	"github.com/skycast/skycast/internal/units"
)

type SettingsHandler struct {
	store  *session.Store
	logger *zap.Logger
}

func NewSettingsHandler(store *session.Store, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  store,
		logger: logger,
	}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, SettingsResponse{
		Units: string(h.store.Units()),
	})
}

// UpdateUnits switches the display unit system. The change applies to the
// next fetch; the current snapshot keeps the units it was fetched with.
func (h *SettingsHandler) UpdateUnits(c *gin.Context) {
	var req UnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Units must be metric or imperial",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	h.store.SetUnits(units.System(req.Units))
	h.logger.Info("Unit system changed", zap.String("units", req.Units))

	c.JSON(http.StatusOK, SettingsResponse{
		Units: string(h.store.Units()),
	})
}
