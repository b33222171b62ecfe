package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skycast/skycast/internal/session"
	"github.com/skycast/skycast/internal/units"
)

func newTestRouter(store *session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	favorites := NewFavoritesHandler(store, zap.NewNop())
	r.GET("/api/favorites", favorites.List)
	r.POST("/api/favorites", favorites.Add)
	r.DELETE("/api/favorites/:name", favorites.Remove)
	r.DELETE("/api/favorites", favorites.Clear)

	settings := NewSettingsHandler(store, zap.NewNop())
	r.GET("/api/settings", settings.Get)
	r.PUT("/api/settings/units", settings.UpdateUnits)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFavoritesLifecycle(t *testing.T) {
	store := session.NewStore(units.Metric)
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodGet, "/api/favorites", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	body := `{"name":"Berlin","country":"DE","lat":52.52,"lon":13.405}`
	w = doJSON(t, r, http.MethodPost, "/api/favorites", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/favorites", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_FAVORITE")

	w = doJSON(t, r, http.MethodGet, "/api/favorites", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Berlin")

	w = doJSON(t, r, http.MethodDelete, "/api/favorites/Berlin", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/favorites/Berlin", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddFavoriteRejectsBadCoordinates(t *testing.T) {
	store := session.NewStore(units.Metric)
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/favorites", `{"name":"Nowhere","lat":95.0,"lon":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_PARAMS")
	assert.Empty(t, store.Favorites())
}

func TestAddFavoriteRejectsMissingName(t *testing.T) {
	store := session.NewStore(units.Metric)
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/favorites", `{"lat":10,"lon":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearFavorites(t *testing.T) {
	store := session.NewStore(units.Metric)
	r := newTestRouter(store)

	doJSON(t, r, http.MethodPost, "/api/favorites", `{"name":"Berlin","lat":52.52,"lon":13.405}`)
	doJSON(t, r, http.MethodPost, "/api/favorites", `{"name":"Paris","lat":48.85,"lon":2.35}`)

	w := doJSON(t, r, http.MethodDelete, "/api/favorites", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.Favorites())
}

func TestSettingsRoundTrip(t *testing.T) {
	store := session.NewStore(units.Metric)
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodGet, "/api/settings", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"units":"metric"}`, w.Body.String())

	w = doJSON(t, r, http.MethodPut, "/api/settings/units", `{"units":"imperial"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"units":"imperial"}`, w.Body.String())
	assert.Equal(t, units.Imperial, store.Units())
}

func TestSettingsRejectsUnknownUnits(t *testing.T) {
	store := session.NewStore(units.Metric)
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodPut, "/api/settings/units", `{"units":"kelvin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, units.Metric, store.Units())
}
