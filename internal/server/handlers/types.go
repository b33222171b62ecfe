package handlers

// WeatherRequest selects a location either by coordinates, by free-text city
// query, or relays a client-side geolocation failure code.
type WeatherRequest struct {
	Lat      *float64 `form:"lat" json:"lat" validate:"omitempty,latitude"`
	Lon      *float64 `form:"lon" json:"lon" validate:"omitempty,longitude"`
	Query    string   `form:"q" json:"q"`
	GeoError int      `form:"geo_error" json:"geo_error"`
}

// SearchRequest is a free-text geocoding lookup.
type SearchRequest struct {
	Query string `form:"q" json:"q" binding:"required"`
}

// FavoriteRequest adds a location to the favorites set.
type FavoriteRequest struct {
	Name    string  `json:"name" binding:"required"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat" validate:"latitude"`
	Lon     float64 `json:"lon" validate:"longitude"`
}

// UnitsRequest switches the display unit system.
type UnitsRequest struct {
	Units string `json:"units" binding:"required,oneof=metric imperial"`
}

// SettingsResponse is the current session preferences.
type SettingsResponse struct {
	Units string `json:"units"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp,omitempty"`
}
