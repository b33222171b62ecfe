package openweather

// Response payloads for the OpenWeatherMap endpoints this service consumes.
// Only the fields the normalization pipeline reads are decoded.

// ConditionInfo is the per-sample weather condition block shared by the
// current-conditions and forecast payloads.
type ConditionInfo struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

// AlertInfo is a weather alert attached to the current-conditions payload.
type AlertInfo struct {
	Event       string `json:"event"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// CurrentResponse is the /data/2.5/weather payload.
type CurrentResponse struct {
	Weather []ConditionInfo `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	// Visibility is in meters and may be absent from the payload.
	Visibility *int  `json:"visibility"`
	Dt         int64 `json:"dt"`
	// Timezone is the shift from UTC in seconds.
	Timezone int `json:"timezone"`
	Sys      struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Alerts []AlertInfo `json:"alerts"`
}

// ForecastEntry is one 3-hour sample of the /data/2.5/forecast list.
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []ConditionInfo `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	// Pop is the probability of precipitation on a 0-1 scale.
	Pop float64 `json:"pop"`
}

// ForecastResponse is the /data/2.5/forecast payload: 3-hour samples covering
// five days.
type ForecastResponse struct {
	List []ForecastEntry `json:"list"`
	City struct {
		Timezone int `json:"timezone"`
	} `json:"city"`
}

// AirPollutionSample is one entry of the /data/2.5/air_pollution list.
type AirPollutionSample struct {
	Main struct {
		// AQI is on the upstream 1-5 scale.
		AQI int `json:"aqi"`
	} `json:"main"`
	Components struct {
		CO   float64 `json:"co"`
		NO2  float64 `json:"no2"`
		O3   float64 `json:"o3"`
		PM25 float64 `json:"pm2_5"`
		PM10 float64 `json:"pm10"`
	} `json:"components"`
}

// AirPollutionResponse is the /data/2.5/air_pollution payload.
type AirPollutionResponse struct {
	List []AirPollutionSample `json:"list"`
}

// GeoCandidate is one match of the /geo/1.0/direct geocoding endpoint.
type GeoCandidate struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
