package location

import (
	"fmt"
	"time"
)

// Geolocation acquisition happens in the browser; the client relays a failure
// cause so the server can surface a consistent message. The numeric codes
// match the browser Geolocation API error codes.

type GeolocationCause int

const (
	PermissionDenied GeolocationCause = iota + 1
	PositionUnavailable
	GeolocationTimeout
)

const (
	// GeolocationAcquireTimeout is the recommended client-side timeout for
	// acquiring a position.
	GeolocationAcquireTimeout = 10 * time.Second

	// GeolocationMaxAge is how stale a cached position may be and still be
	// accepted.
	GeolocationMaxAge = 5 * time.Minute
)

// GeolocationError describes why device geolocation failed. The three causes
// are kept distinct in the surfaced message.
type GeolocationError struct {
	Cause GeolocationCause
}

func (e *GeolocationError) Error() string {
	const prefix = "unable to retrieve your location: "
	switch e.Cause {
	case PermissionDenied:
		return prefix + "please allow location access and try again"
	case PositionUnavailable:
		return prefix + "location information is unavailable"
	case GeolocationTimeout:
		return prefix + "location request timed out"
	default:
		return prefix + "an unknown error occurred"
	}
}

// GeolocationFailure maps a browser geolocation error code to a
// GeolocationError. Unknown codes yield an error with an unknown cause.
func GeolocationFailure(code int) error {
	switch code {
	case 1, 2, 3:
		return &GeolocationError{Cause: GeolocationCause(code)}
	default:
		return fmt.Errorf("geolocation failed with unrecognized code %d: %w",
			code, &GeolocationError{})
	}
}
