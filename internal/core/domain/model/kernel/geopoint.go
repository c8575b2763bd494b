package kernel

import (
	"errors"
	"fmt"

	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// ErrGeoPointIsNotConstructed is returned when validating a zero-value GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is an optional WGS84 coordinate attached to a stop. The engine
// never reads it; it only travels with the stop to the operator.
type GeoPoint struct {
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates latitude in [-90, 90] and longitude in [-180, 180].
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Lat() float64 {
	return p.lat
}

func (p GeoPoint) Lng() float64 {
	return p.lng
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.lat, p.lng)
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < minLatitude || lat > maxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, minLatitude, maxLatitude)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < minLongitude || lng > maxLongitude {
		return errs.NewValueIsOutOfRangeError("lng", lng, minLongitude, maxLongitude)
	}
	p.lng = lng
	return nil
}
