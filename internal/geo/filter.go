// Package geo evaluates great-circle distances between stored addresses and a
// query center.
//
// Distances use h3.GreatCircleDistanceM: the haversine formula on the
// spherical Earth model of the H3 library (mean radius 6371.007180918475 km).
// Values can differ from an ellipsoidal geodesic by up to about 0.5%, which
// matters only for points sitting right on a query radius.
package geo

import (
	"address-api/internal/models"

	"github.com/uber/h3-go/v4"
)

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b models.Coordinate) float64 {
	return h3.GreatCircleDistanceM(
		h3.NewLatLng(a.Latitude, a.Longitude),
		h3.NewLatLng(b.Latitude, b.Longitude),
	)
}

// Filter returns the candidates whose distance from center is at most
// radiusMeters, in their original order. A candidate exactly on the radius is
// kept. The result is never nil.
func Filter(center models.Coordinate, radiusMeters float64, candidates []models.Address) []models.Address {
	origin := h3.NewLatLng(center.Latitude, center.Longitude)

	matched := make([]models.Address, 0, len(candidates))
	for _, c := range candidates {
		d := h3.GreatCircleDistanceM(origin, h3.NewLatLng(c.Latitude, c.Longitude))
		if d <= radiusMeters {
			matched = append(matched, c)
		}
	}
	return matched
}
