package location

import (
	"math"

	"github.com/golang/geo/s2"
)

// CellLevel is the S2 level used for city cell tokens. Cells of this
// level are roughly 10km across.
const CellLevel = 10

// CellToken returns the S2 cell token that contains the point, or an
// empty string for coordinates outside of the valid range.
func CellToken(lat, lng float64) string {
	if math.IsNaN(lat) || math.IsNaN(lng) ||
		math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return ""
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ""
	}
	ll := s2.LatLngFromDegrees(lat, lng)
	return s2.CellIDFromLatLng(ll).Parent(CellLevel).ToToken()
}
