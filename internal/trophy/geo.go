package trophy

import (
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000.0

// haversineMeters returns the great-circle distance between two
// coordinates in meters.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// metersPerDegreeLat is effectively constant; longitude degrees shrink
// with latitude, handled in gridCellKey.
const metersPerDegreeLat = 111320.0

// gridCellKey buckets a coordinate into a square grid cell of the given
// size. Cells are identified by their integer (row, col) after projecting
// degrees to meters, which is accurate enough for area deduplication.
func gridCellKey(lat, lng float64, cellSizeMeters int) string {
	latMeters := lat * metersPerDegreeLat
	lngMeters := lng * metersPerDegreeLat * math.Cos(lat*math.Pi/180)

	row := int(math.Floor(latMeters / float64(cellSizeMeters)))
	col := int(math.Floor(lngMeters / float64(cellSizeMeters)))

	return fmt.Sprintf("%d:%d", row, col)
}
