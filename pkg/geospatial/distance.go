package geospatial

import (
	"math"
)

const earthRadiusKm = 6371.0

// Empirical distance of a single stop-to-stop hop, used when a route has no
// usable path geometry.
const fallbackSegmentKm = 0.8

// Matatus crawling in traffic still move at walking-ish pace at worst
const minimumSpeedKmh = 8.0

func HaversineKm(lat1 float64, lon1 float64, lat2 float64, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// PathPoints decodes a flat longitude,latitude sequence into coordinate
// pairs, skipping pairs that fail to parse as real numbers.
func PathPoints(path []float64) [][2]float64 {
	var points [][2]float64

	for i := 0; i+1 < len(path); i += 2 {
		lon := path[i]
		lat := path[i+1]

		if math.IsNaN(lon) || math.IsNaN(lat) {
			continue
		}

		points = append(points, [2]float64{lon, lat})
	}

	return points
}

// RouteDistanceKm sums the great-circle distance over the route path. Routes
// with fewer than 2 usable points fall back to an estimate from the stop
// count.
func RouteDistanceKm(path []float64, stopCount int) float64 {
	points := PathPoints(path)

	if len(points) < 2 {
		segments := stopCount - 1
		if segments < 1 {
			segments = 1
		}

		return float64(segments) * fallbackSegmentKm
	}

	distance := 0.0
	for i := 1; i < len(points); i++ {
		distance += HaversineKm(points[i-1][1], points[i-1][0], points[i][1], points[i][0])
	}

	return distance
}

// SegmentDistanceKm measures the distance along the path between two
// fractional positions of the point sequence.
func SegmentDistanceKm(path []float64, fromFraction float64, toFraction float64) float64 {
	points := PathPoints(path)
	if len(points) < 2 {
		return 0
	}

	fromFraction = clampFraction(fromFraction)
	toFraction = clampFraction(toFraction)
	if fromFraction > toFraction {
		fromFraction, toFraction = toFraction, fromFraction
	}

	fromIndex := int(fromFraction * float64(len(points)-1))
	toIndex := int(toFraction * float64(len(points)-1))

	current := pointAt(points, fromFraction)

	distance := 0.0
	for i := fromIndex + 1; i <= toIndex; i++ {
		distance += HaversineKm(current[1], current[0], points[i][1], points[i][0])
		current = points[i]
	}

	end := pointAt(points, toFraction)
	distance += HaversineKm(current[1], current[0], end[1], end[0])

	return distance
}

func TravelTimeMinutes(distanceKm float64, effectiveSpeedKmh float64) int {
	if effectiveSpeedKmh < minimumSpeedKmh {
		effectiveSpeedKmh = minimumSpeedKmh
	}

	return int(math.Round(distanceKm / effectiveSpeedKmh * 60))
}

func pointAt(points [][2]float64, fraction float64) [2]float64 {
	scaled := fraction * float64(len(points)-1)
	index := int(scaled)

	if index >= len(points)-1 {
		return points[len(points)-1]
	}

	t := scaled - float64(index)
	a := points[index]
	b := points[index+1]

	return [2]float64{
		a[0] + t*(b[0]-a[0]),
		a[1] + t*(b[1]-a[1]),
	}
}

func clampFraction(fraction float64) float64 {
	if math.IsNaN(fraction) || fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}

	return fraction
}
