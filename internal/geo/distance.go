// Package geo содержит расчёт расстояний между точками на поверхности Земли.
package geo

import "math"

// EarthRadiusKm - средний радиус Земли в километрах.
const EarthRadiusKm = 6371.0

// DistanceKm возвращает расстояние по большой окружности (формула гаверсинуса).
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := lat2Rad - lat1Rad
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Within проверяет, что расстояние не превышает радиус (граница включительно).
func Within(distanceKm, radiusKm float64) bool {
	return distanceKm <= radiusKm
}

// Round2 округляет расстояние до двух знаков после запятой.
func Round2(distanceKm float64) float64 {
	return math.Round(distanceKm*100) / 100
}
