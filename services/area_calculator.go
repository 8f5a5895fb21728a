package services

import (
	"math"
	"strconv"

	"paint-estimator/models"
)

// ComputeMetrics derives the paintable areas of a room. Inputs are assumed
// already validated; the function has no error cases.
func ComputeMetrics(length, width, height float64, doors, windows, coats int) models.RoomMetrics {
	wall := 2 * (length + width) * height
	ceiling := length * width
	openings := float64(doors)*models.DoorArea + float64(windows)*models.WindowArea

	// openings only reduce the walls, never the ceiling
	paintable := Round2(math.Max(wall-openings, 0) + ceiling)

	return models.RoomMetrics{
		WallArea:      Round2(wall),
		CeilingArea:   Round2(ceiling),
		OpeningArea:   Round2(openings),
		PaintableArea: paintable,
		// scaled from the rounded figure so the stored total is exactly paintable × coats
		TotalAreaWithCoats: Round2(paintable * float64(coats)),
	}
}

// Round2 rounds the exact binary value to 2 decimals, ties to even
// (0.125 -> 0.12, 0.375 -> 0.38).
func Round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
