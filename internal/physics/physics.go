// Package physics provides distance, heading and broad-phase utilities
// for an unbounded 2D world with y pointing down.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Within reports whether a point lies strictly closer than radius to a target position.
func Within(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) < radius*radius
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Heading returns the unit vector a ship with the given rotation faces.
// Rotation 0 points up the screen (negative y), 90 points right.
func Heading(rotationDeg float64) (x, y float64) {
	rad := Radians(rotationDeg)
	return math.Sin(rad), -math.Cos(rad)
}

// Direction normalizes (dx, dy) and returns its length.
// A zero vector yields a zero direction instead of NaN.
func Direction(dx, dy float64) (ux, uy, length float64) {
	length = math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return 0, 0, 0
	}
	return dx / length, dy / length, length
}

// Bearing returns the rotation in degrees that faces along (dx, dy),
// in the same convention as Heading.
func Bearing(dx, dy float64) float64 {
	return math.Atan2(dy, dx)*180/math.Pi + 90
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
