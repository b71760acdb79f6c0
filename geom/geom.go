// Package geom provides the integer grid math shared by every editing tool:
// line interpolation for drag painting, brush footprints, and small helpers.
package geom

// Point is a tile-grid coordinate.
type Point struct {
	X int
	Y int
}

// InterpolateLine walks the Bresenham line from (x0,y0) to (x1,y1) and
// returns every cell on the path, inclusive of both endpoints. A degenerate
// line yields the single start point. Consecutive points are never
// duplicated. Swapping the endpoints yields the same cells in reverse
// order; the walk always runs from the lexicographically smaller endpoint
// so the error tie-breaks pick the same diagonal in both directions.
func InterpolateLine(x0, y0, x1, y1 int) []Point {
	if x1 < x0 || (x1 == x0 && y1 < y0) {
		points := InterpolateLine(x1, y1, x0, y0)
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
		return points
	}
	var points []Point
	dx := Abs(x1 - x0)
	dy := -Abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	for {
		points = append(points, Point{X: x0, Y: y0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return points
}

// BrushFootprint returns the cells covered by one logical paint point.
// Size 1 is the center cell alone. Size 2 is a 2x2 block anchored at the
// center with no negative offset ({cx..cx+1} x {cy..cy+1}). Size 3 is a
// 3x3 block centered on the cell. The 2x2 anchoring is intentional;
// erase painting depends on it.
func BrushFootprint(cx, cy, size int) []Point {
	switch {
	case size <= 1:
		return []Point{{X: cx, Y: cy}}
	case size == 2:
		return []Point{
			{X: cx, Y: cy}, {X: cx + 1, Y: cy},
			{X: cx, Y: cy + 1}, {X: cx + 1, Y: cy + 1},
		}
	default:
		points := make([]Point, 0, 9)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				points = append(points, Point{X: cx + dx, Y: cy + dy})
			}
		}
		return points
	}
}

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
