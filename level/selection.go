package level

import "github.com/milk9111/leveledit/geom"

// SelectionBounds is a normalized rectangle of tiles on one layer. Width and
// height are always >= 1 and the rectangle lies inside the scene.
type SelectionBounds struct {
	StartX int    `json:"start_x"`
	StartY int    `json:"start_y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Layer  string `json:"layer"`
}

// Contains reports whether the tile coordinate lies inside the rectangle.
func (b SelectionBounds) Contains(x, y int) bool {
	return x >= b.StartX && x < b.StartX+b.Width && y >= b.StartY && y < b.StartY+b.Height
}

// NormalizeBounds builds a SelectionBounds from two drag corners, in any
// order, clamped into the scene. A zero-area drag becomes a 1x1 rectangle
// at the tap point.
func NormalizeBounds(s *Scene, layer string, x0, y0, x1, y1 int) SelectionBounds {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	x0 = geom.Clamp(x0, 0, s.Width-1)
	y0 = geom.Clamp(y0, 0, s.Height-1)
	x1 = geom.Clamp(x1, 0, s.Width-1)
	y1 = geom.Clamp(y1, 0, s.Height-1)
	return SelectionBounds{
		StartX: x0,
		StartY: y0,
		Width:  x1 - x0 + 1,
		Height: y1 - y0 + 1,
		Layer:  layer,
	}
}

// ClampBounds shifts the rectangle as needed so it lies fully inside the
// scene, preserving its size (the size is assumed to fit).
func ClampBounds(s *Scene, b SelectionBounds) SelectionBounds {
	b.StartX = geom.Clamp(b.StartX, 0, s.Width-b.Width)
	b.StartY = geom.Clamp(b.StartY, 0, s.Height-b.Height)
	return b
}

// SelectionData is a SelectionBounds plus a deep-copied snapshot of the tile
// values it covers. It is the clipboard payload and the source of truth when
// a moved selection restores its origin cells.
type SelectionData struct {
	Bounds SelectionBounds `json:"bounds"`
	Tiles  [][]int         `json:"tiles"`
}

// CaptureSelection snapshots the tile values under the bounds. Cells outside
// the scene read as 0.
func CaptureSelection(s *Scene, b SelectionBounds) *SelectionData {
	tiles := make([][]int, b.Height)
	for y := 0; y < b.Height; y++ {
		tiles[y] = make([]int, b.Width)
		for x := 0; x < b.Width; x++ {
			v, _ := s.Tile(b.Layer, b.StartX+x, b.StartY+y)
			tiles[y][x] = v
		}
	}
	return &SelectionData{Bounds: b, Tiles: tiles}
}

// Clone deep-copies the selection so later mutation of either copy cannot
// leak into the other.
func (d *SelectionData) Clone() *SelectionData {
	tiles := make([][]int, len(d.Tiles))
	for y, row := range d.Tiles {
		tiles[y] = make([]int, len(row))
		copy(tiles[y], row)
	}
	return &SelectionData{Bounds: d.Bounds, Tiles: tiles}
}

// TileChange is the atomic unit of reversible tile mutation.
type TileChange struct {
	Layer    string
	X, Y     int
	OldValue int
	NewValue int
}

// ApplyChanges writes either the new or the old side of every change back
// into the scene. It is the shared execute/undo body for tile operations.
func ApplyChanges(s *Scene, changes []TileChange, undo bool) {
	for _, ch := range changes {
		v := ch.NewValue
		if undo {
			v = ch.OldValue
		}
		s.SetTile(ch.Layer, ch.X, ch.Y, v)
	}
}
