// Package viewport provides the pan/zoom transform between screen, world
// and tile coordinates. It is pure value math; the front-end owns when pan
// and zoom happen.
package viewport

import (
	"math"

	"github.com/milk9111/leveledit/geom"
)

const (
	MinZoom = 0.25
	MaxZoom = 8.0
)

// Viewport is a screen->world transform: world = (screen - offset) / zoom.
type Viewport struct {
	OffsetX float64
	OffsetY float64
	Zoom    float64
}

func New() Viewport {
	return Viewport{Zoom: 1.0}
}

func (v Viewport) zoom() float64 {
	if v.Zoom == 0 {
		return 1.0
	}
	return v.Zoom
}

// ScreenToWorld maps a screen pixel to world coordinates.
func (v Viewport) ScreenToWorld(sx, sy float64) (float64, float64) {
	z := v.zoom()
	return (sx - v.OffsetX) / z, (sy - v.OffsetY) / z
}

// WorldToScreen maps a world coordinate to screen pixels.
func (v Viewport) WorldToScreen(wx, wy float64) (float64, float64) {
	z := v.zoom()
	return wx*z + v.OffsetX, wy*z + v.OffsetY
}

// ScreenToTile maps a screen pixel to the tile-grid cell under it. Cells
// left or above the origin come back negative, so callers can bounds-check.
func (v Viewport) ScreenToTile(sx, sy float64, tileSize int) geom.Point {
	wx, wy := v.ScreenToWorld(sx, sy)
	return geom.Point{
		X: int(math.Floor(wx / float64(tileSize))),
		Y: int(math.Floor(wy / float64(tileSize))),
	}
}

// ScreenToTileWithOffset shifts the input up by offsetY before mapping, so
// touch painting lands above the contact point instead of under the finger.
func (v Viewport) ScreenToTileWithOffset(sx, sy float64, tileSize int, offsetY float64) geom.Point {
	return v.ScreenToTile(sx, sy-offsetY, tileSize)
}

// Pan shifts the view by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomAt scales the zoom by factor, clamped to [MinZoom, MaxZoom], keeping
// the world point under the screen position (sx,sy) fixed.
func (v *Viewport) ZoomAt(sx, sy, factor float64) {
	oldZoom := v.zoom()
	newZoom := oldZoom * factor
	if newZoom < MinZoom {
		newZoom = MinZoom
	}
	if newZoom > MaxZoom {
		newZoom = MaxZoom
	}
	if newZoom == oldZoom {
		return
	}
	wx := (sx - v.OffsetX) / oldZoom
	wy := (sy - v.OffsetY) / oldZoom
	v.Zoom = newZoom
	v.OffsetX = sx - wx*newZoom
	v.OffsetY = sy - wy*newZoom
}
