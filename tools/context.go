package tools

import (
	"github.com/milk9111/leveledit/entity"
	"github.com/milk9111/leveledit/geom"
	"github.com/milk9111/leveledit/history"
	"github.com/milk9111/leveledit/level"
)

// Context carries everything a tool touches: the scene, the shared editor
// state, the history and entity managers, and the scene-changed callback.
// It is injected once at construction so tools stay free of hidden capture.
type Context struct {
	Scene    *level.Scene
	State    *EditorState
	History  *history.Manager
	Entities *entity.Manager

	// OnSceneChanged fires after every successful mutation so a renderer
	// can redraw. May be nil in tests.
	OnSceneChanged func(*level.Scene)

	// Warnf reports absorbed failures (missing tileset mapping, fill limit).
	// May be nil.
	Warnf func(format string, args ...interface{})

	// TouchOffsetY shifts pointer input upward before tile mapping so touch
	// painting is not occluded by the finger. Zero for mouse input.
	TouchOffsetY float64
}

func (c *Context) sceneChanged() {
	if c.OnSceneChanged != nil {
		c.OnSceneChanged(c.Scene)
	}
}

func (c *Context) warnf(format string, args ...interface{}) {
	if c.Warnf != nil {
		c.Warnf(format, args...)
	}
}

// paintValue computes the tile value a paint or fill would write on the
// active layer. Binary layers always write 1. Content layers require a
// palette pick that resolves through the scene's tileset table; a missing
// mapping means there is nothing to paint and the gesture is a no-op.
func (c *Context) paintValue() (int, bool) {
	layer := c.State.ActiveLayer
	if level.IsBinaryLayer(layer) {
		return 1, true
	}
	sel := c.State.SelectedTile
	if sel == nil {
		return 0, false
	}
	gid, ok := c.Scene.GIDForTile(sel.Category, sel.Index)
	if !ok {
		c.warnf("tools: no tileset mapping for %s[%d], skipping paint", sel.Category, sel.Index)
		return 0, false
	}
	return gid, true
}

// tileAt maps a screen position through the viewport transform, applying
// the touch offset.
func (c *Context) tileAt(sx, sy float64, vp Transform) geom.Point {
	return vp.ScreenToTileWithOffset(sx, sy, c.Scene.TileSize, c.TouchOffsetY)
}
