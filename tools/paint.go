package tools

import "github.com/milk9111/leveledit/geom"

// PaintTool writes the palette pick (or 1 on binary layers) under the
// pointer, interpolating a Bresenham line between drag samples so fast
// drags leave no gaps. One gesture commits as one undo step.
type PaintTool struct {
	ctx      *Context
	painting bool
	value    int
	lastTile *geom.Point
	stroke   *stroke
}

func NewPaintTool(ctx *Context) *PaintTool {
	return &PaintTool{ctx: ctx}
}

func (t *PaintTool) Start(sx, sy float64, vp Transform) {
	ctx := t.ctx
	layer := ctx.State.ActiveLayer
	if ctx.State.LayerLocked(layer) {
		return
	}
	v, ok := ctx.paintValue()
	if !ok {
		return
	}
	ctx.History.BeginGroup("Paint")
	t.painting = true
	t.value = v
	t.stroke = newStroke(layer)
	p := ctx.tileAt(sx, sy, vp)
	if t.stroke.applyBrush(ctx, p, v, ctx.State.BrushSize) {
		ctx.sceneChanged()
	}
	t.lastTile = &p
}

func (t *PaintTool) Move(sx, sy float64, vp Transform) {
	if !t.painting {
		return
	}
	ctx := t.ctx
	p := ctx.tileAt(sx, sy, vp)
	changed := false
	if t.lastTile != nil {
		for _, cell := range geom.InterpolateLine(t.lastTile.X, t.lastTile.Y, p.X, p.Y) {
			if t.stroke.applyBrush(ctx, cell, t.value, ctx.State.BrushSize) {
				changed = true
			}
		}
	} else if t.stroke.applyBrush(ctx, p, t.value, ctx.State.BrushSize) {
		changed = true
	}
	if changed {
		ctx.sceneChanged()
	}
	t.lastTile = &p
}

func (t *PaintTool) End(sx, sy float64, vp Transform) {
	if !t.painting {
		return
	}
	t.stroke.commit(t.ctx, "paint", "Paint tiles")
	t.ctx.History.EndGroup()
	t.reset()
}

// Cancel rolls back every cell the gesture touched and commits nothing.
func (t *PaintTool) Cancel() {
	if !t.painting {
		return
	}
	t.stroke.revert(t.ctx)
	t.ctx.History.EndGroup()
	t.reset()
}

func (t *PaintTool) reset() {
	t.painting = false
	t.lastTile = nil
	t.stroke = nil
}
