package tools

import "github.com/milk9111/leveledit/geom"

// EraseTool mirrors PaintTool but always writes 0 and respects the brush
// footprint. Every cell a gesture touches batches into a single undo step.
type EraseTool struct {
	ctx      *Context
	erasing  bool
	lastTile *geom.Point
	stroke   *stroke
}

func NewEraseTool(ctx *Context) *EraseTool {
	return &EraseTool{ctx: ctx}
}

func (t *EraseTool) Start(sx, sy float64, vp Transform) {
	ctx := t.ctx
	layer := ctx.State.ActiveLayer
	if ctx.State.LayerLocked(layer) {
		return
	}
	ctx.History.BeginGroup("Erase")
	t.erasing = true
	t.stroke = newStroke(layer)
	p := ctx.tileAt(sx, sy, vp)
	if t.stroke.applyBrush(ctx, p, 0, ctx.State.BrushSize) {
		ctx.sceneChanged()
	}
	t.lastTile = &p
}

func (t *EraseTool) Move(sx, sy float64, vp Transform) {
	if !t.erasing {
		return
	}
	ctx := t.ctx
	p := ctx.tileAt(sx, sy, vp)
	changed := false
	if t.lastTile != nil {
		for _, cell := range geom.InterpolateLine(t.lastTile.X, t.lastTile.Y, p.X, p.Y) {
			if t.stroke.applyBrush(ctx, cell, 0, ctx.State.BrushSize) {
				changed = true
			}
		}
	} else if t.stroke.applyBrush(ctx, p, 0, ctx.State.BrushSize) {
		changed = true
	}
	if changed {
		ctx.sceneChanged()
	}
	t.lastTile = &p
}

func (t *EraseTool) End(sx, sy float64, vp Transform) {
	if !t.erasing {
		return
	}
	t.stroke.commit(t.ctx, "erase", "Erase tiles")
	t.ctx.History.EndGroup()
	t.reset()
}

func (t *EraseTool) Cancel() {
	if !t.erasing {
		return
	}
	t.stroke.revert(t.ctx)
	t.ctx.History.EndGroup()
	t.reset()
}

func (t *EraseTool) reset() {
	t.erasing = false
	t.lastTile = nil
	t.stroke = nil
}
