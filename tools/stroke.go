package tools

import (
	"github.com/milk9111/leveledit/geom"
	"github.com/milk9111/leveledit/history"
	"github.com/milk9111/leveledit/level"
)

// stroke coalesces the cell writes of one drag gesture into a single diff.
// The first observed old value per cell wins, so undo restores the
// pre-gesture grid no matter how often the drag revisits a cell.
type stroke struct {
	layer   string
	changes []level.TileChange
	seen    map[geom.Point]int // cell -> index into changes
}

func newStroke(layer string) *stroke {
	return &stroke{layer: layer, seen: make(map[geom.Point]int)}
}

// apply writes v at the cell, bounds-clipped and idempotent: cells already
// holding v are skipped and do not enter the diff.
func (st *stroke) apply(ctx *Context, p geom.Point, v int) bool {
	old, ok := ctx.Scene.Tile(st.layer, p.X, p.Y)
	if !ok {
		return false
	}
	if idx, dup := st.seen[p]; dup {
		if old == v {
			return false
		}
		ctx.Scene.SetTile(st.layer, p.X, p.Y, v)
		st.changes[idx].NewValue = v
		return true
	}
	if old == v {
		return false
	}
	ctx.Scene.SetTile(st.layer, p.X, p.Y, v)
	st.seen[p] = len(st.changes)
	st.changes = append(st.changes, level.TileChange{
		Layer: st.layer, X: p.X, Y: p.Y, OldValue: old, NewValue: v,
	})
	return true
}

// applyBrush stamps the brush footprint centered (or anchored, for size 2)
// at the cell. Returns true when any cell changed.
func (st *stroke) applyBrush(ctx *Context, p geom.Point, v, size int) bool {
	changed := false
	for _, cell := range geom.BrushFootprint(p.X, p.Y, size) {
		if st.apply(ctx, cell, v) {
			changed = true
		}
	}
	return changed
}

// commit pushes the collected diff as one reversible operation. Empty
// strokes push nothing.
func (st *stroke) commit(ctx *Context, opType, desc string) {
	pushTileOp(ctx, opType, desc, st.changes)
}

// pushTileOp records an already-applied tile diff on the history stack.
func pushTileOp(ctx *Context, opType, desc string, changes []level.TileChange) {
	if len(changes) == 0 {
		return
	}
	scene := ctx.Scene
	ctx.History.Push(&history.Operation{
		Type:        opType,
		Description: desc,
		Execute: func() {
			level.ApplyChanges(scene, changes, false)
			ctx.sceneChanged()
		},
		Undo: func() {
			level.ApplyChanges(scene, changes, true)
			ctx.sceneChanged()
		},
	})
}

// revert rolls the scene back to the pre-gesture values, for Cancel.
func (st *stroke) revert(ctx *Context) {
	if len(st.changes) == 0 {
		return
	}
	level.ApplyChanges(ctx.Scene, st.changes, true)
	ctx.sceneChanged()
}
