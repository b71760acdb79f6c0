package tools

import (
	"github.com/milk9111/leveledit/geom"
	"github.com/milk9111/leveledit/level"
)

// DefaultMaxFillTiles bounds a single flood fill so a stray tap on a huge
// empty region cannot stall the editor.
const DefaultMaxFillTiles = 10000

// FillRequest describes one bounded flood fill on a single layer.
type FillRequest struct {
	Scene     *level.Scene
	Layer     string
	StartX    int
	StartY    int
	FillValue int
	MaxTiles  int
}

// FillResult reports the cells the fill wrote. LimitReached means the fill
// stopped at MaxTiles with matching cells still unvisited, so callers can
// warn about a runaway fill.
type FillResult struct {
	Changed      []geom.Point
	Count        int
	LimitReached bool
}

// FloodFill reads the seed cell's value as the target and expands breadth-
// first to 4-connected neighbors still holding that value, writing
// FillValue into each. An out-of-bounds seed or a seed already equal to
// FillValue is a no-op. Never writes more than MaxTiles cells and never
// visits a cell twice.
func FloodFill(req FillRequest) FillResult {
	var res FillResult
	s := req.Scene
	target, ok := s.Tile(req.Layer, req.StartX, req.StartY)
	if !ok || target == req.FillValue {
		return res
	}
	maxTiles := req.MaxTiles
	if maxTiles <= 0 {
		maxTiles = DefaultMaxFillTiles
	}
	queue := []geom.Point{{X: req.StartX, Y: req.StartY}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		v, ok := s.Tile(req.Layer, p.X, p.Y)
		if !ok || v != target {
			continue
		}
		if res.Count >= maxTiles {
			res.LimitReached = true
			break
		}
		s.SetTile(req.Layer, p.X, p.Y, req.FillValue)
		res.Changed = append(res.Changed, p)
		res.Count++
		queue = append(queue,
			geom.Point{X: p.X + 1, Y: p.Y},
			geom.Point{X: p.X - 1, Y: p.Y},
			geom.Point{X: p.X, Y: p.Y + 1},
			geom.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return res
}

// FillTool runs one flood fill per tap on the active layer, committed as a
// single undo step.
type FillTool struct {
	ctx *Context
}

func NewFillTool(ctx *Context) *FillTool {
	return &FillTool{ctx: ctx}
}

func (t *FillTool) Start(sx, sy float64, vp Transform) {
	p := t.ctx.tileAt(sx, sy, vp)
	fillAt(t.ctx, p)
}

func (t *FillTool) Move(sx, sy float64, vp Transform) {}
func (t *FillTool) End(sx, sy float64, vp Transform)  {}
func (t *FillTool) Cancel()                           {}

// fillAt performs a bounded flood fill at the tile and records one undo
// operation. Shared with the select tool's armed one-shot fill.
func fillAt(ctx *Context, p geom.Point) {
	layer := ctx.State.ActiveLayer
	if ctx.State.LayerLocked(layer) {
		return
	}
	v, ok := ctx.paintValue()
	if !ok {
		return
	}
	target, ok := ctx.Scene.Tile(layer, p.X, p.Y)
	if !ok || target == v {
		return
	}
	res := FloodFill(FillRequest{
		Scene:     ctx.Scene,
		Layer:     layer,
		StartX:    p.X,
		StartY:    p.Y,
		FillValue: v,
		MaxTiles:  DefaultMaxFillTiles,
	})
	if res.LimitReached {
		ctx.warnf("tools: flood fill stopped at %d tiles", res.Count)
	}
	if res.Count == 0 {
		return
	}
	changes := make([]level.TileChange, 0, len(res.Changed))
	for _, cell := range res.Changed {
		changes = append(changes, level.TileChange{
			Layer: layer, X: cell.X, Y: cell.Y, OldValue: target, NewValue: v,
		})
	}
	ctx.sceneChanged()
	pushTileOp(ctx, "fill", "Flood fill", changes)
}
