package tools

import (
	"math"

	"github.com/milk9111/leveledit/entity"
	"github.com/milk9111/leveledit/history"
)

// hitTolerance widens the entity hit radius a little beyond half a tile so
// slightly-off taps still land.
const hitTolerance = 4.0

type worldPos struct {
	x float64
	y float64
}

// entityController handles entity hit-testing, drag-to-move, long-press
// multi-select, duplicate and delete for the select tool. Intermediate drag
// frames move entities through the manager directly; only the gesture's net
// displacement is recorded as one undo operation on release.
type entityController struct {
	ctx      *Context
	selected []int

	// a pointer-down on an unselected entity is held pending until the
	// gesture declares itself: long-press adds to the selection, movement
	// or release replaces it
	pending  bool
	pressID  int
	pressPos worldPos

	dragging  bool
	dragStart worldPos
	dragMoved bool
	startPos  map[int]worldPos
}

func newEntityController(ctx *Context) *entityController {
	return &entityController{ctx: ctx}
}

func (e *entityController) selectedIDs() []int {
	out := make([]int, len(e.selected))
	copy(out, e.selected)
	return out
}

func (e *entityController) isSelected(id int) bool {
	for _, s := range e.selected {
		if s == id {
			return true
		}
	}
	return false
}

// hitTest finds the entity whose center lies within half the tile size plus
// a small tolerance of the pointer, ties broken by Euclidean distance.
func (e *entityController) hitTest(wx, wy float64) (int, bool) {
	radius := float64(e.ctx.Scene.TileSize)/2 + hitTolerance
	best := -1
	bestDist := math.Inf(1)
	for _, inst := range e.ctx.Entities.All() {
		dx := inst.X - wx
		dy := inst.Y - wy
		dist := math.Hypot(dx, dy)
		if dist <= radius && dist < bestDist {
			best = inst.ID
			bestDist = dist
		}
	}
	return best, best >= 0
}

// start claims the gesture when the pointer hits an entity. A hit on an
// already-selected entity begins a drag of the whole selection. A hit on
// an unselected entity stays pending: movement or release replaces the
// selection with that entity, a long-press adds it instead. A miss clears
// the entity selection and leaves the gesture to the tile machine.
func (e *entityController) start(wx, wy float64) bool {
	id, ok := e.hitTest(wx, wy)
	if !ok {
		e.selected = nil
		return false
	}
	e.pressID = id
	e.pressPos = worldPos{x: wx, y: wy}
	if e.isSelected(id) {
		e.beginDrag(wx, wy)
	} else {
		e.pending = true
	}
	return true
}

// longPress resolves a pending press as multi-select: the pressed entity
// joins the selection and the whole group becomes draggable.
func (e *entityController) longPress(wx, wy float64) {
	if !e.pending {
		return
	}
	e.pending = false
	e.selected = append(e.selected, e.pressID)
	e.beginDrag(e.pressPos.x, e.pressPos.y)
}

// resolvePending replaces the selection with the pressed entity once the
// gesture turns out to be a plain click or drag.
func (e *entityController) resolvePending() {
	if !e.pending {
		return
	}
	e.pending = false
	e.selected = []int{e.pressID}
	e.beginDrag(e.pressPos.x, e.pressPos.y)
}

func (e *entityController) beginDrag(wx, wy float64) {
	e.dragging = true
	e.dragMoved = false
	e.dragStart = worldPos{x: wx, y: wy}
	e.startPos = make(map[int]worldPos, len(e.selected))
	for _, inst := range e.ctx.Entities.Entities(e.selected) {
		e.startPos[inst.ID] = worldPos{x: inst.X, y: inst.Y}
	}
}

// move applies the pointer delta to every selected entity's start position,
// optionally snapped to the tile grid, clamped into the scene. These
// intermediate moves are not undo-tracked.
func (e *entityController) move(wx, wy float64) {
	e.resolvePending()
	if !e.dragging {
		return
	}
	dx := wx - e.dragStart.x
	dy := wy - e.dragStart.y
	if dx != 0 || dy != 0 {
		e.dragMoved = true
	}
	moves := make([]entity.Move, 0, len(e.startPos))
	for id, start := range e.startPos {
		nx, ny := e.placeAt(start.x+dx, start.y+dy)
		moves = append(moves, entity.Move{ID: id, X: nx, Y: ny})
	}
	e.ctx.Entities.MoveMany(moves)
	e.ctx.sceneChanged()
}

// placeAt snaps a position to the tile grid when enabled and clamps it so
// the entity's tile stays inside the scene.
func (e *entityController) placeAt(x, y float64) (float64, float64) {
	s := e.ctx.Scene
	ts := float64(s.TileSize)
	if e.ctx.State.EntitySnapToGrid {
		x = math.Round(x/ts) * ts
		y = math.Round(y/ts) * ts
	}
	maxX := float64(s.PixelWidth()) - ts
	maxY := float64(s.PixelHeight()) - ts
	x = math.Max(0, math.Min(x, maxX))
	y = math.Max(0, math.Min(y, maxY))
	return x, y
}

// end commits the gesture's net displacement as one operation, and only if
// some position actually changed.
func (e *entityController) end() {
	if e.pending {
		// plain click: replace the selection, nothing moved
		e.pending = false
		e.selected = []int{e.pressID}
		return
	}
	if !e.dragging {
		return
	}
	starts := e.startPos
	e.dragging = false
	e.startPos = nil
	if !e.dragMoved {
		return
	}
	var before, after []entity.Move
	for id, start := range starts {
		inst := e.ctx.Entities.Entity(id)
		if inst == nil {
			continue
		}
		if inst.X == start.x && inst.Y == start.y {
			continue
		}
		before = append(before, entity.Move{ID: id, X: start.x, Y: start.y})
		after = append(after, entity.Move{ID: id, X: inst.X, Y: inst.Y})
	}
	if len(after) == 0 {
		return
	}
	ctx := e.ctx
	ctx.History.Push(&history.Operation{
		Type:        "move_entities",
		Description: "Move entities",
		Execute: func() {
			ctx.Entities.MoveMany(after)
			ctx.sceneChanged()
		},
		Undo: func() {
			ctx.Entities.MoveMany(before)
			ctx.sceneChanged()
		},
	})
}

// cancel puts every dragged entity back where the gesture found it.
func (e *entityController) cancel() {
	e.pending = false
	if !e.dragging {
		return
	}
	moves := make([]entity.Move, 0, len(e.startPos))
	for id, start := range e.startPos {
		moves = append(moves, entity.Move{ID: id, X: start.x, Y: start.y})
	}
	e.ctx.Entities.MoveMany(moves)
	e.dragging = false
	e.startPos = nil
	e.ctx.sceneChanged()
}

// deleteSelected removes the full entity selection as one operation.
func (e *entityController) deleteSelected() {
	if len(e.selected) == 0 {
		return
	}
	ctx := e.ctx
	ids := e.selectedIDs()
	removed := ctx.Entities.RemoveMany(ids)
	if len(removed) == 0 {
		return
	}
	e.selected = nil
	ctx.sceneChanged()
	ctl := e
	ctx.History.Push(&history.Operation{
		Type:        "delete_entities",
		Description: "Delete entities",
		Execute: func() {
			ctx.Entities.RemoveMany(ids)
			ctl.selected = nil
			ctx.sceneChanged()
		},
		Undo: func() {
			for _, inst := range removed {
				ctx.Entities.AddInstance(inst)
			}
			ctl.selected = append([]int(nil), ids...)
			ctx.sceneChanged()
		},
	})
}

// duplicateSelected clones the selection offset by one tile, selects the
// copies, and records the whole thing as one operation. Redo re-adds the
// same instances so ids stay stable across undo/redo cycling.
func (e *entityController) duplicateSelected() {
	if len(e.selected) == 0 {
		return
	}
	ctx := e.ctx
	ids := e.selectedIDs()
	ts := float64(ctx.Scene.TileSize)
	copies := ctx.Entities.DuplicateMany(ids, ts, ts)
	if len(copies) == 0 {
		return
	}
	copyIDs := make([]int, len(copies))
	for i, c := range copies {
		copyIDs[i] = c.ID
	}
	e.selected = append([]int(nil), copyIDs...)
	ctx.sceneChanged()
	ctl := e
	ctx.History.Push(&history.Operation{
		Type:        "duplicate_entities",
		Description: "Duplicate entities",
		Execute: func() {
			for _, c := range copies {
				ctx.Entities.AddInstance(c)
			}
			ctl.selected = append([]int(nil), copyIDs...)
			ctx.sceneChanged()
		},
		Undo: func() {
			ctx.Entities.RemoveMany(copyIDs)
			ctl.selected = append([]int(nil), ids...)
			ctx.sceneChanged()
		},
	})
}

func (e *entityController) reset() {
	e.selected = nil
	e.pending = false
	e.dragging = false
	e.dragMoved = false
	e.startPos = nil
}
