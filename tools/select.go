package tools

import (
	"github.com/milk9111/leveledit/geom"
	"github.com/milk9111/leveledit/history"
	"github.com/milk9111/leveledit/level"
)

// SelectMode is the tile sub-machine's state.
type SelectMode int

const (
	ModeIdle SelectMode = iota
	ModeSelecting
	ModeSelected
	ModeMoving
	ModePasting
)

func (m SelectMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSelecting:
		return "selecting"
	case ModeSelected:
		return "selected"
	case ModeMoving:
		return "moving"
	case ModePasting:
		return "pasting"
	default:
		return "unknown"
	}
}

// SelectTool manages a rectangular tile selection (select, move, copy,
// paste, delete, one-shot fill) and layers an entity controller over the
// same gesture stream: a pointer-down that hits an entity becomes an
// entity drag instead of a tile gesture.
//
// Invariants: selection is non-nil only in selected and moving; moveAnchor
// is non-nil only in moving; pendingFill can only be armed in idle, and
// arming paste or fill disarms the other by construction.
type SelectTool struct {
	ctx       *Context
	clipboard *Clipboard
	entities  *entityController

	mode      SelectMode
	selection *level.SelectionData

	// rubber-band drag state
	anchor              geom.Point
	cur                 geom.Point
	startedFromExisting bool
	selectingMoved      bool

	// move drag state
	moveAnchor *geom.Point
	moveCur    geom.Point

	// one-shot arms
	pendingFill   bool
	prevSelection *level.SelectionBounds // selection bounds at paste-arm time

	entGesture bool
}

func NewSelectTool(ctx *Context) *SelectTool {
	return &SelectTool{
		ctx:       ctx,
		clipboard: NewClipboard(),
		entities:  newEntityController(ctx),
	}
}

func (t *SelectTool) Mode() SelectMode { return t.mode }

// Selection returns the active selection snapshot, or nil.
func (t *SelectTool) Selection() *level.SelectionData { return t.selection }

// Clipboard exposes the tool's clipboard for the front-end (OS clipboard
// bridge, paste-arm availability).
func (t *SelectTool) Clipboard() *Clipboard { return t.clipboard }

// PendingFill reports whether the next pointer-down triggers a flood fill.
func (t *SelectTool) PendingFill() bool { return t.pendingFill }

// MoveDelta reports the in-progress move offset in tiles, for rendering a
// drag ghost. ok is false outside a move drag.
func (t *SelectTool) MoveDelta() (dx, dy int, ok bool) {
	if t.mode != ModeMoving || t.moveAnchor == nil {
		return 0, 0, false
	}
	return t.moveCur.X - t.moveAnchor.X, t.moveCur.Y - t.moveAnchor.Y, true
}

// SelectedEntities returns the ids of the current entity selection.
func (t *SelectTool) SelectedEntities() []int { return t.entities.selectedIDs() }

func (t *SelectTool) Start(sx, sy float64, vp Transform) {
	ctx := t.ctx
	p := ctx.tileAt(sx, sy, vp)

	// armed one-shots fire on the next pointer-down, whatever it hits
	if t.pendingFill {
		t.pendingFill = false
		fillAt(ctx, p)
		return
	}
	if t.mode == ModePasting {
		t.performPaste(p)
		return
	}

	if t.mode == ModeMoving {
		// armed move waiting for its first touch; it owns the pointer even
		// when an entity sits under it
		t.moveAnchor = &geom.Point{X: p.X, Y: p.Y}
		t.moveCur = p
		return
	}

	wx, wy := vp.ScreenToWorld(sx, sy)
	if t.entities.start(wx, wy) {
		t.entGesture = true
		return
	}

	if t.mode == ModeSelected && t.selection != nil && t.selection.Bounds.Contains(p.X, p.Y) {
		// could be a tap (deselect) or a drag-start (move); decided on Move/End
		t.mode = ModeSelecting
		t.startedFromExisting = true
		t.selectingMoved = false
		t.anchor = p
		t.cur = t.clampPoint(p)
		return
	}

	// pointer-down outside any selection starts a new rubber band
	t.selection = nil
	t.mode = ModeSelecting
	t.startedFromExisting = false
	t.selectingMoved = false
	t.anchor = p
	t.cur = t.clampPoint(p)
}

func (t *SelectTool) Move(sx, sy float64, vp Transform) {
	if t.entGesture {
		wx, wy := vp.ScreenToWorld(sx, sy)
		t.entities.move(wx, wy)
		return
	}
	p := t.ctx.tileAt(sx, sy, vp)
	switch t.mode {
	case ModeSelecting:
		if p != t.anchor {
			t.selectingMoved = true
		}
		if t.startedFromExisting && t.selectingMoved {
			// drag-start inside the rectangle begins a move
			anchor := t.anchor
			t.mode = ModeMoving
			t.moveAnchor = &anchor
			t.moveCur = p
			t.startedFromExisting = false
			t.selectingMoved = false
			return
		}
		t.cur = t.clampPoint(p)
	case ModeMoving:
		if t.moveAnchor == nil {
			t.moveAnchor = &geom.Point{X: p.X, Y: p.Y}
		}
		t.moveCur = p
	}
}

func (t *SelectTool) End(sx, sy float64, vp Transform) {
	if t.entGesture {
		t.entities.end()
		t.entGesture = false
		return
	}
	switch t.mode {
	case ModeSelecting:
		if t.startedFromExisting && !t.selectingMoved {
			// tap on an existing selection clears it
			t.selection = nil
			t.mode = ModeIdle
			break
		}
		b := level.NormalizeBounds(t.ctx.Scene, t.ctx.State.ActiveLayer,
			t.anchor.X, t.anchor.Y, t.cur.X, t.cur.Y)
		t.selection = level.CaptureSelection(t.ctx.Scene, b)
		t.mode = ModeSelected
	case ModeMoving:
		t.commitMove()
	}
	t.startedFromExisting = false
	t.selectingMoved = false
}

// Cancel drops any gesture in flight without committing. A selection that
// existed before the gesture is kept.
func (t *SelectTool) Cancel() {
	if t.entGesture {
		t.entities.cancel()
		t.entGesture = false
		return
	}
	switch t.mode {
	case ModeSelecting:
		if t.selection != nil {
			t.mode = ModeSelected
		} else {
			t.mode = ModeIdle
		}
	case ModeMoving:
		t.moveAnchor = nil
		if t.selection != nil {
			t.mode = ModeSelected
		} else {
			t.mode = ModeIdle
		}
	}
	t.startedFromExisting = false
	t.selectingMoved = false
}

// LongPress is forwarded by the gesture driver while the pointer is held.
// Over an entity it adds that entity to the selection; inside the tile
// selection it arms a move without waiting for drag movement.
func (t *SelectTool) LongPress(sx, sy float64, vp Transform) {
	if t.entGesture {
		wx, wy := vp.ScreenToWorld(sx, sy)
		t.entities.longPress(wx, wy)
		return
	}
	if t.mode == ModeSelecting && t.startedFromExisting && !t.selectingMoved {
		anchor := t.anchor
		t.mode = ModeMoving
		t.moveAnchor = &anchor
		t.moveCur = anchor
		t.startedFromExisting = false
	}
}

// Reset discards all ephemeral state. Called on tool switch.
func (t *SelectTool) Reset() {
	t.mode = ModeIdle
	t.selection = nil
	t.moveAnchor = nil
	t.pendingFill = false
	t.prevSelection = nil
	t.startedFromExisting = false
	t.selectingMoved = false
	t.entGesture = false
	t.entities.reset()
}

// ArmMove puts a selected rectangle into moving mode; the next pointer
// drag anchors and carries it.
func (t *SelectTool) ArmMove() {
	if t.mode != ModeSelected || t.selection == nil {
		return
	}
	t.mode = ModeMoving
	t.moveAnchor = nil
}

// ArmPaste arms a one-shot paste if the clipboard has data; the request is
// ignored otherwise. The current selection is released and remembered so
// undoing the paste can re-select it.
func (t *SelectTool) ArmPaste() {
	if !t.clipboard.HasData() {
		return
	}
	t.pendingFill = false
	if t.selection != nil {
		b := t.selection.Bounds
		t.prevSelection = &b
	} else {
		t.prevSelection = nil
	}
	t.selection = nil
	t.moveAnchor = nil
	t.mode = ModePasting
}

// ArmFill disarms the selection and arms a one-shot flood fill on the next
// pointer-down.
func (t *SelectTool) ArmFill() {
	t.selection = nil
	t.moveAnchor = nil
	t.prevSelection = nil
	t.mode = ModeIdle
	t.pendingFill = true
}

// ClearSelection drops the selection and returns to idle.
func (t *SelectTool) ClearSelection() {
	t.selection = nil
	t.moveAnchor = nil
	if t.mode == ModeSelected || t.mode == ModeMoving {
		t.mode = ModeIdle
	}
}

// CopySelection deep-copies the current snapshot into the clipboard. No
// effect without an active selection.
func (t *SelectTool) CopySelection() {
	if t.selection == nil {
		return
	}
	t.clipboard.Copy(t.selection)
}

// DeleteSelection zeroes every non-empty cell inside the rectangle as one
// undo step and refreshes the cached snapshot.
func (t *SelectTool) DeleteSelection() {
	ctx := t.ctx
	if t.selection == nil {
		return
	}
	b := t.selection.Bounds
	if ctx.State.LayerLocked(b.Layer) {
		return
	}
	var changes []level.TileChange
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			cx, cy := b.StartX+x, b.StartY+y
			v, ok := ctx.Scene.Tile(b.Layer, cx, cy)
			if !ok || v == 0 {
				continue
			}
			changes = append(changes, level.TileChange{
				Layer: b.Layer, X: cx, Y: cy, OldValue: v, NewValue: 0,
			})
		}
	}
	if len(changes) == 0 {
		return
	}
	level.ApplyChanges(ctx.Scene, changes, false)
	ctx.sceneChanged()
	t.pushSelectionOp("delete_selection", "Delete selection", changes, &b, &b)
	t.selection = level.CaptureSelection(ctx.Scene, b)
}

// DeleteEntities removes the current entity selection as one undo step.
func (t *SelectTool) DeleteEntities() { t.entities.deleteSelected() }

// DuplicateEntities clones the current entity selection offset by one tile
// and selects the copies.
func (t *SelectTool) DuplicateEntities() { t.entities.duplicateSelected() }

// commitMove applies the pending move: source cells zero, destination cells
// take the snapshot, clamped so the shifted rectangle stays inside the
// scene. The recorded operation restores the selection rectangle and mode
// on both undo and redo.
func (t *SelectTool) commitMove() {
	ctx := t.ctx
	defer func() {
		t.moveAnchor = nil
		if t.selection != nil {
			t.mode = ModeSelected
		} else {
			t.mode = ModeIdle
		}
	}()
	if t.selection == nil || t.moveAnchor == nil {
		return
	}
	dx := t.moveCur.X - t.moveAnchor.X
	dy := t.moveCur.Y - t.moveAnchor.Y
	if dx == 0 && dy == 0 {
		return
	}
	src := t.selection.Bounds
	if ctx.State.LayerLocked(src.Layer) {
		return
	}
	dst := level.ClampBounds(ctx.Scene, level.SelectionBounds{
		StartX: src.StartX + dx,
		StartY: src.StartY + dy,
		Width:  src.Width,
		Height: src.Height,
		Layer:  src.Layer,
	})
	if dst == src {
		return
	}

	// diff: source cells to zero, destination cells to snapshot values;
	// destination wins where the rectangles overlap
	type pending struct {
		old int
		new int
	}
	desired := make(map[geom.Point]*pending)
	order := make([]geom.Point, 0, 2*src.Width*src.Height)
	record := func(x, y, v int) {
		p := geom.Point{X: x, Y: y}
		if cur, ok := desired[p]; ok {
			cur.new = v
			return
		}
		old, ok := ctx.Scene.Tile(src.Layer, x, y)
		if !ok {
			return
		}
		desired[p] = &pending{old: old, new: v}
		order = append(order, p)
	}
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			record(src.StartX+x, src.StartY+y, 0)
		}
	}
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			record(dst.StartX+x, dst.StartY+y, t.selection.Tiles[y][x])
		}
	}
	var changes []level.TileChange
	for _, p := range order {
		pd := desired[p]
		if pd.old == pd.new {
			continue
		}
		changes = append(changes, level.TileChange{
			Layer: src.Layer, X: p.X, Y: p.Y, OldValue: pd.old, NewValue: pd.new,
		})
	}
	if len(changes) == 0 {
		return
	}
	level.ApplyChanges(ctx.Scene, changes, false)
	ctx.sceneChanged()
	t.pushSelectionOp("move_selection", "Move selection", changes, &src, &dst)
	t.selection = level.CaptureSelection(ctx.Scene, dst)
}

// performPaste stamps the clipboard snapshot at the tapped tile, clipped to
// the scene, and replaces the selection with the pasted footprint.
func (t *SelectTool) performPaste(p geom.Point) {
	ctx := t.ctx
	prev := t.prevSelection
	t.prevSelection = nil
	data := t.clipboard.Paste()
	if data == nil {
		t.mode = ModeIdle
		return
	}
	layer := ctx.State.ActiveLayer
	if ctx.State.LayerLocked(layer) {
		t.restoreSelection(prev)
		return
	}

	// intersect the pasted footprint with the scene
	x0 := geom.Clamp(p.X, 0, ctx.Scene.Width)
	y0 := geom.Clamp(p.Y, 0, ctx.Scene.Height)
	x1 := geom.Clamp(p.X+data.Bounds.Width, 0, ctx.Scene.Width)
	y1 := geom.Clamp(p.Y+data.Bounds.Height, 0, ctx.Scene.Height)
	if x0 >= x1 || y0 >= y1 {
		t.restoreSelection(prev)
		return
	}
	dst := level.SelectionBounds{
		StartX: x0, StartY: y0, Width: x1 - x0, Height: y1 - y0, Layer: layer,
	}
	var changes []level.TileChange
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			cx, cy := dst.StartX+x, dst.StartY+y
			old, ok := ctx.Scene.Tile(layer, cx, cy)
			if !ok {
				continue
			}
			v := data.Tiles[cy-p.Y][cx-p.X]
			if old == v {
				continue
			}
			changes = append(changes, level.TileChange{
				Layer: layer, X: cx, Y: cy, OldValue: old, NewValue: v,
			})
		}
	}
	level.ApplyChanges(ctx.Scene, changes, false)
	ctx.sceneChanged()
	t.pushSelectionOp("paste_selection", "Paste selection", changes, prev, &dst)
	t.selection = level.CaptureSelection(ctx.Scene, dst)
	t.mode = ModeSelected
}

func (t *SelectTool) restoreSelection(b *level.SelectionBounds) {
	if b == nil {
		t.selection = nil
		t.mode = ModeIdle
		return
	}
	t.selection = level.CaptureSelection(t.ctx.Scene, *b)
	t.mode = ModeSelected
}

// pushSelectionOp records a tile diff whose undo/redo also restores the
// selection rectangle and mode on each side, so undoing a move or paste
// re-selects the prior rectangle.
func (t *SelectTool) pushSelectionOp(opType, desc string, changes []level.TileChange, before, after *level.SelectionBounds) {
	if len(changes) == 0 {
		return
	}
	ctx := t.ctx
	scene := ctx.Scene
	ctx.History.Push(&history.Operation{
		Type:        opType,
		Description: desc,
		Execute: func() {
			level.ApplyChanges(scene, changes, false)
			t.restoreSelection(after)
			ctx.sceneChanged()
		},
		Undo: func() {
			level.ApplyChanges(scene, changes, true)
			t.restoreSelection(before)
			ctx.sceneChanged()
		},
	})
}

func (t *SelectTool) clampPoint(p geom.Point) geom.Point {
	return geom.Point{
		X: geom.Clamp(p.X, 0, t.ctx.Scene.Width-1),
		Y: geom.Clamp(p.Y, 0, t.ctx.Scene.Height-1),
	}
}
