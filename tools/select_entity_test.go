package tools

import (
	"sort"
	"testing"
)

func sortedIDs(ids []int) []int {
	out := append([]int(nil), ids...)
	sort.Ints(out)
	return out
}

func idsEqual(a, b []int) bool {
	a, b = sortedIDs(a), sortedIDs(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEntityClickSelectsAndMissDeselects(t *testing.T) {
	ctx, _ := newTestContext()
	e1 := ctx.Entities.Add("goblin", 0, 0)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(0, 0, vp)
	tool.End(0, 0, vp)
	if !idsEqual(tool.SelectedEntities(), []int{e1.ID}) {
		t.Fatalf("expected click to select %d, got %v", e1.ID, tool.SelectedEntities())
	}

	// a pointer-down far from any entity drops the selection
	tool.Start(200, 200, vp)
	tool.End(200, 200, vp)
	if len(tool.SelectedEntities()) != 0 {
		t.Fatalf("expected miss to deselect, got %v", tool.SelectedEntities())
	}
}

func TestEntityClickReplacesSelection(t *testing.T) {
	ctx, _ := newTestContext()
	ctx.Entities.Add("goblin", 0, 0)
	e2 := ctx.Entities.Add("goblin", 128, 128)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(0, 0, vp)
	tool.End(0, 0, vp)
	tool.Start(128, 128, vp)
	tool.End(128, 128, vp)

	if !idsEqual(tool.SelectedEntities(), []int{e2.ID}) {
		t.Fatalf("expected plain click to replace selection with %d, got %v", e2.ID, tool.SelectedEntities())
	}
}

func TestEntityLongPressAddsToSelection(t *testing.T) {
	ctx, _ := newTestContext()
	e1 := ctx.Entities.Add("goblin", 0, 0)
	e2 := ctx.Entities.Add("goblin", 32, 0)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(0, 0, vp)
	tool.End(0, 0, vp)
	tool.Start(32, 0, vp)
	tool.LongPress(32, 0, vp)
	tool.End(32, 0, vp)

	if !idsEqual(tool.SelectedEntities(), []int{e1.ID, e2.ID}) {
		t.Fatalf("expected long-press to add, got %v", tool.SelectedEntities())
	}
	if ctx.History.Depth() != 0 {
		t.Fatalf("selection gestures must not touch history, got depth %d", ctx.History.Depth())
	}
}

func TestEntityDuplicateScenario(t *testing.T) {
	ctx, _ := newTestContext()
	e1 := ctx.Entities.Add("goblin", 0, 0)
	e2 := ctx.Entities.Add("goblin", 32, 0)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(0, 0, vp)
	tool.End(0, 0, vp)
	tool.Start(32, 0, vp)
	tool.LongPress(32, 0, vp)
	tool.End(32, 0, vp)

	tool.DuplicateEntities()

	all := ctx.Entities.All()
	if len(all) != 4 {
		t.Fatalf("expected 4 entities after duplicate, got %d", len(all))
	}
	c1, c2 := all[2], all[3]
	if c1.X != 32 || c1.Y != 32 || c2.X != 64 || c2.Y != 32 {
		t.Fatalf("expected copies offset by one tile, got (%v,%v) and (%v,%v)", c1.X, c1.Y, c2.X, c2.Y)
	}
	if !idsEqual(tool.SelectedEntities(), []int{c1.ID, c2.ID}) {
		t.Fatalf("expected the copies selected, got %v", tool.SelectedEntities())
	}
	if ctx.History.Depth() != 1 {
		t.Fatalf("expected duplicate as 1 undo step, got %d", ctx.History.Depth())
	}

	ctx.History.Undo()
	if len(ctx.Entities.All()) != 2 {
		t.Fatalf("undo must remove the copies, got %d entities", len(ctx.Entities.All()))
	}
	if !idsEqual(tool.SelectedEntities(), []int{e1.ID, e2.ID}) {
		t.Fatalf("undo must re-select the originals, got %v", tool.SelectedEntities())
	}

	ctx.History.Redo()
	if len(ctx.Entities.All()) != 4 {
		t.Fatalf("redo must re-add the copies, got %d entities", len(ctx.Entities.All()))
	}
	if !idsEqual(tool.SelectedEntities(), []int{c1.ID, c2.ID}) {
		t.Fatalf("redo must keep copy ids stable, got %v", tool.SelectedEntities())
	}
}

func TestEntityDragCommitsNetDisplacement(t *testing.T) {
	ctx, _ := newTestContext()
	e := ctx.Entities.Add("goblin", 64, 64)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(64, 64, vp)
	// intermediate frames move the entity live but are not undo-tracked
	tool.Move(80, 64, vp)
	tool.Move(96, 96, vp)
	tool.End(96, 96, vp)

	if e.X != 96 || e.Y != 96 {
		t.Fatalf("expected entity at (96,96), got (%v,%v)", e.X, e.Y)
	}
	if ctx.History.Depth() != 1 {
		t.Fatalf("expected the drag as 1 undo step, got %d", ctx.History.Depth())
	}
	ctx.History.Undo()
	if e.X != 64 || e.Y != 64 {
		t.Fatalf("undo must restore (64,64), got (%v,%v)", e.X, e.Y)
	}
	ctx.History.Redo()
	if e.X != 96 || e.Y != 96 {
		t.Fatalf("redo must restore (96,96), got (%v,%v)", e.X, e.Y)
	}
}

func TestEntityDragWithoutMovementPushesNothing(t *testing.T) {
	ctx, _ := newTestContext()
	ctx.Entities.Add("goblin", 64, 64)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(64, 64, vp)
	tool.End(64, 64, vp)
	tool.Start(64, 64, vp)
	tool.Move(64, 64, vp)
	tool.End(64, 64, vp)

	if ctx.History.Depth() != 0 {
		t.Fatalf("a zero-displacement gesture must push nothing, got depth %d", ctx.History.Depth())
	}
}

func TestEntityDragSnapsToGrid(t *testing.T) {
	ctx, _ := newTestContext()
	ctx.State.EntitySnapToGrid = true
	e := ctx.Entities.Add("goblin", 64, 64)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(64, 64, vp)
	tool.Move(77, 85, vp) // raw target (77,85) rounds to the nearest tile corner
	tool.End(77, 85, vp)

	if e.X != 64 || e.Y != 96 {
		t.Fatalf("expected snap to (64,96), got (%v,%v)", e.X, e.Y)
	}
}

func TestEntityDragClampedToScene(t *testing.T) {
	ctx, scene := newTestContext()
	e := ctx.Entities.Add("goblin", 64, 64)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(64, 64, vp)
	tool.Move(2000, 2000, vp)
	tool.End(2000, 2000, vp)

	maxX := float64(scene.PixelWidth() - scene.TileSize)
	maxY := float64(scene.PixelHeight() - scene.TileSize)
	if e.X != maxX || e.Y != maxY {
		t.Fatalf("expected clamp to (%v,%v), got (%v,%v)", maxX, maxY, e.X, e.Y)
	}
}

func TestEntityDragCancelRestoresPositions(t *testing.T) {
	ctx, _ := newTestContext()
	e := ctx.Entities.Add("goblin", 64, 64)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(64, 64, vp)
	tool.Move(96, 96, vp)
	tool.Cancel()

	if e.X != 64 || e.Y != 64 {
		t.Fatalf("cancel must restore (64,64), got (%v,%v)", e.X, e.Y)
	}
	if ctx.History.Depth() != 0 {
		t.Fatalf("cancel must push nothing, got depth %d", ctx.History.Depth())
	}
}

func TestEntityDeleteAndUndoRestores(t *testing.T) {
	ctx, _ := newTestContext()
	e1 := ctx.Entities.Add("goblin", 0, 0)
	e2 := ctx.Entities.Add("imp", 32, 0)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(0, 0, vp)
	tool.End(0, 0, vp)
	tool.Start(32, 0, vp)
	tool.LongPress(32, 0, vp)
	tool.End(32, 0, vp)

	tool.DeleteEntities()
	if len(ctx.Entities.All()) != 0 {
		t.Fatalf("expected both entities deleted, got %d", len(ctx.Entities.All()))
	}
	if len(tool.SelectedEntities()) != 0 {
		t.Fatalf("delete must clear the entity selection")
	}
	if ctx.History.Depth() != 1 {
		t.Fatalf("expected delete as 1 undo step, got %d", ctx.History.Depth())
	}

	ctx.History.Undo()
	all := ctx.Entities.All()
	if len(all) != 2 || all[0].ID != e1.ID || all[1].ID != e2.ID {
		t.Fatalf("undo must restore both entities with their ids, got %v", all)
	}
	if all[1].Type != "imp" {
		t.Fatalf("undo must restore entity fields, got type %q", all[1].Type)
	}
	if !idsEqual(tool.SelectedEntities(), []int{e1.ID, e2.ID}) {
		t.Fatalf("undo must re-select the deleted entities, got %v", tool.SelectedEntities())
	}

	ctx.History.Redo()
	if len(ctx.Entities.All()) != 0 {
		t.Fatalf("redo must delete again, got %d entities", len(ctx.Entities.All()))
	}
}

func TestEntityGestureDoesNotReachTileMachine(t *testing.T) {
	ctx, scene := newTestContext()
	ctx.Entities.Add("goblin", 64, 64)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.Start(64, 64, vp)
	tool.Move(160, 160, vp)
	tool.End(160, 160, vp)

	if tool.Selection() != nil || tool.Mode() != ModeIdle {
		t.Fatalf("an entity drag must not create a tile selection, mode=%v", tool.Mode())
	}
	if v, _ := scene.Tile("ground", 2, 2); v != 0 {
		t.Fatalf("an entity drag must not touch tiles")
	}
}

func TestArmedMoveIgnoresEntityUnderPointer(t *testing.T) {
	ctx, scene := newTestContext()
	paintRect(scene, "ground", 2, 2, 3, 3, 7)
	ctx.Entities.Add("goblin", 96, 96)
	tool := NewSelectTool(ctx)
	vp := identityVP()
	dragSelect(tool, 2, 2, 4, 4)

	tool.ArmMove()
	sx, sy := at(3, 3)
	tool.Start(sx, sy, vp)
	if tool.Mode() != ModeMoving {
		t.Fatalf("expected the armed move to own the pointer, got %v", tool.Mode())
	}
	if _, _, ok := tool.MoveDelta(); !ok {
		t.Fatalf("expected the move drag to anchor on pointer-down")
	}
	if ids := tool.SelectedEntities(); len(ids) != 0 {
		t.Fatalf("expected no entity selection, got %v", ids)
	}

	ex, ey := at(6, 6)
	tool.Move(ex, ey, vp)
	tool.End(ex, ey, vp)

	inst := ctx.Entities.All()[0]
	if inst.X != 96 || inst.Y != 96 {
		t.Fatalf("entity must not travel with the selection, got (%v,%v)", inst.X, inst.Y)
	}
	if v, _ := scene.Tile("ground", 6, 6); v != 7 {
		t.Fatalf("expected moved tiles at (6,6), got %d", v)
	}
	b := tool.Selection().Bounds
	if b.StartX != 5 || b.StartY != 5 {
		t.Fatalf("expected selection carried to (5,5), got %+v", b)
	}
	if ctx.History.Depth() != 1 {
		t.Fatalf("expected one move operation, got depth %d", ctx.History.Depth())
	}
}
