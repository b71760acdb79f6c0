package tools

import (
	"testing"

	"github.com/milk9111/leveledit/level"
)

// dragSelect performs a full rubber-band gesture over the given tile rect.
func dragSelect(tool *SelectTool, x0, y0, x1, y1 int) {
	vp := identityVP()
	sx, sy := at(x0, y0)
	tool.Start(sx, sy, vp)
	ex, ey := at(x1, y1)
	tool.Move(ex, ey, vp)
	tool.End(ex, ey, vp)
}

// paintRect writes v over a tile rect directly, bypassing tools.
func paintRect(s *level.Scene, layer string, x0, y0, w, h, v int) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			s.SetTile(layer, x, y, v)
		}
	}
}

func TestSelectDragCreatesNormalizedSelection(t *testing.T) {
	cases := []struct {
		name           string
		x0, y0, x1, y1 int
		want           level.SelectionBounds
	}{
		{"forward", 2, 2, 4, 4, level.SelectionBounds{StartX: 2, StartY: 2, Width: 3, Height: 3, Layer: "ground"}},
		{"reverse", 4, 4, 2, 2, level.SelectionBounds{StartX: 2, StartY: 2, Width: 3, Height: 3, Layer: "ground"}},
		{"tap_is_1x1", 6, 7, 6, 7, level.SelectionBounds{StartX: 6, StartY: 7, Width: 1, Height: 1, Layer: "ground"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx, _ := newTestContext()
			tool := NewSelectTool(ctx)
			dragSelect(tool, c.x0, c.y0, c.x1, c.y1)

			if tool.Mode() != ModeSelected {
				t.Fatalf("expected mode selected, got %v", tool.Mode())
			}
			if tool.Selection() == nil || tool.Selection().Bounds != c.want {
				t.Fatalf("expected bounds %+v, got %+v", c.want, tool.Selection())
			}
		})
	}
}

func TestTapOnExistingSelectionClearsIt(t *testing.T) {
	ctx, _ := newTestContext()
	tool := NewSelectTool(ctx)
	vp := identityVP()
	dragSelect(tool, 2, 2, 4, 4)

	sx, sy := at(3, 3)
	tool.Start(sx, sy, vp)
	tool.End(sx, sy, vp)

	if tool.Mode() != ModeIdle || tool.Selection() != nil {
		t.Fatalf("expected tap inside selection to deselect, mode=%v", tool.Mode())
	}
}

func TestMoveRoundTrip(t *testing.T) {
	ctx, scene := newTestContext()
	paintRect(scene, "ground", 2, 2, 3, 3, 7)
	before := gridCopy(scene, "ground")
	tool := NewSelectTool(ctx)
	vp := identityVP()
	dragSelect(tool, 2, 2, 4, 4)

	// drag from inside the rectangle by (+3,+3)
	sx, sy := at(3, 3)
	tool.Start(sx, sy, vp)
	ex, ey := at(6, 6)
	tool.Move(ex, ey, vp)
	tool.End(ex, ey, vp)

	for y := 5; y <= 7; y++ {
		for x := 5; x <= 7; x++ {
			if v, _ := scene.Tile("ground", x, y); v != 7 {
				t.Fatalf("expected 7 at destination (%d,%d), got %d", x, y, v)
			}
		}
	}
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			if v, _ := scene.Tile("ground", x, y); v != 0 {
				t.Fatalf("expected source (%d,%d) zeroed, got %d", x, y, v)
			}
		}
	}
	wantDst := level.SelectionBounds{StartX: 5, StartY: 5, Width: 3, Height: 3, Layer: "ground"}
	if tool.Selection() == nil || tool.Selection().Bounds != wantDst {
		t.Fatalf("expected selection to follow the move to %+v", wantDst)
	}
	if ctx.History.Depth() != 1 {
		t.Fatalf("expected move as 1 undo step, got %d", ctx.History.Depth())
	}

	ctx.History.Undo()
	if !gridsEqual(before, gridCopy(scene, "ground")) {
		t.Fatalf("undo did not restore the grid:\n%s", gridString(gridCopy(scene, "ground")))
	}
	wantSrc := level.SelectionBounds{StartX: 2, StartY: 2, Width: 3, Height: 3, Layer: "ground"}
	if tool.Selection() == nil || tool.Selection().Bounds != wantSrc {
		t.Fatalf("undo must re-select the prior rectangle, got %+v", tool.Selection())
	}
	if tool.Mode() != ModeSelected {
		t.Fatalf("undo must restore selected mode, got %v", tool.Mode())
	}

	ctx.History.Redo()
	if v, _ := scene.Tile("ground", 7, 7); v != 7 {
		t.Fatalf("redo did not re-apply the move")
	}
	if tool.Selection() == nil || tool.Selection().Bounds != wantDst {
		t.Fatalf("redo must advance the selection to %+v", wantDst)
	}
}

func TestMoveClampsToScene(t *testing.T) {
	ctx, scene := newTestContext()
	paintRect(scene, "ground", 7, 7, 3, 3, 7)
	tool := NewSelectTool(ctx)
	vp := identityVP()
	dragSelect(tool, 7, 7, 9, 9)

	// attempt to shove the rect off the bottom-right corner
	sx, sy := at(8, 8)
	tool.Start(sx, sy, vp)
	ex, ey := at(9, 9) // delta (+1,+1), but the rect already touches the edge
	tool.Move(ex, ey, vp)
	tool.End(ex, ey, vp)

	want := level.SelectionBounds{StartX: 7, StartY: 7, Width: 3, Height: 3, Layer: "ground"}
	if tool.Selection() == nil || tool.Selection().Bounds != want {
		t.Fatalf("expected clamp to keep bounds %+v, got %+v", want, tool.Selection())
	}
	if ctx.History.Depth() != 0 {
		t.Fatalf("a fully-clamped move changes nothing and must push nothing, got depth %d", ctx.History.Depth())
	}
}

func TestMoveOnLockedLayerIsNoop(t *testing.T) {
	ctx, scene := newTestContext()
	paintRect(scene, "ground", 2, 2, 3, 3, 7)
	tool := NewSelectTool(ctx)
	vp := identityVP()
	dragSelect(tool, 2, 2, 4, 4)
	ctx.State.LayerLocks["ground"] = true
	before := gridCopy(scene, "ground")

	sx, sy := at(3, 3)
	tool.Start(sx, sy, vp)
	ex, ey := at(6, 6)
	tool.Move(ex, ey, vp)
	tool.End(ex, ey, vp)

	if !gridsEqual(before, gridCopy(scene, "ground")) {
		t.Fatalf("locked layer mutated")
	}
	if tool.Mode() != ModeSelected || tool.Selection() == nil {
		t.Fatalf("selection must survive a locked no-op move, mode=%v", tool.Mode())
	}
	if ctx.History.Depth() != 0 {
		t.Fatalf("expected no operation, got depth %d", ctx.History.Depth())
	}
}

func TestCopyPasteScenario(t *testing.T) {
	ctx, scene := newTestContext()
	paintRect(scene, "ground", 2, 2, 3, 3, 7)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	dragSelect(tool, 2, 2, 4, 4)
	tool.CopySelection()
	tool.ArmPaste()
	if tool.Mode() != ModePasting {
		t.Fatalf("expected pasting mode after arm, got %v", tool.Mode())
	}

	sx, sy := at(5, 5)
	tool.Start(sx, sy, vp)

	for y := 5; y <= 7; y++ {
		for x := 5; x <= 7; x++ {
			if v, _ := scene.Tile("ground", x, y); v != 7 {
				t.Fatalf("expected pasted 7 at (%d,%d), got %d", x, y, v)
			}
		}
	}
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			if v, _ := scene.Tile("ground", x, y); v != 7 {
				t.Fatalf("paste must not disturb the original region, got %d at (%d,%d)", v, x, y)
			}
		}
	}
	want := level.SelectionBounds{StartX: 5, StartY: 5, Width: 3, Height: 3, Layer: "ground"}
	if tool.Selection() == nil || tool.Selection().Bounds != want {
		t.Fatalf("expected selection to match the pasted footprint %+v", want)
	}

	ctx.History.Undo()
	if v, _ := scene.Tile("ground", 5, 5); v != 0 {
		t.Fatalf("undo did not clear the pasted cells, got %d", v)
	}
	wantPrev := level.SelectionBounds{StartX: 2, StartY: 2, Width: 3, Height: 3, Layer: "ground"}
	if tool.Selection() == nil || tool.Selection().Bounds != wantPrev {
		t.Fatalf("undo must re-select the pre-paste rectangle, got %+v", tool.Selection())
	}
}

func TestPasteAtSameOriginReproducesValues(t *testing.T) {
	ctx, scene := newTestContext()
	paintRect(scene, "ground", 2, 2, 3, 3, 7)
	before := gridCopy(scene, "ground")
	tool := NewSelectTool(ctx)
	vp := identityVP()

	dragSelect(tool, 2, 2, 4, 4)
	tool.CopySelection()
	tool.ArmPaste()
	sx, sy := at(2, 2)
	tool.Start(sx, sy, vp)

	if !gridsEqual(before, gridCopy(scene, "ground")) {
		t.Fatalf("paste at the same origin must reproduce values exactly")
	}
	if ctx.History.Depth() != 0 {
		t.Fatalf("an all-equal paste must push nothing, got depth %d", ctx.History.Depth())
	}
}

func TestPasteClippedAtSceneEdge(t *testing.T) {
	ctx, scene := newTestContext()
	paintRect(scene, "ground", 2, 2, 3, 3, 7)
	tool := NewSelectTool(ctx)
	vp := identityVP()

	dragSelect(tool, 2, 2, 4, 4)
	tool.CopySelection()
	tool.ArmPaste()
	sx, sy := at(8, 8)
	tool.Start(sx, sy, vp)

	want := level.SelectionBounds{StartX: 8, StartY: 8, Width: 2, Height: 2, Layer: "ground"}
	if tool.Selection() == nil || tool.Selection().Bounds != want {
		t.Fatalf("expected clipped footprint %+v, got %+v", want, tool.Selection())
	}
	for y := 8; y <= 9; y++ {
		for x := 8; x <= 9; x++ {
			if v, _ := scene.Tile("ground", x, y); v != 7 {
				t.Fatalf("expected 7 at (%d,%d), got %d", x, y, v)
			}
		}
	}
}

func TestArmPasteIgnoredWithEmptyClipboard(t *testing.T) {
	ctx, _ := newTestContext()
	tool := NewSelectTool(ctx)
	dragSelect(tool, 2, 2, 4, 4)

	tool.ArmPaste()
	if tool.Mode() != ModeSelected {
		t.Fatalf("empty-clipboard arm must leave mode unchanged, got %v", tool.Mode())
	}
}

func TestArmFillTriggersOnNextPointerDown(t *testing.T) {
	ctx, scene := newTestContext()
	tool := NewSelectTool(ctx)
	vp := identityVP()
	dragSelect(tool, 2, 2, 4, 4)

	tool.ArmFill()
	if tool.Mode() != ModeIdle || tool.Selection() != nil || !tool.PendingFill() {
		t.Fatalf("arm fill must disarm the selection and arm the one-shot")
	}

	sx, sy := at(4, 4)
	tool.Start(sx, sy, vp)
	tool.End(sx, sy, vp)

	if v, _ := scene.Tile("ground", 0, 0); v != 7 {
		t.Fatalf("expected one-shot fill to run, got %d at (0,0)", v)
	}
	if tool.PendingFill() {
		t.Fatalf("one-shot fill must disarm after firing")
	}
	if ctx.History.Depth() != 1 {
		t.Fatalf("expected fill as 1 undo step, got %d", ctx.History.Depth())
	}
}

func TestArmFillOnLockedLayerSilentlyNoops(t *testing.T) {
	ctx, scene := newTestContext()
	ctx.State.LayerLocks["ground"] = true
	tool := NewSelectTool(ctx)
	vp := identityVP()

	tool.ArmFill()
	sx, sy := at(4, 4)
	tool.Start(sx, sy, vp)
	tool.End(sx, sy, vp)

	if v, _ := scene.Tile("ground", 0, 0); v != 0 {
		t.Fatalf("locked layer filled: got %d", v)
	}
	if tool.PendingFill() {
		t.Fatalf("trigger must be consumed even on a locked layer")
	}
}

func TestPasteAndFillArmsAreMutuallyExclusive(t *testing.T) {
	ctx, _ := newTestContext()
	tool := NewSelectTool(ctx)
	dragSelect(tool, 2, 2, 4, 4)
	tool.CopySelection()

	tool.ArmPaste()
	tool.ArmFill()
	if tool.Mode() == ModePasting || !tool.PendingFill() {
		t.Fatalf("arming fill must disarm paste")
	}

	tool.ArmPaste()
	if tool.PendingFill() || tool.Mode() != ModePasting {
		t.Fatalf("arming paste must disarm fill")
	}
}

func TestDeleteSelection(t *testing.T) {
	ctx, scene := newTestContext()
	paintRect(scene, "ground", 2, 2, 3, 3, 7)
	tool := NewSelectTool(ctx)
	dragSelect(tool, 2, 2, 4, 4)

	tool.DeleteSelection()
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			if v, _ := scene.Tile("ground", x, y); v != 0 {
				t.Fatalf("expected (%d,%d) deleted, got %d", x, y, v)
			}
		}
	}
	if tool.Selection() == nil || tool.Selection().Tiles[0][0] != 0 {
		t.Fatalf("cached snapshot must refresh after delete")
	}
	if ctx.History.Depth() != 1 {
		t.Fatalf("expected delete as 1 undo step, got %d", ctx.History.Depth())
	}
	ctx.History.Undo()
	if v, _ := scene.Tile("ground", 3, 3); v != 7 {
		t.Fatalf("undo did not restore deleted cells, got %d", v)
	}
}

func TestCopyWithoutSelectionHasNoEffect(t *testing.T) {
	ctx, _ := newTestContext()
	tool := NewSelectTool(ctx)
	tool.CopySelection()
	if tool.Clipboard().HasData() {
		t.Fatalf("copy without a selection must not populate the clipboard")
	}
}
