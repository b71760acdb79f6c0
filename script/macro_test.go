package script

import (
	"strings"
	"testing"

	"github.com/milk9111/leveledit/history"
	"github.com/milk9111/leveledit/level"
)

func newTestRunner() (*Runner, *level.Scene, *history.Manager) {
	scene := level.NewScene(8, 8, 32)
	hist := history.NewManager()
	return NewRunner(scene, hist), scene, hist
}

func TestMacroWritesLandAsOneUndoStep(t *testing.T) {
	r, scene, hist := newTestRunner()
	src := `
for y := 0; y < 4; y++ {
	for x := 0; x < 4; x++ {
		editor.set_tile("ground", x, y, 5)
	}
}
`
	n, err := r.Run("checker", []byte(src))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n != 16 {
		t.Fatalf("expected 16 cells changed, got %d", n)
	}
	if v, _ := scene.Tile("ground", 3, 3); v != 5 {
		t.Fatalf("expected 5 at (3,3), got %d", v)
	}
	if hist.Depth() != 1 {
		t.Fatalf("expected the whole macro as 1 undo step, got %d", hist.Depth())
	}
	hist.Undo()
	if v, _ := scene.Tile("ground", 3, 3); v != 0 {
		t.Fatalf("undo did not restore (3,3), got %d", v)
	}
	hist.Redo()
	if v, _ := scene.Tile("ground", 0, 0); v != 5 {
		t.Fatalf("redo did not re-apply, got %d", v)
	}
}

func TestMacroCoalescesRepeatWritesToOneCell(t *testing.T) {
	r, scene, hist := newTestRunner()
	src := `
editor.set_tile("ground", 2, 2, 5)
editor.set_tile("ground", 2, 2, 9)
`
	n, err := r.Run("rewrite", []byte(src))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 coalesced change, got %d", n)
	}
	if v, _ := scene.Tile("ground", 2, 2); v != 9 {
		t.Fatalf("expected final value 9, got %d", v)
	}
	hist.Undo()
	if v, _ := scene.Tile("ground", 2, 2); v != 0 {
		t.Fatalf("undo must restore the first old value 0, got %d", v)
	}
}

func TestMacroRuntimeErrorRollsBack(t *testing.T) {
	r, scene, hist := newTestRunner()
	src := `
editor.set_tile("ground", 1, 1, 5)
zero := 0
bad := 1 / zero
`
	_, err := r.Run("broken", []byte(src))
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Fatalf("error should name the macro, got %v", err)
	}
	if v, _ := scene.Tile("ground", 1, 1); v != 0 {
		t.Fatalf("failed run must roll back its writes, got %d at (1,1)", v)
	}
	if hist.Depth() != 0 {
		t.Fatalf("failed run must push nothing, got depth %d", hist.Depth())
	}
}

func TestMacroGetTileAndBounds(t *testing.T) {
	r, scene, _ := newTestRunner()
	scene.SetTile("ground", 4, 4, 7)
	src := `
v := editor.get_tile("ground", 4, 4)
editor.set_tile("ground", 0, 0, v)
ok := editor.set_tile("ground", -1, 0, 3)
if ok {
	editor.set_tile("ground", 1, 0, 99)
}
`
	n, err := r.Run("reader", []byte(src))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only the in-bounds write, got %d", n)
	}
	if v, _ := scene.Tile("ground", 0, 0); v != 7 {
		t.Fatalf("expected the read value 7 propagated, got %d", v)
	}
}

func TestMacroFill(t *testing.T) {
	r, scene, hist := newTestRunner()
	// wall down column 3 splits the layer
	for y := 0; y < scene.Height; y++ {
		scene.SetTile("ground", 3, y, 9)
	}
	src := `editor.fill("ground", 0, 0, 4)`

	n, err := r.Run("bucket", []byte(src))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n != 24 {
		t.Fatalf("expected the left region's 24 cells, got %d", n)
	}
	if v, _ := scene.Tile("ground", 5, 0); v != 0 {
		t.Fatalf("fill leaked across the wall, got %d at (5,0)", v)
	}
	if hist.Depth() != 1 {
		t.Fatalf("expected 1 undo step, got %d", hist.Depth())
	}
	hist.Undo()
	if v, _ := scene.Tile("ground", 0, 0); v != 0 {
		t.Fatalf("undo did not restore, got %d", v)
	}
	if v, _ := scene.Tile("ground", 3, 0); v != 9 {
		t.Fatalf("undo must leave the wall alone, got %d", v)
	}
}

func TestMacroNoWritesPushesNothing(t *testing.T) {
	r, _, hist := newTestRunner()
	src := `
w := editor.width
h := editor.height
total := w * h
`

	n, err := r.Run("readonly", []byte(src))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n != 0 || hist.Depth() != 0 {
		t.Fatalf("a read-only macro must change nothing, got n=%d depth=%d", n, hist.Depth())
	}
}
