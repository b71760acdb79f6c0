package tools

import (
	"fmt"

	"github.com/milk9111/leveledit/entity"
	"github.com/milk9111/leveledit/history"
	"github.com/milk9111/leveledit/level"
	"github.com/milk9111/leveledit/viewport"
)

// newTestContext builds a 10x10 scene with 32px tiles, a terrain tileset
// whose local index N resolves to gid N+1, and a terrain tile selected so
// content-layer paints write 7 by default.
func newTestContext() (*Context, *level.Scene) {
	scene := level.NewScene(10, 10, 32)
	scene.Tilesets = []level.TilesetRef{
		{Category: "terrain", FirstGID: 1, Count: 100},
	}
	state := NewEditorState()
	state.SelectedTile = &TileSelection{Category: "terrain", Index: 6}
	ctx := &Context{
		Scene:    scene,
		State:    state,
		History:  history.NewManager(),
		Entities: entity.NewManager(scene),
	}
	return ctx, scene
}

// identityVP maps screen pixels 1:1 to world pixels.
func identityVP() viewport.Viewport {
	return viewport.New()
}

// at returns a screen coordinate inside tile (x,y) under the identity
// viewport.
func at(x, y int) (float64, float64) {
	return float64(x*32 + 4), float64(y*32 + 4)
}

// gridCopy snapshots a layer for exact before/after comparison.
func gridCopy(s *level.Scene, layer string) [][]int {
	src := s.Layers[layer]
	out := make([][]int, len(src))
	for y, row := range src {
		out[y] = make([]int, len(row))
		copy(out[y], row)
	}
	return out
}

func gridsEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for y := range a {
		if len(a[y]) != len(b[y]) {
			return false
		}
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}
	return true
}

func gridString(g [][]int) string {
	out := ""
	for _, row := range g {
		out += fmt.Sprint(row) + "\n"
	}
	return out
}

// fillLayer sets every cell of a layer to v, bypassing tools.
func fillLayer(s *level.Scene, layer string, v int) {
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			s.Layers[layer][y][x] = v
		}
	}
}
