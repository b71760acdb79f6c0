package level

import "testing"

func TestNormalizeBounds(t *testing.T) {
	s := NewScene(10, 10, 32)
	cases := []struct {
		name           string
		x0, y0, x1, y1 int
		want           SelectionBounds
	}{
		{"ordered", 2, 2, 4, 4, SelectionBounds{StartX: 2, StartY: 2, Width: 3, Height: 3, Layer: LayerGround}},
		{"swapped", 4, 4, 2, 2, SelectionBounds{StartX: 2, StartY: 2, Width: 3, Height: 3, Layer: LayerGround}},
		{"degenerate_tap", 7, 3, 7, 3, SelectionBounds{StartX: 7, StartY: 3, Width: 1, Height: 1, Layer: LayerGround}},
		{"clamped", -2, 8, 14, 14, SelectionBounds{StartX: 0, StartY: 8, Width: 10, Height: 2, Layer: LayerGround}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NormalizeBounds(s, LayerGround, c.x0, c.y0, c.x1, c.y1)
			if got != c.want {
				t.Fatalf("expected %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestClampBounds(t *testing.T) {
	s := NewScene(10, 10, 32)
	b := ClampBounds(s, SelectionBounds{StartX: 8, StartY: -3, Width: 3, Height: 3, Layer: LayerGround})
	want := SelectionBounds{StartX: 7, StartY: 0, Width: 3, Height: 3, Layer: LayerGround}
	if b != want {
		t.Fatalf("expected %+v, got %+v", want, b)
	}
}

func TestCaptureSelectionIsDeepCopy(t *testing.T) {
	s := NewScene(10, 10, 32)
	s.SetTile(LayerGround, 2, 2, 7)
	data := CaptureSelection(s, SelectionBounds{StartX: 2, StartY: 2, Width: 2, Height: 2, Layer: LayerGround})
	if data.Tiles[0][0] != 7 {
		t.Fatalf("expected snapshot to capture 7, got %d", data.Tiles[0][0])
	}

	s.SetTile(LayerGround, 2, 2, 9)
	if data.Tiles[0][0] != 7 {
		t.Fatalf("snapshot mutated by scene write: got %d", data.Tiles[0][0])
	}

	clone := data.Clone()
	clone.Tiles[0][0] = 99
	if data.Tiles[0][0] != 7 {
		t.Fatalf("clone write leaked into original: got %d", data.Tiles[0][0])
	}
}

func TestGIDForTile(t *testing.T) {
	s := NewScene(4, 4, 16)
	s.Tilesets = []TilesetRef{
		{Category: "terrain", FirstGID: 1, Count: 64},
		{Category: "props", FirstGID: 65, Count: 32},
	}

	cases := []struct {
		name     string
		category string
		index    int
		want     int
		ok       bool
	}{
		{"terrain_first", "terrain", 0, 1, true},
		{"terrain_mid", "terrain", 10, 11, true},
		{"props_offset", "props", 3, 68, true},
		{"out_of_range", "terrain", 64, 0, false},
		{"negative_index", "terrain", -1, 0, false},
		{"unknown_category", "water", 0, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := s.GIDForTile(c.category, c.index)
			if ok != c.ok || got != c.want {
				t.Fatalf("expected (%d, %v), got (%d, %v)", c.want, c.ok, got, ok)
			}
		})
	}
}

func TestSetTileBoundsAndChangeDetection(t *testing.T) {
	s := NewScene(3, 3, 16)
	if s.SetTile(LayerGround, -1, 0, 5) {
		t.Fatalf("out-of-bounds write should report no change")
	}
	if !s.SetTile(LayerGround, 1, 1, 5) {
		t.Fatalf("first write should report change")
	}
	if s.SetTile(LayerGround, 1, 1, 5) {
		t.Fatalf("identical write should report no change")
	}
	if s.SetTile("nope", 1, 1, 5) {
		t.Fatalf("unknown layer write should report no change")
	}
}
