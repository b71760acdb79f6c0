// Package level holds the scene data model: named tile layers, the tileset
// table used to resolve palette picks into stored global ids, and placed
// entity instances. Tools mutate a Scene in place; nothing here renders.
package level

// Canonical layer names. Ground and props store tileset global ids;
// collision and triggers are binary (0/1).
const (
	LayerGround    = "ground"
	LayerProps     = "props"
	LayerCollision = "collision"
	LayerTriggers  = "triggers"
)

// LayerNames lists every layer in draw order, bottom to top.
var LayerNames = []string{LayerGround, LayerProps, LayerCollision, LayerTriggers}

// IsBinaryLayer reports whether the layer stores only 0/1 values.
func IsBinaryLayer(name string) bool {
	return name == LayerCollision || name == LayerTriggers
}

// TilesetRef maps a palette category onto a contiguous global-id range.
type TilesetRef struct {
	Category string `json:"category"`
	FirstGID int    `json:"first_gid"`
	Count    int    `json:"count"`
	Image    string `json:"image,omitempty"`
	TileW    int    `json:"tile_w,omitempty"`
	TileH    int    `json:"tile_h,omitempty"`
}

// EntityInstance is a placed entity in world (pixel) coordinates. The ID is
// stable across move and duplicate and is the join key for undo operations.
type EntityInstance struct {
	ID    int                    `json:"id"`
	Type  string                 `json:"type"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Clone deep-copies the instance, including its props map.
func (e *EntityInstance) Clone() *EntityInstance {
	c := *e
	if e.Props != nil {
		c.Props = make(map[string]interface{}, len(e.Props))
		for k, v := range e.Props {
			c.Props[k] = v
		}
	}
	return &c
}

// Scene is the single mutable aggregate the editor operates on.
type Scene struct {
	Name     string             `json:"name,omitempty"`
	Width    int                `json:"width"`
	Height   int                `json:"height"`
	TileSize int                `json:"tile_size"`
	Layers   map[string][][]int `json:"layers"`
	Tilesets []TilesetRef       `json:"tilesets,omitempty"`
	Entities []*EntityInstance  `json:"entities,omitempty"`
}

// NewScene builds an empty scene with all canonical layers allocated.
func NewScene(width, height, tileSize int) *Scene {
	s := &Scene{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		Layers:   make(map[string][][]int, len(LayerNames)),
	}
	for _, name := range LayerNames {
		s.Layers[name] = newGrid(width, height)
	}
	return s
}

func newGrid(width, height int) [][]int {
	grid := make([][]int, height)
	for y := range grid {
		grid[y] = make([]int, width)
	}
	return grid
}

// InBounds reports whether the tile coordinate lies inside the scene.
func (s *Scene) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.Width && y < s.Height
}

// Tile returns the value at (x,y) on the named layer. The second return is
// false when the layer is unknown or the coordinate is out of bounds.
func (s *Scene) Tile(layer string, x, y int) (int, bool) {
	grid, ok := s.Layers[layer]
	if !ok || !s.InBounds(x, y) {
		return 0, false
	}
	return grid[y][x], true
}

// SetTile writes v at (x,y) on the named layer. Out-of-bounds writes and
// unknown layers are dropped. Returns true only when the stored value
// actually changed.
func (s *Scene) SetTile(layer string, x, y, v int) bool {
	grid, ok := s.Layers[layer]
	if !ok || !s.InBounds(x, y) {
		return false
	}
	if grid[y][x] == v {
		return false
	}
	grid[y][x] = v
	return true
}

// GIDForTile resolves a (category, local index) palette pick into the global
// id stored in layer cells. The second return is false when no tileset is
// configured for the category or the index falls outside its range.
func (s *Scene) GIDForTile(category string, localIndex int) (int, bool) {
	if localIndex < 0 {
		return 0, false
	}
	for _, ref := range s.Tilesets {
		if ref.Category != category {
			continue
		}
		if ref.Count > 0 && localIndex >= ref.Count {
			return 0, false
		}
		return ref.FirstGID + localIndex, true
	}
	return 0, false
}

// PixelWidth and PixelHeight are the scene extents in world pixels.
func (s *Scene) PixelWidth() int  { return s.Width * s.TileSize }
func (s *Scene) PixelHeight() int { return s.Height * s.TileSize }
