package tools

import "github.com/milk9111/leveledit/level"

// TileSelection is the palette pick: a category plus a local index inside
// that category's tileset.
type TileSelection struct {
	Category string
	Index    int
}

// EditorState is the shared editor-wide state every tool reads: the active
// tool and layer, the palette pick, per-layer locks and the entity options.
// The front-end mutates it by reference; tools only ever read it, except
// for the select tool restoring its own mode through undo.
type EditorState struct {
	CurrentTool        Tool
	ActiveLayer        string
	SelectedTile       *TileSelection
	LayerLocks         map[string]bool
	LayerVisible       map[string]bool
	EntitySnapToGrid   bool
	SelectedEntityType string
	BrushSize          int
}

func NewEditorState() *EditorState {
	locks := make(map[string]bool)
	visible := make(map[string]bool)
	return &EditorState{
		CurrentTool:  ToolPaint,
		ActiveLayer:  level.LayerGround,
		LayerLocks:   locks,
		LayerVisible: visible,
		BrushSize:    1,
	}
}

// LayerLocked reports whether the named layer refuses mutation.
func (s *EditorState) LayerLocked(layer string) bool {
	return s.LayerLocks[layer]
}
