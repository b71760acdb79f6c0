package main

import (
	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/leveledit/level"
	"github.com/milk9111/leveledit/tools"
)

// LayerEntry is one row in the layer list.
type LayerEntry struct {
	Index int
	Name  string
	Label string
}

// LayerPanel shows the four canonical layers with their lock and
// visibility state. The layer set is fixed; only state changes.
type LayerPanel struct {
	list    *widget.List
	entries []any

	// suppressEvents, when true, keeps programmatic selection from being
	// handled as a user click.
	suppressEvents bool
}

func NewLayerPanel() *LayerPanel {
	return &LayerPanel{}
}

func layerLabel(name string, state *tools.EditorState) string {
	label := name
	if state.LayerLocks[name] {
		label += " [locked]"
	}
	if !state.LayerVisible[name] {
		label += " [hidden]"
	}
	return label
}

// Refresh rebuilds the row labels from the current lock/visibility state,
// preserving the selection.
func (lp *LayerPanel) Refresh(state *tools.EditorState) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	selected := -1
	entries := make([]any, len(level.LayerNames))
	for i, name := range level.LayerNames {
		entries[i] = LayerEntry{Index: i, Name: name, Label: layerLabel(name, state)}
		if name == state.ActiveLayer {
			selected = i
		}
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	if selected >= 0 {
		lp.list.SetSelectedEntry(entries[selected])
	}
	lp.suppressEvents = false
}

func (lp *LayerPanel) SetSelected(idx int) {
	if lp == nil || lp.list == nil {
		return
	}
	if idx < 0 || idx >= len(lp.entries) {
		return
	}
	lp.suppressEvents = true
	lp.list.SetSelectedEntry(lp.entries[idx])
	lp.suppressEvents = false
}
