package tools

import "github.com/milk9111/leveledit/level"

// Clipboard holds one selection snapshot. Copies in and out are deep, so a
// pasted selection can be edited without disturbing the clipboard and
// repeated pastes stay independent. Clipboard content is not undoable.
type Clipboard struct {
	data *level.SelectionData
}

func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Copy stores a deep copy of the selection.
func (c *Clipboard) Copy(data *level.SelectionData) {
	if data == nil {
		return
	}
	c.data = data.Clone()
}

// Paste returns a deep copy of the stored selection, or nil when empty.
func (c *Clipboard) Paste() *level.SelectionData {
	if c.data == nil {
		return nil
	}
	return c.data.Clone()
}

func (c *Clipboard) HasData() bool { return c.data != nil }

func (c *Clipboard) Clear() { c.data = nil }
