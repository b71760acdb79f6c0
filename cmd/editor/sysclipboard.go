package main

import (
	"encoding/json"
	"log"

	"golang.design/x/clipboard"

	"github.com/milk9111/leveledit/level"
)

// systemClipboard mirrors tile selections to the OS clipboard as JSON so a
// copied region can travel between editor instances. The in-process
// clipboard keeps working even when OS clipboard access is unavailable.
type systemClipboard struct {
	ready bool
}

func newSystemClipboard() *systemClipboard {
	sc := &systemClipboard{}
	if err := clipboard.Init(); err != nil {
		log.Printf("System clipboard unavailable: %v", err)
		return sc
	}
	sc.ready = true
	return sc
}

func (sc *systemClipboard) WriteSelection(data *level.SelectionData) {
	if sc == nil || !sc.ready || data == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("Clipboard encode failed: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, raw)
}

// ReadSelection parses the OS clipboard text as a selection payload. The
// second return is false when the clipboard holds anything else.
func (sc *systemClipboard) ReadSelection() (*level.SelectionData, bool) {
	if sc == nil || !sc.ready {
		return nil, false
	}
	raw := clipboard.Read(clipboard.FmtText)
	if len(raw) == 0 {
		return nil, false
	}
	var data level.SelectionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false
	}
	if data.Bounds.Width <= 0 || data.Bounds.Height <= 0 || len(data.Tiles) != data.Bounds.Height {
		return nil, false
	}
	return &data, true
}
