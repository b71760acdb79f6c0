// Package tools implements the tile/entity editing engine: the paint,
// erase, fill and select tools, the clipboard, and the dispatcher that
// routes pointer gestures to whichever tool is active. Tools mutate the
// shared scene in place and record reversible operations on the history
// manager; a drag gesture always lands as one undo step.
package tools

import "github.com/milk9111/leveledit/geom"

// Tool identifies one of the closed set of editing tools.
type Tool int

const (
	ToolPaint Tool = iota
	ToolErase
	ToolFill
	ToolSelect
)

func (t Tool) String() string {
	switch t {
	case ToolPaint:
		return "Paint"
	case ToolErase:
		return "Erase"
	case ToolFill:
		return "Fill"
	case ToolSelect:
		return "Select"
	default:
		return "Unknown"
	}
}

// Transform is the viewport contract tools depend on. The concrete pan/zoom
// state behind it is opaque.
type Transform interface {
	ScreenToWorld(sx, sy float64) (float64, float64)
	ScreenToTileWithOffset(sx, sy float64, tileSize int, offsetY float64) geom.Point
}

// GestureHandler is one pointer-down -> move* -> up interaction. Cancel
// resets transient gesture state without committing; the gesture driver
// guarantees a terminal End or Cancel even on pointer-capture loss.
type GestureHandler interface {
	Start(sx, sy float64, vp Transform)
	Move(sx, sy float64, vp Transform)
	End(sx, sy float64, vp Transform)
	Cancel()
}

// Dispatcher routes gesture calls to the active tool. It is the single
// dispatch point; per-tool logic never inspects the current tool itself.
type Dispatcher struct {
	ctx    *Context
	paint  *PaintTool
	erase  *EraseTool
	fill   *FillTool
	sel    *SelectTool
	inGest bool
	target GestureHandler
}

func NewDispatcher(ctx *Context) *Dispatcher {
	return &Dispatcher{
		ctx:   ctx,
		paint: NewPaintTool(ctx),
		erase: NewEraseTool(ctx),
		fill:  NewFillTool(ctx),
		sel:   NewSelectTool(ctx),
	}
}

func (d *Dispatcher) active() GestureHandler {
	switch d.ctx.State.CurrentTool {
	case ToolErase:
		return d.erase
	case ToolFill:
		return d.fill
	case ToolSelect:
		return d.sel
	default:
		return d.paint
	}
}

// Select exposes the select tool for toolbar actions (arm move/paste/fill,
// copy, delete, duplicate).
func (d *Dispatcher) Select() *SelectTool { return d.sel }

// SetTool switches the active tool, cancelling any gesture in flight and
// discarding the select tool's ephemeral selection state.
func (d *Dispatcher) SetTool(t Tool) {
	if t == d.ctx.State.CurrentTool {
		return
	}
	if d.inGest && d.target != nil {
		d.target.Cancel()
		d.inGest = false
		d.target = nil
	}
	if d.ctx.State.CurrentTool == ToolSelect {
		d.sel.Reset()
	}
	d.ctx.State.CurrentTool = t
}

func (d *Dispatcher) Start(sx, sy float64, vp Transform) {
	// a lost End leaves the previous gesture open; close it out first
	if d.inGest && d.target != nil {
		d.target.Cancel()
	}
	d.target = d.active()
	d.inGest = true
	d.target.Start(sx, sy, vp)
}

func (d *Dispatcher) Move(sx, sy float64, vp Transform) {
	if !d.inGest || d.target == nil {
		return
	}
	d.target.Move(sx, sy, vp)
}

func (d *Dispatcher) End(sx, sy float64, vp Transform) {
	if !d.inGest || d.target == nil {
		return
	}
	d.target.End(sx, sy, vp)
	d.inGest = false
	d.target = nil
}

// Cancel aborts the gesture in flight without committing.
func (d *Dispatcher) Cancel() {
	if !d.inGest || d.target == nil {
		return
	}
	d.target.Cancel()
	d.inGest = false
	d.target = nil
}

// LongPress forwards a long-press to the select tool's entity controller;
// other tools have no long-press behavior.
func (d *Dispatcher) LongPress(sx, sy float64, vp Transform) {
	if d.ctx.State.CurrentTool == ToolSelect {
		d.sel.LongPress(sx, sy, vp)
	}
}
