// Package script runs user macros written in tengo against the scene. A
// macro gets an `editor` module with tile accessors and mutators; every
// write a run performs lands on the history stack as one undo step.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/leveledit/geom"
	"github.com/milk9111/leveledit/history"
	"github.com/milk9111/leveledit/level"
	"github.com/milk9111/leveledit/tools"
)

// Runner compiles and executes macros against one scene.
type Runner struct {
	scene   *level.Scene
	history *history.Manager

	// OnSceneChanged fires once after a run that changed anything. May be
	// nil.
	OnSceneChanged func(*level.Scene)
}

func NewRunner(scene *level.Scene, hist *history.Manager) *Runner {
	return &Runner{scene: scene, history: hist}
}

type cellKey struct {
	layer string
	p     geom.Point
}

// recorder coalesces macro writes into one diff, first old value per cell
// winning, same as a drag gesture.
type recorder struct {
	scene   *level.Scene
	changes []level.TileChange
	seen    map[cellKey]int
}

func (r *recorder) set(layer string, x, y, v int) bool {
	old, ok := r.scene.Tile(layer, x, y)
	if !ok {
		return false
	}
	key := cellKey{layer: layer, p: geom.Point{X: x, Y: y}}
	if idx, dup := r.seen[key]; dup {
		if old == v {
			return false
		}
		r.scene.SetTile(layer, x, y, v)
		r.changes[idx].NewValue = v
		return true
	}
	if old == v {
		return false
	}
	r.scene.SetTile(layer, x, y, v)
	r.seen[key] = len(r.changes)
	r.changes = append(r.changes, level.TileChange{
		Layer: layer, X: x, Y: y, OldValue: old, NewValue: v,
	})
	return true
}

// Run executes the macro source. Returns the number of cells changed.
func (r *Runner) Run(name string, src []byte) (int, error) {
	rec := &recorder{scene: r.scene, seen: make(map[cellKey]int)}

	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := s.Add("editor", buildEditorModule(r.scene, rec)); err != nil {
		return 0, fmt.Errorf("script: bind %s: %w", name, err)
	}
	if err := runScript(name, s); err != nil {
		// roll back whatever the failed run already wrote
		level.ApplyChanges(r.scene, rec.changes, true)
		return 0, err
	}

	if len(rec.changes) == 0 {
		return 0, nil
	}
	scene := r.scene
	changes := rec.changes
	notify := func() {
		if r.OnSceneChanged != nil {
			r.OnSceneChanged(scene)
		}
	}
	r.history.Push(&history.Operation{
		Type:        "macro",
		Description: "Macro " + name,
		Execute: func() {
			level.ApplyChanges(scene, changes, false)
			notify()
		},
		Undo: func() {
			level.ApplyChanges(scene, changes, true)
			notify()
		},
	})
	notify()
	return len(changes), nil
}

// runScript executes the compiled macro. The tengo VM panics on some
// runtime faults (integer divide by zero among them); those surface here as
// errors so a broken macro never takes the editor down with it.
func runScript(name string, s *tengo.Script) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script: run %s: %v", name, p)
		}
	}()
	if _, runErr := s.Run(); runErr != nil {
		return fmt.Errorf("script: run %s: %w", name, runErr)
	}
	return nil
}

func buildEditorModule(scene *level.Scene, rec *recorder) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["width"] = &tengo.Int{Value: int64(scene.Width)}
	values["height"] = &tengo.Int{Value: int64(scene.Height)}

	layerNames := make([]tengo.Object, 0, len(level.LayerNames))
	for _, n := range level.LayerNames {
		layerNames = append(layerNames, &tengo.String{Value: n})
	}
	values["layers"] = &tengo.ImmutableArray{Value: layerNames}

	values["get_tile"] = &tengo.UserFunction{Name: "get_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		layer, ok := argString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "layer", Expected: "string", Found: args[0].TypeName()}
		}
		x, _ := argInt(args[1])
		y, _ := argInt(args[2])
		v, _ := scene.Tile(layer, x, y)
		return &tengo.Int{Value: int64(v)}, nil
	}}

	values["set_tile"] = &tengo.UserFunction{Name: "set_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		layer, ok := argString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "layer", Expected: "string", Found: args[0].TypeName()}
		}
		x, _ := argInt(args[1])
		y, _ := argInt(args[2])
		v, _ := argInt(args[3])
		if rec.set(layer, x, y, v) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["fill"] = &tengo.UserFunction{Name: "fill", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		layer, ok := argString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "layer", Expected: "string", Found: args[0].TypeName()}
		}
		x, _ := argInt(args[1])
		y, _ := argInt(args[2])
		v, _ := argInt(args[3])
		target, ok := scene.Tile(layer, x, y)
		if !ok || target == v {
			return &tengo.Int{Value: 0}, nil
		}
		res := tools.FloodFill(tools.FillRequest{
			Scene: scene, Layer: layer, StartX: x, StartY: y, FillValue: v,
		})
		for _, p := range res.Changed {
			key := cellKey{layer: layer, p: p}
			if _, dup := rec.seen[key]; dup {
				rec.changes[rec.seen[key]].NewValue = v
				continue
			}
			rec.seen[key] = len(rec.changes)
			rec.changes = append(rec.changes, level.TileChange{
				Layer: layer, X: p.X, Y: p.Y, OldValue: target, NewValue: v,
			})
		}
		return &tengo.Int{Value: int64(res.Count)}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func argString(o tengo.Object) (string, bool) {
	if s, ok := o.(*tengo.String); ok {
		return s.Value, true
	}
	return "", false
}

func argInt(o tengo.Object) (int, bool) {
	switch v := o.(type) {
	case *tengo.Int:
		return int(v.Value), true
	case *tengo.Float:
		return int(v.Value), true
	}
	return 0, false
}
