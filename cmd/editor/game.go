package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/leveledit/entity"
	"github.com/milk9111/leveledit/history"
	"github.com/milk9111/leveledit/level"
	"github.com/milk9111/leveledit/script"
	"github.com/milk9111/leveledit/tileset"
	"github.com/milk9111/leveledit/tools"
	"github.com/milk9111/leveledit/viewport"
)

// longPressDelay is how long a held pointer counts as a long-press.
const longPressDelay = 500 * time.Millisecond

// EditorGame wires the editing engine to ebiten: it translates raw mouse
// state into pointer gestures for the dispatcher, owns the pan/zoom
// viewport, and hosts the ebitenui chrome around the canvas.
type EditorGame struct {
	ctx        *tools.Context
	dispatcher *tools.Dispatcher
	scene      *level.Scene
	state      *tools.EditorState
	entities   *entity.Manager
	vp         viewport.Viewport
	canvas     *canvasRenderer
	macros     *script.Runner
	watcher    *tileset.Watcher
	sysClip    *systemClipboard
	preview    *physicsPreview

	ui            *ebitenui.UI
	toolBar       *ToolBar
	layerPanel    *LayerPanel
	fileNameInput *widget.TextInput
	paletteInfo   *widget.Text

	savePath   string
	macroDir   string
	tilesetDir string

	// gesture driver state
	pointerDown    bool
	pressAt        time.Time
	longPressFired bool
	isPanning      bool
	lastPanX       int
	lastPanY       int
	lastTool       tools.Tool

	sceneDirty bool
}

func (g *EditorGame) Update() error {
	g.drainTilesetEvents()

	// typing in a text field must not trigger hotkeys
	suppressHotkeys := false
	if g.ui != nil {
		if fw := g.ui.GetFocusedWidget(); fw != nil {
			if _, ok := fw.(*widget.TextInput); ok {
				suppressHotkeys = true
			}
		}
	}
	if !suppressHotkeys {
		g.handleHotkeys()
	}

	if g.state.CurrentTool != g.lastTool {
		if g.toolBar != nil {
			g.toolBar.SetTool(g.state.CurrentTool)
		}
		g.lastTool = g.state.CurrentTool
	}

	if g.ui != nil {
		g.ui.Update()
	}

	g.handlePanZoom()
	g.handleGesture()

	if g.preview.active {
		g.preview.step(1.0 / 60.0)
	}
	return nil
}

func (g *EditorGame) handleHotkeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	// tool switching
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.setTool(tools.ToolPaint)
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.setTool(tools.ToolErase)
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.setTool(tools.ToolFill)
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.setTool(tools.ToolSelect)
	}

	// undo / redo
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.ctx.History.Undo()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY) {
		g.ctx.History.Redo()
	}

	// selection actions (select tool owns all of these)
	sel := g.dispatcher.Select()
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if sel.Selection() != nil {
			sel.CopySelection()
			g.sysClip.WriteSelection(sel.Clipboard().Paste())
		}
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.setTool(tools.ToolSelect)
		if data, ok := g.sysClip.ReadSelection(); ok {
			sel.Clipboard().Copy(data)
		}
		sel.ArmPaste()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyM) {
		sel.ArmMove()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.setTool(tools.ToolSelect)
		sel.ArmFill()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyD) {
		sel.DuplicateEntities()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if len(sel.SelectedEntities()) > 0 {
			sel.DeleteEntities()
		} else {
			sel.DeleteSelection()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.dispatcher.Cancel()
		sel.ClearSelection()
	}

	// layers
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) && !ctrl {
		g.cycleLayer(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) && !ctrl {
		g.cycleLayer(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.toggleLayerLock(g.state.ActiveLayer)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) && !ctrl {
		g.toggleLayerVisible(g.state.ActiveLayer)
	}

	// brush size
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) && g.state.BrushSize < 3 {
		g.state.BrushSize++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) && g.state.BrushSize > 1 {
		g.state.BrushSize--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.state.EntitySnapToGrid = !g.state.EntitySnapToGrid
	}

	// file
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveLevel()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.loadLevel()
	}

	// extras
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePhysicsPreview()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		g.runMacros()
	}
}

func (g *EditorGame) setTool(t tools.Tool) {
	g.dispatcher.SetTool(t)
}

func (g *EditorGame) cycleLayer(dir int) {
	idx := 0
	for i, name := range level.LayerNames {
		if name == g.state.ActiveLayer {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(level.LayerNames)) % len(level.LayerNames)
	g.state.ActiveLayer = level.LayerNames[idx]
	if g.layerPanel != nil {
		g.layerPanel.SetSelected(idx)
	}
}

func (g *EditorGame) toggleLayerLock(name string) {
	g.state.LayerLocks[name] = !g.state.LayerLocks[name]
	if g.layerPanel != nil {
		g.layerPanel.Refresh(g.state)
	}
}

func (g *EditorGame) toggleLayerVisible(name string) {
	g.state.LayerVisible[name] = !g.state.LayerVisible[name]
	if g.layerPanel != nil {
		g.layerPanel.Refresh(g.state)
	}
}

func (g *EditorGame) handlePanZoom() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.isPanning = true
		g.lastPanX, g.lastPanY = ebiten.CursorPosition()
	}
	if g.isPanning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cx, cy := ebiten.CursorPosition()
		g.vp.Pan(float64(cx-g.lastPanX), float64(cy-g.lastPanY))
		g.lastPanX, g.lastPanY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.isPanning = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		cx, cy := ebiten.CursorPosition()
		factor := 1.1
		if wy < 0 {
			factor = 1.0 / 1.1
		}
		g.vp.ZoomAt(float64(cx), float64(cy), factor)
	}
}

// handleGesture turns raw mouse state into the dispatcher's pointer-down,
// move, long-press and release events. Clicks that land on UI chrome never
// reach the tools.
func (g *EditorGame) handleGesture() {
	cx, cy := ebiten.CursorPosition()
	fx, fy := float64(cx), float64(cy)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ebuiinput.UIHovered || cx < leftPanelWidth {
			return
		}
		if g.preview.active {
			wx, wy := g.vp.ScreenToWorld(fx, fy)
			g.preview.spawnBall(wx, wy)
			return
		}
		g.pointerDown = true
		g.pressAt = time.Now()
		g.longPressFired = false
		g.dispatcher.Start(fx, fy, g.vp)
		return
	}
	if !g.pointerDown {
		return
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dispatcher.Move(fx, fy, g.vp)
		if !g.longPressFired && time.Since(g.pressAt) >= longPressDelay {
			g.longPressFired = true
			g.dispatcher.LongPress(fx, fy, g.vp)
		}
		return
	}
	g.pointerDown = false
	g.dispatcher.End(fx, fy, g.vp)
}

func (g *EditorGame) drainTilesetEvents() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			spec, err := tileset.LoadSpec(path)
			if err != nil {
				log.Printf("Tileset reload failed: %v", err)
				continue
			}
			spec.Apply(g.scene)
			log.Printf("Tileset reloaded: %s", path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Tileset watcher: %v", err)
		default:
			return
		}
	}
}

func (g *EditorGame) saveLevel() {
	name := g.savePath
	if g.fileNameInput != nil {
		if typed := strings.TrimSpace(g.fileNameInput.GetText()); typed != "" {
			name = typed
		}
	}
	if name == "" {
		log.Println("No filename specified; save aborted")
		return
	}
	path := normalizeLevelPath(name)
	if err := level.Save(g.scene, path); err != nil {
		log.Printf("Save failed: %v", err)
		return
	}
	g.savePath = path
	g.sceneDirty = false
	log.Printf("Saved level: %s", path)
}

// loadLevel replaces the working scene with the file named in the File
// field. The undo history does not survive a load.
func (g *EditorGame) loadLevel() {
	if g.fileNameInput == nil {
		return
	}
	name := strings.TrimSpace(g.fileNameInput.GetText())
	if name == "" {
		log.Println("No filename specified; load aborted")
		return
	}
	path := normalizeLevelPath(name)
	loaded, err := level.Load(path)
	if err != nil {
		log.Printf("Load failed: %v", err)
		return
	}
	applyTilesetSpecs(loaded, g.tilesetDir)

	g.scene = loaded
	g.entities = entity.NewManager(loaded)
	g.ctx.Scene = loaded
	g.ctx.Entities = g.entities
	g.ctx.History = history.NewManager()
	g.macros = script.NewRunner(loaded, g.ctx.History)
	g.dispatcher.Select().Reset()
	g.preview.active = false
	g.savePath = path
	g.sceneDirty = false
	log.Printf("Loaded level: %s", path)
}

func (g *EditorGame) togglePhysicsPreview() {
	if g.preview.active {
		g.preview.active = false
		return
	}
	g.preview.rebuild(g.scene)
	g.preview.active = true
	log.Println("Physics preview on; click to drop a ball")
}

// runMacros executes every .tengo file in the macro directory, in name
// order. Each file lands as its own undo step.
func (g *EditorGame) runMacros() {
	entries, err := os.ReadDir(g.macroDir)
	if err != nil {
		log.Printf("No macro dir %s: %v", g.macroDir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".tengo" {
			continue
		}
		path := filepath.Join(g.macroDir, e.Name())
		src, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Macro read failed: %v", err)
			continue
		}
		n, err := g.macros.Run(e.Name(), src)
		if err != nil {
			log.Printf("Macro failed: %v", err)
			continue
		}
		log.Printf("Macro %s changed %d cells", e.Name(), n)
	}
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	g.canvas.draw(screen, g)
	if g.preview.active {
		g.preview.draw(screen, g.vp, g.canvas.pixel)
	}
	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ebiten.Monitor().Size()
}
