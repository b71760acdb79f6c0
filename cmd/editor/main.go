package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/leveledit/entity"
	"github.com/milk9111/leveledit/history"
	"github.com/milk9111/leveledit/level"
	"github.com/milk9111/leveledit/script"
	"github.com/milk9111/leveledit/tileset"
	"github.com/milk9111/leveledit/tools"
	"github.com/milk9111/leveledit/viewport"
)

const (
	defaultCols     = 40
	defaultRows     = 23
	defaultTileSize = 32
	leftPanelWidth  = 240
)

func main() {
	levelName := flag.String("level", "", "Level to load from levels/ (basename, .json optional)")
	tilesetDir := flag.String("tilesets", "tilesets", "Directory with tileset spec YAML files")
	macroDir := flag.String("macros", "macros", "Directory with tengo macro scripts")
	flag.Parse()

	log.Println("Editor starting...")

	var scene *level.Scene
	savePath := ""
	if *levelName != "" {
		path := normalizeLevelPath(*levelName)
		loaded, err := level.Load(path)
		if err != nil {
			log.Printf("Failed to load level %s: %v", path, err)
		} else {
			scene = loaded
			savePath = path
			log.Printf("Loaded level: %s", path)
		}
	}
	if scene == nil {
		scene = level.NewScene(defaultCols, defaultRows, defaultTileSize)
	}

	applyTilesetSpecs(scene, *tilesetDir)

	state := tools.NewEditorState()
	for _, name := range level.LayerNames {
		state.LayerVisible[name] = true
	}
	hist := history.NewManager()
	entities := entity.NewManager(scene)

	game := &EditorGame{
		scene:      scene,
		state:      state,
		entities:   entities,
		vp:         viewport.Viewport{OffsetX: leftPanelWidth, Zoom: 1.0},
		savePath:   savePath,
		macroDir:   *macroDir,
		tilesetDir: *tilesetDir,
		sysClip:    newSystemClipboard(),
		preview:    newPhysicsPreview(),
	}

	ctx := &tools.Context{
		Scene:    scene,
		State:    state,
		History:  hist,
		Entities: entities,
		OnSceneChanged: func(*level.Scene) {
			game.sceneDirty = true
		},
		Warnf: log.Printf,
	}
	game.ctx = ctx
	game.dispatcher = tools.NewDispatcher(ctx)
	game.macros = script.NewRunner(scene, hist)

	if w, err := tileset.NewWatcher(*tilesetDir); err != nil {
		log.Printf("Tileset watcher disabled: %v", err)
	} else {
		game.watcher = w
		defer w.Close()
	}

	game.buildUI()
	game.canvas = newCanvasRenderer(defaultTileSize)

	ebiten.SetFullscreen(true)
	ebiten.SetWindowTitle("Level Editor")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func normalizeLevelPath(name string) string {
	base := filepath.Base(name)
	if filepath.Ext(base) == "" {
		base += ".json"
	}
	return filepath.Join("levels", base)
}

// applyTilesetSpecs loads every spec file in dir onto the scene; the last
// file wins on a category collision, same as a reload.
func applyTilesetSpecs(scene *level.Scene, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("No tileset dir %s: %v", dir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		spec, err := tileset.LoadSpec(path)
		if err != nil {
			log.Printf("Skipping tileset spec: %v", err)
			continue
		}
		spec.Apply(scene)
		log.Printf("Tileset spec applied: %s (%d categories)", path, len(spec.Categories))
	}
}
