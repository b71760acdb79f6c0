package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/leveledit/level"
	"github.com/milk9111/leveledit/tools"
)

// layerTints colors each canonical layer's tiles on the canvas. Content
// layers vary brightness a little by gid so adjacent tiles stay readable
// without the real tileset art.
var layerTints = map[string]color.RGBA{
	level.LayerGround:    {R: 100, G: 200, B: 255, A: 255},
	level.LayerProps:     {R: 180, G: 140, B: 255, A: 255},
	level.LayerCollision: {R: 255, G: 90, B: 90, A: 255},
	level.LayerTriggers:  {R: 255, G: 220, B: 80, A: 255},
}

// canvasRenderer draws the scene, the selection overlay and the entity
// markers. Everything is built from a 1x1 white pixel scaled and tinted
// per draw call.
type canvasRenderer struct {
	pixel     *ebiten.Image
	entityImg *ebiten.Image
	tileSize  int
}

func newCanvasRenderer(tileSize int) *canvasRenderer {
	px := ebiten.NewImage(1, 1)
	px.Fill(color.White)
	return &canvasRenderer{
		pixel:     px,
		entityImg: circleImage(tileSize, color.RGBA{R: 80, G: 220, B: 120, A: 220}),
		tileSize:  tileSize,
	}
}

func (c *canvasRenderer) draw(screen *ebiten.Image, g *EditorGame) {
	scene := g.scene
	vp := g.vp
	ts := float64(scene.TileSize)

	// layers bottom to top
	for _, name := range level.LayerNames {
		if !g.state.LayerVisible[name] {
			continue
		}
		tint := layerTints[name]
		grid := scene.Layers[name]
		for y, row := range grid {
			for x, v := range row {
				if v == 0 {
					continue
				}
				sx, sy := vp.WorldToScreen(float64(x)*ts, float64(y)*ts)
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Scale(ts*vp.Zoom, ts*vp.Zoom)
				op.GeoM.Translate(sx, sy)
				shade := gidShade(name, v)
				op.ColorScale.Scale(
					float32(tint.R)/255*shade,
					float32(tint.G)/255*shade,
					float32(tint.B)/255*shade,
					0.6,
				)
				screen.DrawImage(c.pixel, op)
			}
		}
	}

	c.drawGrid(screen, g)
	c.drawSelection(screen, g)
	c.drawEntities(screen, g)
	c.drawHover(screen, g)
}

// gidShade makes distinct gids visually distinct on content layers.
func gidShade(layer string, v int) float32 {
	if level.IsBinaryLayer(layer) {
		return 1
	}
	return 0.6 + float32(v%5)*0.1
}

func (c *canvasRenderer) drawGrid(screen *ebiten.Image, g *EditorGame) {
	scene := g.scene
	vp := g.vp
	ts := float64(scene.TileSize)
	w := float64(scene.PixelWidth())
	h := float64(scene.PixelHeight())
	gridColor := color.RGBA{R: 200, G: 200, B: 200, A: 64}

	for x := 0; x <= scene.Width; x++ {
		sx, sy := vp.WorldToScreen(float64(x)*ts, 0)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1, h*vp.Zoom)
		op.GeoM.Translate(sx, sy)
		scaleColor(op, gridColor)
		screen.DrawImage(c.pixel, op)
	}
	for y := 0; y <= scene.Height; y++ {
		sx, sy := vp.WorldToScreen(0, float64(y)*ts)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w*vp.Zoom, 1)
		op.GeoM.Translate(sx, sy)
		scaleColor(op, gridColor)
		screen.DrawImage(c.pixel, op)
	}
}

func (c *canvasRenderer) drawSelection(screen *ebiten.Image, g *EditorGame) {
	if g.state.CurrentTool != tools.ToolSelect {
		return
	}
	sel := g.dispatcher.Select()
	data := sel.Selection()
	if data == nil {
		return
	}
	b := data.Bounds
	dx, dy, moving := sel.MoveDelta()
	if !moving {
		dx, dy = 0, 0
	}
	fill := color.RGBA{R: 120, G: 180, B: 255, A: 70}
	if moving {
		fill = color.RGBA{R: 120, G: 255, B: 180, A: 70}
	}
	c.fillTileRect(screen, g, b.StartX+dx, b.StartY+dy, b.Width, b.Height, fill)
}

func (c *canvasRenderer) drawEntities(screen *ebiten.Image, g *EditorGame) {
	vp := g.vp
	selected := make(map[int]bool)
	for _, id := range g.dispatcher.Select().SelectedEntities() {
		selected[id] = true
	}
	for _, inst := range g.entities.All() {
		sx, sy := vp.WorldToScreen(inst.X, inst.Y)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(vp.Zoom, vp.Zoom)
		op.GeoM.Translate(sx, sy)
		if selected[inst.ID] {
			op.ColorScale.Scale(1.2, 1.1, 0.6, 1)
		}
		screen.DrawImage(c.entityImg, op)
	}
}

func (c *canvasRenderer) drawHover(screen *ebiten.Image, g *EditorGame) {
	cx, cy := ebiten.CursorPosition()
	if cx < leftPanelWidth {
		return
	}
	p := g.vp.ScreenToTile(float64(cx), float64(cy), g.scene.TileSize)
	if !g.scene.InBounds(p.X, p.Y) {
		return
	}
	c.fillTileRect(screen, g, p.X, p.Y, 1, 1, color.RGBA{R: 128, G: 128, B: 128, A: 0x88})
}

func (c *canvasRenderer) fillTileRect(screen *ebiten.Image, g *EditorGame, tx, ty, w, h int, col color.RGBA) {
	ts := float64(g.scene.TileSize)
	sx, sy := g.vp.WorldToScreen(float64(tx)*ts, float64(ty)*ts)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)*ts*g.vp.Zoom, float64(h)*ts*g.vp.Zoom)
	op.GeoM.Translate(sx, sy)
	scaleColor(op, col)
	screen.DrawImage(c.pixel, op)
}

func scaleColor(op *ebiten.DrawImageOptions, col color.RGBA) {
	op.ColorScale.Scale(
		float32(col.R)/255,
		float32(col.G)/255,
		float32(col.B)/255,
		float32(col.A)/255,
	)
}
