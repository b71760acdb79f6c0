package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/leveledit/level"
	"github.com/milk9111/leveledit/viewport"
)

const (
	previewGravity    = 900.0
	previewBallRadius = 10.0
	previewMaxBalls   = 64
)

// physicsPreview drops balls into a Chipmunk space built from the collision
// layer, so the feel of a level can be checked without leaving the editor.
// The space is rebuilt on every activation; edits made while the preview is
// running do not feed back into it.
type physicsPreview struct {
	space  *cp.Space
	balls  []*cp.Body
	active bool
}

func newPhysicsPreview() *physicsPreview {
	return &physicsPreview{}
}

// rebuild replaces the space with static boxes for every solid collision
// cell plus segment walls around the scene rim.
func (p *physicsPreview) rebuild(scene *level.Scene) {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: previewGravity})

	ts := float64(scene.TileSize)
	grid := scene.Layers[level.LayerCollision]
	for y, row := range grid {
		for x, v := range row {
			if v == 0 {
				continue
			}
			bb := cp.BB{
				L: float64(x) * ts,
				B: float64(y) * ts,
				R: float64(x+1) * ts,
				T: float64(y+1) * ts,
			}
			shape := cp.NewBox2(space.StaticBody, bb, 0)
			shape.SetFriction(0.8)
			shape.SetElasticity(0.2)
			space.AddShape(shape)
		}
	}

	w := float64(scene.PixelWidth())
	h := float64(scene.PixelHeight())
	walls := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: w, Y: 0}},
		{a: cp.Vector{X: 0, Y: h}, b: cp.Vector{X: w, Y: h}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: h}},
		{a: cp.Vector{X: w, Y: 0}, b: cp.Vector{X: w, Y: h}},
	}
	for _, seg := range walls {
		shape := cp.NewSegment(space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0.8)
		space.AddShape(shape)
	}

	p.space = space
	p.balls = nil
}

func (p *physicsPreview) spawnBall(wx, wy float64) {
	if p.space == nil {
		return
	}
	if len(p.balls) >= previewMaxBalls {
		return
	}
	mass := 1.0
	moment := cp.MomentForCircle(mass, 0, previewBallRadius, cp.Vector{})
	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: wx, Y: wy})

	shape := cp.NewCircle(body, previewBallRadius, cp.Vector{})
	shape.SetFriction(0.6)
	shape.SetElasticity(0.5)

	p.space.AddBody(body)
	p.space.AddShape(shape)
	p.balls = append(p.balls, body)
}

func (p *physicsPreview) step(dt float64) {
	if p.space == nil {
		return
	}
	p.space.Step(dt)
}

func (p *physicsPreview) draw(screen *ebiten.Image, vp viewport.Viewport, pixel *ebiten.Image) {
	size := previewBallRadius * 2
	for _, body := range p.balls {
		pos := body.Position()
		sx, sy := vp.WorldToScreen(pos.X-previewBallRadius, pos.Y-previewBallRadius)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(size*vp.Zoom, size*vp.Zoom)
		op.GeoM.Translate(sx, sy)
		op.ColorScale.Scale(1, 0.4, 0.3, 1)
		screen.DrawImage(pixel, op)
	}
}
