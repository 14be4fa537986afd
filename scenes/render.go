package scenes

import (
	"image/color"
	"math"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/leveldata"
	"github.com/automoto/doomerang-arena/systems"
	"github.com/automoto/doomerang-arena/systems/factory"
	"github.com/automoto/doomerang-arena/ui"
	"github.com/automoto/doomerang-arena/ui/hud"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	ScreenWidth  = 640
	ScreenHeight = 360

	pixelsPerUnit = 16
	floorMargin   = 40

	// Frames a swing or hit flash stays on screen.
	swingFrames = 8
	hitFrames   = 6
)

const layerDefault ecs.LayerID = 0

var (
	solidColor = color.RGBA{90, 90, 110, 255}
	swingColor = color.RGBA{255, 255, 255, 90}
	hitColor   = color.RGBA{255, 255, 255, 255}
	eyeColor   = color.RGBA{20, 20, 20, 255}
)

// viewport maps world units (Y up) to screen pixels (Y down). The level is
// centred horizontally with its floor a fixed margin above the bottom edge.
type viewport struct {
	offsetX float64
	baseY   float64
}

func newViewport(lvl leveldata.WorldLevel) viewport {
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, r := range lvl.Solids {
		minX = min(minX, r.X)
		maxX = max(maxX, r.X+r.W)
	}
	if len(lvl.Solids) == 0 {
		minX, maxX = 0, 0
	}
	width := (maxX - minX) * pixelsPerUnit
	return viewport{
		offsetX: (ScreenWidth-width)/2 - minX*pixelsPerUnit,
		baseY:   ScreenHeight - floorMargin,
	}
}

func (v viewport) point(p gamemath.Vec2) (float32, float32) {
	return float32(v.offsetX + p.X*pixelsPerUnit), float32(v.baseY - p.Y*pixelsPerUnit)
}

func (v viewport) rect(r gamemath.Rect) (x, y, w, h float32) {
	x, y = v.point(gamemath.Vec2{X: r.X, Y: r.Y + r.H})
	return x, y, float32(r.W * pixelsPerUnit), float32(r.H * pixelsPerUnit)
}

// renderer draws one arena. Attack and hit triggers are consumed here, the
// way an animation rig would start the matching clip.
type renderer struct {
	arena *systems.Arena
	level leveldata.WorldLevel
	view  viewport
	hud   *ui.Registry

	swing map[uint]int
	hit   map[uint]int
}

func newRenderer(arena *systems.Arena, lvl leveldata.WorldLevel, reg *ui.Registry) *renderer {
	return &renderer{
		arena: arena,
		level: lvl,
		view:  newViewport(lvl),
		hud:   reg,
		swing: make(map[uint]int),
		hit:   make(map[uint]int),
	}
}

func (r *renderer) update(_ *ecs.ECS) {
	for id, n := range r.swing {
		if n <= 1 {
			delete(r.swing, id)
		} else {
			r.swing[id] = n - 1
		}
	}
	for id, n := range r.hit {
		if n <= 1 {
			delete(r.hit, id)
		} else {
			r.hit[id] = n - 1
		}
	}

	for _, c := range r.arena.Controllers() {
		anim, ok := components.Anim.Get(c.Entry()).Animator.(*components.AnimationState)
		if !ok {
			continue
		}
		if anim.Consume(components.TriggerAttack) {
			r.swing[c.ID()] = swingFrames
		}
		if anim.Consume(components.TriggerHit) {
			r.hit[c.ID()] = hitFrames
		}
		anim.Consume(components.TriggerDie)
	}
}

func (r *renderer) drawLevel(_ *ecs.ECS, screen *ebiten.Image) {
	for _, s := range r.level.Solids {
		x, y, w, h := r.view.rect(s)
		vector.DrawFilledRect(screen, x, y, w, h, solidColor, false)
	}
}

func (r *renderer) drawCharacters(_ *ecs.ECS, screen *ebiten.Image) {
	mv := r.arena.Tuning.Movement
	for _, c := range r.arena.Controllers() {
		view := components.View.Get(c.Entry()).View
		if !view.Visible() {
			continue
		}

		clr := factory.PaletteColor(c.ID())
		if s, ok := view.(*components.Sprite); ok {
			clr = s.Color
		}
		if r.hit[c.ID()] > 0 {
			clr = hitColor
		}

		pos := c.Position()
		x, y, w, h := r.view.rect(gamemath.RectAround(pos, mv.BodyWidth, mv.BodyHeight))
		vector.DrawFilledRect(screen, x, y, w, h, clr, false)

		facing := components.Motion.Get(c.Entry()).Facing
		ex, ey := r.view.point(gamemath.Vec2{X: pos.X + facing.Sign()*mv.BodyWidth/4, Y: pos.Y + mv.BodyHeight/4})
		vector.DrawFilledRect(screen, ex-2, ey-2, 4, 4, eyeColor, false)

		if r.swing[c.ID()] > 0 {
			intent := c.Intent()
			cx, cy := r.view.point(intent.Center())
			vector.DrawFilledCircle(screen, cx, cy, float32(intent.Radius*pixelsPerUnit), swingColor, true)
		}
	}
}

func (r *renderer) drawHUD(_ *ecs.ECS, screen *ebiten.Image) {
	hud.Draw(screen, r.hud, factory.PaletteColor)
}
