package scenes

import (
	"github.com/automoto/doomerang-arena/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Binding is one player's keyboard layout.
type Binding struct {
	Left, Right, Jump, Fall, Attack ebiten.Key
}

var (
	PlayerOneKeys = Binding{
		Left: ebiten.KeyA, Right: ebiten.KeyD, Jump: ebiten.KeyW, Fall: ebiten.KeyS, Attack: ebiten.KeySpace,
	}
	PlayerTwoKeys = Binding{
		Left: ebiten.KeyArrowLeft, Right: ebiten.KeyArrowRight, Jump: ebiten.KeyArrowUp, Fall: ebiten.KeyArrowDown, Attack: ebiten.KeyEnter,
	}
)

// frameInput is what a player asked for this frame.
type frameInput struct {
	Move   float64
	Jump   bool
	Fall   bool
	Attack bool
}

func (b Binding) read() frameInput {
	var in frameInput
	if ebiten.IsKeyPressed(b.Left) {
		in.Move--
	}
	if ebiten.IsKeyPressed(b.Right) {
		in.Move++
	}
	in.Jump = inpututil.IsKeyJustPressed(b.Jump)
	in.Fall = ebiten.IsKeyPressed(b.Fall)
	in.Attack = inpututil.IsKeyJustPressed(b.Attack)
	return in
}

func (in frameInput) apply(c *systems.Controller) {
	c.OnMoveInput(in.Move)
	if in.Jump {
		c.OnJumpInput()
	}
	if in.Fall {
		c.OnFallInput()
	}
	if in.Attack {
		c.OnAttackInput()
	}
}
