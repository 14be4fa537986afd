package components

import (
	"image/color"

	"github.com/yohamta/donburi"
)

// Sprite is the drawable stand-in for a character.
type Sprite struct {
	Color   color.RGBA
	visible bool
}

func NewSprite(c color.RGBA) *Sprite {
	return &Sprite{Color: c, visible: true}
}

func (s *Sprite) SetVisible(visible bool) { s.visible = visible }
func (s *Sprite) Visible() bool           { return s.visible }

type ViewData struct {
	View Visibility
}

var View = donburi.NewComponentType[ViewData]()
