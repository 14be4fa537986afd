// Package hud draws the health registry with ebiten.
package hud

import (
	"image/color"

	"github.com/automoto/doomerang-arena/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	barWidth  = 130
	barHeight = 10
	margin    = 10
	spacing   = 6
	swatch    = 10
)

var (
	background = color.RGBA{40, 40, 40, 255}
	drain      = color.RGBA{220, 200, 200, 255}
	healthy    = color.RGBA{40, 220, 40, 255}
)

// ColorFunc picks the swatch colour shown next to a character's bar.
type ColorFunc func(id uint) color.RGBA

// Draw renders one bar per registered character down the top-left corner.
func Draw(screen *ebiten.Image, reg *ui.Registry, colorOf ColorFunc) {
	for i, b := range reg.Bars() {
		x := float32(margin)
		y := float32(margin + i*(barHeight+spacing))

		if colorOf != nil {
			vector.DrawFilledRect(screen, x, y, swatch, barHeight, colorOf(b.ID), false)
		}
		x += swatch + 4

		vector.DrawFilledRect(screen, x, y, barWidth, barHeight, background, false)
		vector.DrawFilledRect(screen, x, y, barWidth*float32(b.ShownRatio()), barHeight, drain, false)
		vector.DrawFilledRect(screen, x, y, barWidth*float32(b.Ratio()), barHeight, healthy, false)
	}
}
