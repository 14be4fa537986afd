package netcomponents

import (
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/yohamta/donburi"
)

// NetPositionData is a character's body centre in world units.
type NetPositionData struct {
	X, Y float64
}

func (p NetPositionData) Vec() gamemath.Vec2 {
	return gamemath.Vec2{X: p.X, Y: p.Y}
}

var NetPosition = donburi.NewComponentType[NetPositionData]()

// LerpNetPosition interpolates between two positions
func LerpNetPosition(from, to NetPositionData, t float64) *NetPositionData {
	return &NetPositionData{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
	}
}
