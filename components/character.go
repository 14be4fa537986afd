package components

import (
	"github.com/automoto/doomerang-arena/physics"
	"github.com/yohamta/donburi"
)

// CharacterData identifies a character. ID matches the owning client's
// network id in networked play and the player slot locally.
type CharacterData struct {
	ID   uint
	Name string
}

type BodyData struct {
	Body physics.Body
}

var Character = donburi.NewComponentType[CharacterData]()
var Body = donburi.NewComponentType[BodyData]()
