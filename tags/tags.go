package tags

import "github.com/yohamta/donburi"

var (
	Character = donburi.NewTag().SetName("Character")
	// Networked marks characters that carry a ReplicatedHealth component.
	Networked = donburi.NewTag().SetName("Networked")
)
