package archetypes

import (
	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/tags"
	"github.com/yohamta/donburi"
)

var (
	Character = newArchetype(
		tags.Character,
		components.Character,
		components.Body,
		components.Health,
		components.Motion,
		components.Anim,
		components.View,
	)
	NetworkedCharacter = newArchetype(
		tags.Character,
		tags.Networked,
		components.Character,
		components.Body,
		components.Health,
		components.ReplicatedHealth,
		components.Motion,
		components.Anim,
		components.View,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with every component of the archetype plus cs.
// Components are fixed at spawn so entries never migrate between archetypes
// while observers hold them.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
