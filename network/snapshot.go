package network

import (
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// CharacterSnapshot is one character's replicated state from a world snapshot.
type CharacterSnapshot struct {
	State       netcomponents.NetCharacterStateData
	Position    gamemath.Vec2
	HasPosition bool
}

// DecodeSnapshot extracts every character from a snapshot. Entities without
// a character state are skipped, as are components that fail to decode.
func DecodeSnapshot(snapshot esync.WorldSnapshot) []CharacterSnapshot {
	var out []CharacterSnapshot
	for _, ent := range snapshot {
		var (
			cs       CharacterSnapshot
			hasState bool
		)
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetCharacterStateData:
				cs.State = v
				hasState = true
			case netcomponents.NetPositionData:
				cs.Position = v.Vec()
				cs.HasPosition = true
			}
		}
		if hasState {
			out = append(out, cs)
		}
	}
	return out
}
