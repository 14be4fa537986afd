package netcomponents

import "github.com/yohamta/donburi"

// NetCharacterStateData is the snapshot view of a character. Health here is
// for display only; ordered health changes travel as HealthChanged messages.
type NetCharacterStateData struct {
	CharacterID  uint
	Facing       int // -1 left, 1 right
	Health       int
	Dead         bool
	LastSequence uint32 // Last input sequence processed by the server (for prediction reconciliation)
}

var NetCharacterState = donburi.NewComponentType[NetCharacterStateData]()
