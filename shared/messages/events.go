package messages

// SpawnEvent is broadcast when a character enters the match, and sent to a
// joining client once per character already present.
type SpawnEvent struct {
	CharacterID uint
	Name        string
	X, Y        float64
	Facing      int // -1 left, 1 right
	Health      int
	HealthSeq   uint64
}

// DespawnEvent is broadcast when a character leaves the match.
type DespawnEvent struct {
	CharacterID uint
}
