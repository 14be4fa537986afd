package messages

// AttackIntent is sent by a client when its character swings. It carries no
// geometry: the server derives position and facing itself.
type AttackIntent struct{}

// AttackPlayed is broadcast after the server resolved an attack so observers
// can play the swing.
type AttackPlayed struct {
	CharacterID uint
}

// HealthChanged is one authoritative write to a character's replicated
// health. Seq increases by one per write for that character.
type HealthChanged struct {
	CharacterID uint
	Previous    int
	Current     int
	Max         int
	Seq         uint64
}

// Respawned is broadcast when the server brings a character back.
type Respawned struct {
	CharacterID uint
	X, Y        float64
}
