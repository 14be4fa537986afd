package messages

// PlayerInput is sent from client to server each frame with the movement
// input state. Attacks travel separately as AttackIntent.
type PlayerInput struct {
	Sequence uint32  // Incrementing ID, lets the server drop late inputs
	Move     float64 // Horizontal axis in [-1, 1]
	Jump     bool    // Pressed this frame
	Fall     bool    // Held
}
