package components

import "github.com/yohamta/donburi"

type Facing int

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// Sign is -1 for left and +1 for right.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// MotionData is the per-character movement gate. While Dead is set, movement
// and attack input is dropped.
type MotionData struct {
	Grounded bool
	Jumping  bool
	Facing   Facing
	Dead     bool

	// FallArmed is cleared once the fall-death check fires and re-armed on
	// respawn.
	FallArmed bool
}

func NewMotion(facing Facing) MotionData {
	return MotionData{Facing: facing, FallArmed: true}
}

var Motion = donburi.NewComponentType[MotionData]()
