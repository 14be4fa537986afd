package config

import (
	"errors"
	"fmt"
	"time"
)

// CombatConfig contains health and melee attack tuning.
type CombatConfig struct {
	MaxHealth    int     `yaml:"maxHealth"`
	AttackDamage int     `yaml:"attackDamage"`
	AttackRange  float64 `yaml:"attackRange"`  // Offset of the hit disc in front of the attacker
	AttackRadius float64 `yaml:"attackRadius"` // Radius of the hit disc

	// Fall death
	DeathY     float64 `yaml:"deathY"`     // Falling below this line is lethal
	FallDamage int     `yaml:"fallDamage"` // Raised to the character's max health when lower
}

// MovementConfig contains character motion tuning.
type MovementConfig struct {
	MoveSpeed     float64 `yaml:"moveSpeed"`
	JumpImpulse   float64 `yaml:"jumpImpulse"`
	FastFallSpeed float64 `yaml:"fastFallSpeed"`
	Gravity       float64 `yaml:"gravity"`

	// Dimensions
	BodyWidth  float64 `yaml:"bodyWidth"`
	BodyHeight float64 `yaml:"bodyHeight"`
	BodyMass   float64 `yaml:"bodyMass"`
}

// GroundNormalThreshold is the contact normal Y above which a contact counts
// as standing on floor. It is not tunable.
const GroundNormalThreshold = 0.5

// RespawnConfig contains death/respawn timing, in seconds.
type RespawnConfig struct {
	DeathAnimTime float64 `yaml:"deathAnimTime"`
	RespawnDelay  float64 `yaml:"respawnDelay"`
}

// Delay is the total time a character stays frozen after dying.
func (r RespawnConfig) Delay() time.Duration {
	return time.Duration((r.DeathAnimTime + r.RespawnDelay) * float64(time.Second))
}

// NetworkConfig contains dedicated server settings.
type NetworkConfig struct {
	Port     uint `yaml:"port"`
	TickRate int  `yaml:"tickRate"`
}

// Tuning bundles every tunable section. It is passed by value into the
// arena so a running simulation never reads the package-level globals.
type Tuning struct {
	Combat   CombatConfig   `yaml:"combat"`
	Movement MovementConfig `yaml:"movement"`
	Respawn  RespawnConfig  `yaml:"respawn"`
	Network  NetworkConfig  `yaml:"network"`
}

// ErrInvalid is returned (wrapped) by Validate.
var ErrInvalid = errors.New("invalid tuning")

// Validate reports the first out-of-range value.
func (t Tuning) Validate() error {
	switch {
	case t.Combat.MaxHealth <= 0:
		return fmt.Errorf("%w: combat.maxHealth must be > 0, got %d", ErrInvalid, t.Combat.MaxHealth)
	case t.Combat.AttackDamage < 0:
		return fmt.Errorf("%w: combat.attackDamage must be >= 0, got %d", ErrInvalid, t.Combat.AttackDamage)
	case t.Combat.AttackRadius < 0:
		return fmt.Errorf("%w: combat.attackRadius must be >= 0, got %v", ErrInvalid, t.Combat.AttackRadius)
	case t.Combat.FallDamage < 0:
		return fmt.Errorf("%w: combat.fallDamage must be >= 0, got %d", ErrInvalid, t.Combat.FallDamage)
	case t.Respawn.DeathAnimTime < 0 || t.Respawn.RespawnDelay < 0:
		return fmt.Errorf("%w: respawn delays must be >= 0", ErrInvalid)
	case t.Movement.BodyWidth <= 0 || t.Movement.BodyHeight <= 0:
		return fmt.Errorf("%w: body dimensions must be > 0", ErrInvalid)
	case t.Network.TickRate <= 0:
		return fmt.Errorf("%w: network.tickRate must be > 0, got %d", ErrInvalid, t.Network.TickRate)
	}
	return nil
}

// Global configuration instances
var Combat CombatConfig
var Movement MovementConfig
var Respawn RespawnConfig
var Network NetworkConfig

// Default returns the current global configuration as a Tuning value.
func Default() Tuning {
	return Tuning{
		Combat:   Combat,
		Movement: Movement,
		Respawn:  Respawn,
		Network:  Network,
	}
}

func init() {
	Combat = CombatConfig{
		MaxHealth:    100,
		AttackDamage: 20,
		AttackRange:  0.5,
		AttackRadius: 0.5,
		DeathY:       -5,
		FallDamage:   9999,
	}

	Movement = MovementConfig{
		MoveSpeed:     5,
		JumpImpulse:   7,
		FastFallSpeed: 7,
		Gravity:       9.81,
		BodyWidth:     0.8,
		BodyHeight:    1.6,
		BodyMass:      1,
	}

	Respawn = RespawnConfig{
		DeathAnimTime: 1.5,
		RespawnDelay:  2.0,
	}

	Network = NetworkConfig{
		Port:     7373,
		TickRate: 30,
	}
}
