package systems

import (
	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/physics"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/yohamta/donburi"
)

// CombatIntent describes one melee swing. It is rebuilt for every attack and
// never stored.
type CombatIntent struct {
	Attacker   donburi.Entity
	AttackerID uint
	Origin     gamemath.Vec2
	Facing     components.Facing
	Range      float64
	Radius     float64
	Damage     int
	TargetMask physics.Category
}

// Center is the middle of the hit disc, Range ahead of the attacker.
func (i CombatIntent) Center() gamemath.Vec2 {
	return i.Origin.Add(gamemath.Vec2{X: i.Facing.Sign() * i.Range})
}

// HitDetector turns an intent into the list of entities it hits.
type HitDetector struct {
	Physics physics.World
}

// Resolve returns every eligible target overlapping the intent's disc, in the
// order the physics query first reports them. The attacker is never included
// and each target appears once even when several of its shapes overlap.
func (d HitDetector) Resolve(intent CombatIntent) []donburi.Entity {
	if d.Physics == nil {
		return nil
	}
	bodies := d.Physics.QueryOverlap(intent.Center(), intent.Radius, intent.TargetMask)
	if len(bodies) == 0 {
		return nil
	}

	targets := make([]donburi.Entity, 0, len(bodies))
	seen := make(map[donburi.Entity]struct{}, len(bodies))
	for _, b := range bodies {
		if b.Category()&intent.TargetMask == 0 {
			continue
		}
		owner := b.Owner()
		if owner == intent.Attacker {
			continue
		}
		if _, dup := seen[owner]; dup {
			continue
		}
		seen[owner] = struct{}{}
		targets = append(targets, owner)
	}
	return targets
}
