package systems

import (
	"log"
	"sort"
	"time"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/yohamta/donburi"
)

// RespawnFunc runs after a character finished respawning. teleported is false
// when no spawn point was available and the character stayed in place.
type RespawnFunc func(entry *donburi.Entry, pos gamemath.Vec2, teleported bool)

type respawnTask struct {
	entity    donburi.Entity
	remaining time.Duration
	seq       uint64
}

// RespawnScheduler freezes dead characters and brings them back after a
// fixed delay. It holds at most one task per character and is advanced by
// Tick from the frame loop; nothing here blocks or spawns goroutines.
type RespawnScheduler struct {
	world  donburi.World
	spawns *SpawnPoints
	delay  time.Duration
	tasks  map[donburi.Entity]*respawnTask
	seq    uint64

	OnRespawn RespawnFunc
}

func NewRespawnScheduler(w donburi.World, spawns *SpawnPoints, delay time.Duration) *RespawnScheduler {
	return &RespawnScheduler{
		world:  w,
		spawns: spawns,
		delay:  delay,
		tasks:  make(map[donburi.Entity]*respawnTask),
	}
}

// HandleDeath freezes entry and schedules its respawn. A character that is
// already frozen is left alone and false is returned.
func (s *RespawnScheduler) HandleDeath(entry *donburi.Entry) bool {
	if entry == nil || !entry.Valid() {
		return false
	}
	e := entry.Entity()
	if _, frozen := s.tasks[e]; frozen {
		return false
	}

	components.Body.Get(entry).Body.SetSimulationEnabled(false)
	components.View.Get(entry).View.SetVisible(false)

	s.seq++
	s.tasks[e] = &respawnTask{entity: e, remaining: s.delay, seq: s.seq}
	return true
}

func (s *RespawnScheduler) Frozen(e donburi.Entity) bool {
	_, ok := s.tasks[e]
	return ok
}

func (s *RespawnScheduler) Pending() int {
	return len(s.tasks)
}

// Cancel drops e's pending respawn. It must be called before e is removed.
func (s *RespawnScheduler) Cancel(e donburi.Entity) bool {
	if _, ok := s.tasks[e]; !ok {
		return false
	}
	delete(s.tasks, e)
	return true
}

// Tick advances every pending task by dt. Tasks that expire in the same tick
// complete in the order their characters died.
func (s *RespawnScheduler) Tick(dt time.Duration) {
	var due []*respawnTask
	for _, t := range s.tasks {
		t.remaining -= dt
		if t.remaining <= 0 {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].seq < due[j].seq })

	for _, t := range due {
		// An earlier completion may have cancelled this one.
		if cur, ok := s.tasks[t.entity]; !ok || cur != t {
			continue
		}
		s.complete(t.entity)
		delete(s.tasks, t.entity)
	}
}

func (s *RespawnScheduler) complete(e donburi.Entity) {
	if !s.world.Valid(e) {
		log.Printf("[respawn] entity %v no longer exists, dropping respawn", e)
		return
	}
	entry := s.world.Entry(e)
	body := components.Body.Get(entry).Body

	pos, ok := s.spawns.Pick()
	if ok {
		body.SetPosition(pos)
	} else {
		id := components.Character.Get(entry).ID
		log.Printf("[respawn] no spawn point configured, respawning character %d in place", id)
		pos = body.Position()
	}

	body.SetSimulationEnabled(true)
	body.SetVelocity(gamemath.Vec2{})
	body.SetAngularVelocity(0)

	components.Health.Get(entry).Reset()
	components.Anim.Get(entry).Animator.Rebind()
	components.View.Get(entry).View.SetVisible(true)

	if s.OnRespawn != nil {
		s.OnRespawn(entry, pos, ok)
	}
}
