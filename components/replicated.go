package components

import (
	"errors"

	"github.com/yohamta/donburi"
)

// ErrNotAuthority is returned when a mirror tries to write a replicated value.
var ErrNotAuthority = errors.New("replicated health: write on a non-authority mirror")

// ReplicatedHealthFunc observes a replicated health write.
type ReplicatedHealthFunc func(previous, current int)

type replicatedSub struct {
	id int
	fn ReplicatedHealthFunc
}

// ReplicatedHealthData is the networked copy of a character's health. The
// authority writes it with Set; mirrors apply the authority's writes in order
// with Receive. Every write carries a sequence number so mirrors can drop
// anything they have already applied.
type ReplicatedHealthData struct {
	Value     int
	Max       int
	Authority bool

	seq    uint64
	subs   []replicatedSub
	nextID int
}

func NewReplicatedHealth(value, maxHealth int, seq uint64, authority bool) ReplicatedHealthData {
	return ReplicatedHealthData{
		Value:     value,
		Max:       maxHealth,
		Authority: authority,
		seq:       seq,
	}
}

// Seq is the sequence number of the last applied write.
func (r *ReplicatedHealthData) Seq() uint64 {
	return r.seq
}

// Set writes v on the authority and notifies local observers. Writing the
// current value is not a mutation and notifies nobody.
func (r *ReplicatedHealthData) Set(v int) error {
	if !r.Authority {
		return ErrNotAuthority
	}
	if v == r.Value {
		return nil
	}
	prev := r.Value
	r.Value = v
	r.seq++
	r.notify(prev, v)
	return nil
}

// Receive applies an authority write on a mirror. It reports false for
// writes that are stale or arrive at the authority itself.
func (r *ReplicatedHealthData) Receive(previous, current int, seq uint64) bool {
	if r.Authority || seq <= r.seq {
		return false
	}
	r.Value = current
	r.seq = seq
	r.notify(previous, current)
	return true
}

func (r *ReplicatedHealthData) Subscribe(fn ReplicatedHealthFunc) int {
	r.nextID++
	r.subs = append(r.subs, replicatedSub{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *ReplicatedHealthData) Unsubscribe(id int) bool {
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (r *ReplicatedHealthData) notify(prev, cur int) {
	for _, s := range append([]replicatedSub(nil), r.subs...) {
		s.fn(prev, cur)
	}
}

var ReplicatedHealth = donburi.NewComponentType[ReplicatedHealthData]()
