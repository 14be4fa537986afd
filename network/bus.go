package network

import (
	"errors"
	"fmt"

	"github.com/automoto/doomerang-arena/shared/messages"
)

// AuthorityID is the peer id of the authority on a Bus.
const AuthorityID uint = 0

var (
	ErrUnknownPeer   = errors.New("unknown peer")
	ErrDuplicatePeer = errors.New("peer already joined")
	ErrNoAuthority   = errors.New("bus has no authority")
)

// Envelope is one delivered message and its sender.
type Envelope struct {
	From uint
	Msg  any
}

// Bus is an in-memory transport with the same ordering as the websocket
// path: per-sender FIFO, and authority broadcasts reach every other peer in
// the order they were issued. Nothing is delivered until Flush, so tests
// control exactly when messages land.
type Bus struct {
	authority *Peer
	peers     []*Peer
	byID      map[uint]*Peer
}

func NewBus() *Bus {
	return &Bus{byID: make(map[uint]*Peer)}
}

// Peer is one endpoint on a Bus. A client peer is an Uplink; the authority
// peer is a Downlink.
type Peer struct {
	ID      uint
	bus     *Bus
	inbox   []Envelope
	handler func(Envelope)
}

// Authority registers the authority peer.
func (b *Bus) Authority(handler func(Envelope)) (*Peer, error) {
	return b.join(AuthorityID, handler)
}

// Join registers an observer peer. id must not be AuthorityID.
func (b *Bus) Join(id uint, handler func(Envelope)) (*Peer, error) {
	if id == AuthorityID {
		return nil, fmt.Errorf("join %d: reserved for the authority: %w", id, ErrDuplicatePeer)
	}
	return b.join(id, handler)
}

func (b *Bus) join(id uint, handler func(Envelope)) (*Peer, error) {
	if _, ok := b.byID[id]; ok {
		return nil, fmt.Errorf("join %d: %w", id, ErrDuplicatePeer)
	}
	p := &Peer{ID: id, bus: b, handler: handler}
	b.byID[id] = p
	b.peers = append(b.peers, p)
	if id == AuthorityID {
		b.authority = p
	}
	return p, nil
}

// Leave removes a peer and drops anything still queued for it.
func (b *Bus) Leave(id uint) bool {
	p, ok := b.byID[id]
	if !ok {
		return false
	}
	delete(b.byID, id)
	for i, other := range b.peers {
		if other == p {
			b.peers = append(b.peers[:i], b.peers[i+1:]...)
			break
		}
	}
	if p == b.authority {
		b.authority = nil
	}
	return true
}

// Flush delivers queued messages, including any produced while delivering,
// until every inbox is empty. It returns the number of deliveries.
func (b *Bus) Flush() int {
	delivered := 0
	for {
		progressed := false
		for _, p := range append([]*Peer(nil), b.peers...) {
			for len(p.inbox) > 0 {
				env := p.inbox[0]
				p.inbox = p.inbox[1:]
				if p.handler != nil {
					p.handler(env)
				}
				delivered++
				progressed = true
			}
		}
		if !progressed {
			return delivered
		}
	}
}

func (b *Bus) toAuthority(from uint, msg any) error {
	if b.authority == nil {
		return ErrNoAuthority
	}
	if _, ok := b.byID[from]; !ok {
		return fmt.Errorf("send from %d: %w", from, ErrUnknownPeer)
	}
	b.authority.inbox = append(b.authority.inbox, Envelope{From: from, Msg: msg})
	return nil
}

func (b *Bus) broadcast(from uint, msg any) {
	for _, p := range b.peers {
		if p.ID == from {
			continue
		}
		p.inbox = append(p.inbox, Envelope{From: from, Msg: msg})
	}
}

// Send queues msg for a single peer.
func (b *Bus) Send(to uint, msg any) error {
	p, ok := b.byID[to]
	if !ok {
		return fmt.Errorf("send to %d: %w", to, ErrUnknownPeer)
	}
	p.inbox = append(p.inbox, Envelope{From: AuthorityID, Msg: msg})
	return nil
}

func (p *Peer) SendAttackIntent() error {
	return p.bus.toAuthority(p.ID, messages.AttackIntent{})
}

func (p *Peer) SendInput(in messages.PlayerInput) error {
	return p.bus.toAuthority(p.ID, in)
}

func (p *Peer) BroadcastHealth(msg messages.HealthChanged) {
	p.bus.broadcast(p.ID, msg)
}

func (p *Peer) BroadcastAttackPlayed(msg messages.AttackPlayed) {
	p.bus.broadcast(p.ID, msg)
}

func (p *Peer) BroadcastRespawn(msg messages.Respawned) {
	p.bus.broadcast(p.ID, msg)
}

// Broadcast queues an arbitrary message for every other peer.
func (p *Peer) Broadcast(msg any) {
	p.bus.broadcast(p.ID, msg)
}
