package core

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/automoto/doomerang-arena/shared/netcomponents"
	"github.com/automoto/doomerang-arena/shared/netconfig"
	"github.com/automoto/doomerang-arena/systems"
	"github.com/automoto/doomerang-arena/systems/factory"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

var ErrNoLevel = errors.New("server needs a level")

// Conn is the server's handle on one connected client.
type Conn interface {
	SendMessage(msg any) error
}

type session struct {
	conn       Conn
	id         uint
	name       string
	syncEntity donburi.Entity
	lastSeq    uint32
	// applied is set once any input was applied; sequences start at 0.
	applied bool
}

type Options struct {
	Name string
	// Version is the protocol version clients must present. Empty accepts
	// any client.
	Version    string
	Tuning     config.Tuning
	Level      *ServerLevel
	MaxPlayers int
}

// Server is the match authority. Router callbacks only queue commands; the
// game loop goroutine runs them, so the arena is never touched concurrently.
type Server struct {
	opts      Options
	arena     *systems.Arena
	sync      donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport

	mu       sync.Mutex
	commands []func()

	// Owned by the game loop goroutine.
	sessions map[Conn]*session
	order    []*session
	nextID   uint

	players atomic.Int32
}

var _ systems.Downlink = (*Server)(nil)

// NewServer creates a new game server
func NewServer(opts Options) (*Server, error) {
	if opts.Level == nil {
		return nil, ErrNoLevel
	}
	if opts.MaxPlayers <= 0 {
		opts.MaxPlayers = netconfig.MaxPlayers
	}
	opts.Tuning = opts.Level.Tuning(opts.Tuning)

	s := &Server{
		opts:     opts,
		sync:     donburi.NewWorld(),
		sessions: make(map[Conn]*session),
	}
	s.arena = systems.NewArena(systems.ArenaOptions{
		Physics:   opts.Level.Space,
		Spawns:    opts.Level.Spawns,
		Tuning:    opts.Tuning,
		Authority: systems.NewServerAuthority(s),
	})
	s.loop = NewGameLoop(s, opts.Tuning.Network.TickRate)

	srvsync.UseEsync(s.sync)
	return s, nil
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) Arena() *systems.Arena {
	return s.arena
}

// PlayerCount returns the number of joined players. Safe from any goroutine.
func (s *Server) PlayerCount() int {
	return int(s.players.Load())
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
		}
		s.enqueue(func() { s.handleLeave(client) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(func() { s.handleJoin(client, req) })
	})

	router.On(func(client *router.NetworkClient, in messages.PlayerInput) {
		s.enqueue(func() { s.handleInput(client, in) })
	})

	router.On(func(client *router.NetworkClient, _ messages.AttackIntent) {
		s.enqueue(func() { s.handleAttack(client) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) enqueue(cmd func()) {
	s.mu.Lock()
	s.commands = append(s.commands, cmd)
	s.mu.Unlock()
}

// ProcessCommands runs every queued command in arrival order.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	cmds := s.commands
	s.commands = nil
	s.mu.Unlock()

	for _, cmd := range cmds {
		cmd()
	}
}

// Step runs one tick of the match, excluding the snapshot send.
func (s *Server) Step(dt time.Duration) {
	s.ProcessCommands()
	s.arena.Update(dt)
	s.writeSync()
}

func (s *Server) handleJoin(c Conn, req messages.JoinRequest) {
	if _, ok := s.sessions[c]; ok {
		log.Printf("[server] duplicate join request ignored")
		return
	}
	if s.opts.Version != "" && req.Version != s.opts.Version {
		s.reject(c, fmt.Sprintf("version mismatch: server %s, client %s", s.opts.Version, req.Version))
		return
	}
	if len(s.order) >= s.opts.MaxPlayers {
		s.reject(c, "server full")
		return
	}

	s.nextID++
	id := s.nextID
	name := req.PlayerName
	if name == "" {
		name = fmt.Sprintf("player%d", id)
	}

	pos, ok := s.arena.Spawns.Pick()
	if !ok {
		log.Printf("[server] no spawn point for %s, placing at origin", name)
	}
	if _, err := s.arena.Spawn(factory.CharacterSpec{ID: id, Name: name, Position: pos}); err != nil {
		s.reject(c, err.Error())
		return
	}

	e := s.sync.Create(netcomponents.NetPosition, netcomponents.NetCharacterState)
	if err := srvsync.NetworkSync(s.sync, &e,
		srvsync.WithInterp(netcomponents.NetPosition),
		netcomponents.NetCharacterState,
	); err != nil {
		log.Printf("[server] network sync setup for %s failed: %v", name, err)
	}

	sess := &session{conn: c, id: id, name: name, syncEntity: e}
	s.sessions[c] = sess
	s.order = append(s.order, sess)
	s.players.Add(1)
	s.writeSync()

	s.send(sess, messages.JoinAccepted{
		CharacterID: id,
		ServerName:  s.opts.Name,
		TickRate:    s.opts.Tuning.Network.TickRate,
	})
	for _, other := range s.arena.Controllers() {
		if ev, ok := s.arena.SpawnEventFor(other.ID()); ok {
			s.send(sess, ev)
		}
	}
	if ev, ok := s.arena.SpawnEventFor(id); ok {
		s.broadcastExcept(sess, ev)
	}
	log.Printf("[server] %s joined as character %d (%d players)", name, id, len(s.order))
}

func (s *Server) reject(c Conn, reason string) {
	log.Printf("[server] join rejected: %s", reason)
	if err := c.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
		log.Printf("[server] send rejection: %v", err)
	}
}

func (s *Server) handleLeave(c Conn) {
	sess, ok := s.sessions[c]
	if !ok {
		return
	}
	delete(s.sessions, c)
	for i, other := range s.order {
		if other == sess {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.players.Add(-1)

	s.arena.Despawn(sess.id)
	if s.sync.Valid(sess.syncEntity) {
		s.sync.Remove(sess.syncEntity)
	}
	s.broadcast(messages.DespawnEvent{CharacterID: sess.id})
	log.Printf("[server] %s left (%d players)", sess.name, len(s.order))
}

// handleInput drops inputs older than the last one applied.
func (s *Server) handleInput(c Conn, in messages.PlayerInput) {
	sess, ok := s.sessions[c]
	if !ok {
		return
	}
	if sess.applied && in.Sequence <= sess.lastSeq {
		return
	}
	s.arena.ApplyInput(sess.id, in)
	sess.lastSeq = in.Sequence
	sess.applied = true
}

// handleAttack resolves a swing from the character's position on the server.
func (s *Server) handleAttack(c Conn) {
	sess, ok := s.sessions[c]
	if !ok {
		return
	}
	s.arena.ResolveAttack(sess.id)
}

// writeSync copies arena state into the replicated snapshot components.
func (s *Server) writeSync() {
	for _, sess := range s.order {
		c, ok := s.arena.Controller(sess.id)
		if !ok || !s.sync.Valid(sess.syncEntity) {
			continue
		}
		entry := s.sync.Entry(sess.syncEntity)
		pos := c.Position()
		netcomponents.NetPosition.SetValue(entry, netcomponents.NetPositionData{X: pos.X, Y: pos.Y})

		state := netcomponents.NetCharacterStateData{
			CharacterID:  sess.id,
			Facing:       int(components.Motion.Get(c.Entry()).Facing),
			Dead:         c.Dead(),
			LastSequence: sess.lastSeq,
		}
		if c.Entry().HasComponent(components.ReplicatedHealth) {
			state.Health = components.ReplicatedHealth.Get(c.Entry()).Value
		}
		netcomponents.NetCharacterState.SetValue(entry, state)
	}
}

func (s *Server) BroadcastHealth(msg messages.HealthChanged) {
	s.broadcast(msg)
}

func (s *Server) BroadcastAttackPlayed(msg messages.AttackPlayed) {
	s.broadcast(msg)
}

func (s *Server) BroadcastRespawn(msg messages.Respawned) {
	s.broadcast(msg)
}

func (s *Server) broadcast(msg any) {
	s.broadcastExcept(nil, msg)
}

// broadcastExcept sends msg to every joined client but skip, in join order.
func (s *Server) broadcastExcept(skip *session, msg any) {
	for _, sess := range s.order {
		if sess != skip {
			s.send(sess, msg)
		}
	}
}

func (s *Server) send(sess *session, msg any) {
	if err := sess.conn.SendMessage(msg); err != nil {
		log.Printf("[server] send %T to %s: %v", msg, sess.name, err)
	}
}
