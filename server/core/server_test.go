package core

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/levels"
	"github.com/automoto/doomerang-arena/shared/leveldata"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/automoto/doomerang-arena/shared/netcomponents"
	"github.com/automoto/doomerang-arena/shared/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := protocol.RegisterComponents(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeConn struct {
	sent []any
	err  error
}

func (c *fakeConn) SendMessage(msg any) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

func sentOf[T any](c *fakeConn) []T {
	var out []T
	for _, m := range c.sent {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// strip is a 20x4 tile map with a floor along the bottom row and a single
// spawn marker standing on it.
func strip() *leveldata.CollisionData {
	return &leveldata.CollisionData{
		SolidRects:  []leveldata.SolidRect{{X: 0, Y: 48, W: 320, H: 16}},
		SpawnPoints: []leveldata.SpawnPoint{{X: 32, Y: 48}},
		MapWidth:    320,
		MapHeight:   64,
		TileSize:    16,
	}
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	if opts.Tuning == (config.Tuning{}) {
		opts.Tuning = config.Default()
	}
	if opts.Level == nil {
		opts.Level = NewServerLevel("strip", strip(), opts.Tuning, 1)
	}
	s, err := NewServer(opts)
	require.NoError(t, err)
	return s
}

func join(t *testing.T, s *Server, name string) *fakeConn {
	t.Helper()
	c := &fakeConn{}
	s.enqueue(func() { s.handleJoin(c, messages.JoinRequest{Version: s.opts.Version, PlayerName: name}) })
	s.ProcessCommands()
	require.NotEmpty(t, sentOf[messages.JoinAccepted](c), "join of %s", name)
	return c
}

func TestNewServerNeedsLevel(t *testing.T) {
	_, err := NewServer(Options{Tuning: config.Default()})
	assert.ErrorIs(t, err, ErrNoLevel)
}

func TestLoadServerLevel(t *testing.T) {
	tu := config.Default()
	lvl, err := LoadServerLevel(levels.FS, levels.Default, tu, 1)
	require.NoError(t, err)

	assert.NotEmpty(t, lvl.World.Solids)
	assert.Equal(t, 4, lvl.Spawns.Len())
	assert.Equal(t, -5.0, lvl.Tuning(tu).Combat.DeathY)

	_, err = LoadServerLevel(levels.FS, "missing.tmx", tu, 1)
	assert.Error(t, err)
}

func TestJoinAnnouncesCharacters(t *testing.T) {
	s := newTestServer(t, Options{Name: "test"})

	a := join(t, s, "alice")
	b := join(t, s, "bob")

	assert.Equal(t, []messages.JoinAccepted{{CharacterID: 1, ServerName: "test", TickRate: 30}},
		sentOf[messages.JoinAccepted](a))
	assert.Equal(t, uint(2), sentOf[messages.JoinAccepted](b)[0].CharacterID)

	// The newcomer learns about everyone, existing players about the newcomer.
	var ids []uint
	for _, ev := range sentOf[messages.SpawnEvent](b) {
		ids = append(ids, ev.CharacterID)
	}
	assert.Equal(t, []uint{1, 2}, ids)

	spawns := sentOf[messages.SpawnEvent](a)
	require.Len(t, spawns, 2)
	assert.Equal(t, "bob", spawns[1].Name)
	assert.Equal(t, 100, spawns[1].Health)
	assert.InDelta(t, 2, spawns[1].X, 1e-9)
	assert.InDelta(t, 1.8, spawns[1].Y, 1e-9)

	assert.Equal(t, 2, s.PlayerCount())
}

func TestJoinRejections(t *testing.T) {
	s := newTestServer(t, Options{Version: "v2", MaxPlayers: 1})

	old := &fakeConn{}
	s.handleJoin(old, messages.JoinRequest{Version: "v1"})
	require.Len(t, old.sent, 1)
	assert.Contains(t, old.sent[0].(messages.JoinRejected).Reason, "version mismatch")

	join(t, s, "first")

	late := &fakeConn{}
	s.handleJoin(late, messages.JoinRequest{Version: "v2"})
	assert.Equal(t, []any{messages.JoinRejected{Reason: "server full"}}, late.sent)
	assert.Equal(t, 1, s.PlayerCount())
}

func TestAttackIntentReplicatesInOrder(t *testing.T) {
	s := newTestServer(t, Options{})
	a := join(t, s, "alice")
	b := join(t, s, "bob")

	for i := 0; i < 5; i++ {
		s.enqueue(func() { s.handleAttack(a) })
	}
	s.ProcessCommands()

	for _, c := range []*fakeConn{a, b} {
		hc := sentOf[messages.HealthChanged](c)
		require.Len(t, hc, 5)
		for i, msg := range hc {
			assert.Equal(t, uint(2), msg.CharacterID)
			assert.Equal(t, 100-20*(i+1), msg.Current)
			assert.Equal(t, uint64(i+1), msg.Seq)
		}
		assert.Len(t, sentOf[messages.AttackPlayed](c), 5)
	}
	assert.Equal(t, sentOf[messages.HealthChanged](a), sentOf[messages.HealthChanged](b))

	bob, ok := s.Arena().Controller(2)
	require.True(t, ok)
	assert.True(t, bob.Dead())
	assert.True(t, s.Arena().Scheduler.Frozen(bob.Entry().Entity()))
}

func TestRespawnBroadcast(t *testing.T) {
	s := newTestServer(t, Options{})
	a := join(t, s, "alice")
	join(t, s, "bob")

	for i := 0; i < 5; i++ {
		s.handleAttack(a)
	}
	for i := 0; i < 35; i++ {
		s.Step(100 * time.Millisecond)
	}

	resp := sentOf[messages.Respawned](a)
	require.Len(t, resp, 1)
	assert.Equal(t, uint(2), resp[0].CharacterID)
	assert.InDelta(t, 2, resp[0].X, 1e-9)

	hc := sentOf[messages.HealthChanged](a)
	assert.Equal(t, 100, hc[len(hc)-1].Current)
}

func TestInputSequencing(t *testing.T) {
	s := newTestServer(t, Options{})
	a := join(t, s, "alice")

	s.handleInput(a, messages.PlayerInput{Sequence: 2, Move: -1})
	s.handleInput(a, messages.PlayerInput{Sequence: 1, Move: 1})

	c, _ := s.Arena().Controller(1)
	assert.Equal(t, components.FacingLeft, components.Motion.Get(c.Entry()).Facing, "stale input dropped")

	s.Step(100 * time.Millisecond)
	assert.Less(t, c.Position().X, 2.0)

	sess := s.sessions[a]
	state := netcomponents.NetCharacterState.Get(s.sync.Entry(sess.syncEntity))
	assert.Equal(t, uint32(2), state.LastSequence)
	assert.Equal(t, 100, state.Health)
	pos := netcomponents.NetPosition.Get(s.sync.Entry(sess.syncEntity))
	assert.Equal(t, c.Position(), pos.Vec())
}

func TestFirstInputIsNotReplayed(t *testing.T) {
	s := newTestServer(t, Options{})
	a := join(t, s, "alice")

	s.handleInput(a, messages.PlayerInput{Sequence: 0, Move: -1})
	s.handleInput(a, messages.PlayerInput{Sequence: 0, Move: 1})

	c, _ := s.Arena().Controller(1)
	assert.Equal(t, components.FacingLeft, components.Motion.Get(c.Entry()).Facing, "replayed seq 0 dropped")

	s.handleInput(a, messages.PlayerInput{Sequence: 1, Move: 1})
	assert.Equal(t, components.FacingRight, components.Motion.Get(c.Entry()).Facing)
}

func TestLeaveDespawns(t *testing.T) {
	s := newTestServer(t, Options{})
	a := join(t, s, "alice")
	b := join(t, s, "bob")
	e := s.sessions[b].syncEntity

	s.enqueue(func() { s.handleLeave(b) })
	s.ProcessCommands()

	assert.Equal(t, []messages.DespawnEvent{{CharacterID: 2}}, sentOf[messages.DespawnEvent](a))
	assert.Empty(t, sentOf[messages.DespawnEvent](b))
	_, ok := s.Arena().Controller(2)
	assert.False(t, ok)
	assert.False(t, s.sync.Valid(e))
	assert.Equal(t, 1, s.PlayerCount())

	// Commands from a departed client are ignored.
	s.handleAttack(b)
	s.handleLeave(b)
	assert.Equal(t, 1, s.PlayerCount())
}

func TestSendFailuresAreLogged(t *testing.T) {
	s := newTestServer(t, Options{})
	a := join(t, s, "alice")
	b := join(t, s, "bob")
	b.err = errors.New("closed")

	s.handleAttack(a)
	assert.Len(t, sentOf[messages.HealthChanged](a), 1)
}
