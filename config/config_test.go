package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	assert.Equal(t, 100, d.Combat.MaxHealth)
	assert.Equal(t, 3500*time.Millisecond, d.Respawn.Delay())
}

func TestGroundThresholdIsFixed(t *testing.T) {
	tu, err := Parse([]byte("movement:\n  groundNormalThreshold: 0.9\n  moveSpeed: 6\n"))
	require.NoError(t, err)
	assert.Equal(t, 6.0, tu.Movement.MoveSpeed)
	assert.Equal(t, 0.5, GroundNormalThreshold)
}

func TestParseOverlaysDefaults(t *testing.T) {
	data := []byte(`
combat:
  attackDamage: 35
respawn:
  respawnDelay: 1
`)
	tu, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 35, tu.Combat.AttackDamage)
	assert.Equal(t, 100, tu.Combat.MaxHealth, "unset keys keep defaults")
	assert.Equal(t, 2500*time.Millisecond, tu.Respawn.Delay())
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"zero_max_health", "combat:\n  maxHealth: 0\n"},
		{"negative_radius", "combat:\n  attackRadius: -1\n"},
		{"negative_delay", "respawn:\n  respawnDelay: -2\n"},
		{"zero_tick_rate", "network:\n  tickRate: 0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.data))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("combat: ["))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Run("empty_path_uses_defaults", func(t *testing.T) {
		tu, err := LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, Default(), tu)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("round_trip", func(t *testing.T) {
		want := Default()
		want.Combat.AttackRange = 1.25
		data, err := want.Marshal()
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "tuning.yaml")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		got, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
