package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	r.Register(1, 100, 100)
	r.Register(2, 100, 100)

	require.Len(t, r.Bars(), 2)
	assert.Equal(t, uint(1), r.Bars()[0].ID)

	r.Unregister(1)
	_, ok := r.Bar(1)
	assert.False(t, ok)
	require.Len(t, r.Bars(), 1)
	assert.Equal(t, uint(2), r.Bars()[0].ID)

	// Unknown ids are ignored.
	r.Update(7, 10, 100)
	r.Unregister(7)
	assert.Len(t, r.Bars(), 1)
}

func TestBarDrainsAfterDamage(t *testing.T) {
	r := NewRegistry()
	r.Register(1, 100, 100)
	b, _ := r.Bar(1)

	r.Update(1, 80, 100)
	assert.Equal(t, 0.8, b.Ratio())
	assert.Equal(t, 1.0, b.ShownRatio(), "trailing segment starts at the old value")
	assert.True(t, b.Draining())

	r.Tick(100 * time.Millisecond)
	assert.Less(t, b.ShownRatio(), 1.0)
	assert.Greater(t, b.ShownRatio(), 0.8)

	r.Tick(time.Second)
	assert.False(t, b.Draining())
	assert.InDelta(t, 0.8, b.ShownRatio(), 1e-6)
}

func TestBarSnapsOnHeal(t *testing.T) {
	r := NewRegistry()
	r.Register(1, 100, 100)
	r.Update(1, 0, 100)
	r.Update(1, 100, 100)

	b, _ := r.Bar(1)
	assert.False(t, b.Draining())
	assert.Equal(t, 1.0, b.ShownRatio())
}

func TestRatioClamps(t *testing.T) {
	assert.Equal(t, 0.0, (&Bar{Current: 5, Max: 0}).Ratio())
	assert.Equal(t, 1.0, (&Bar{Current: 150, Max: 100}).Ratio())
	assert.Equal(t, 0.0, (&Bar{Current: -3, Max: 100}).Ratio())
}
