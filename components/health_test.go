package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDamageFiveHits(t *testing.T) {
	anim := NewAnimationState()
	h := NewHealth(100, anim, NewSprite(testColor))

	var values []int
	deaths := 0
	deathAfter := -1
	h.Subscribe(HealthListener{
		OnChanged: func(c HealthChange) { values = append(values, c.Current) },
		OnDeath: func() {
			deaths++
			deathAfter = len(values)
		},
	})

	for i := 0; i < 5; i++ {
		h.ApplyDamage(20)
	}

	assert.Equal(t, []int{80, 60, 40, 20, 0}, values)
	assert.Equal(t, 1, deaths)
	assert.Equal(t, 5, deathAfter, "death fires after the fifth change")
	assert.True(t, h.Dead)
	assert.Equal(t, []string{
		TriggerHit, TriggerHit, TriggerHit, TriggerHit, TriggerHit, TriggerDie,
	}, anim.Fired)
}

func TestApplyDamageAfterDeathIsNoop(t *testing.T) {
	h := NewHealth(100, nil, nil)
	deaths, changes := 0, 0
	h.Subscribe(HealthListener{
		OnChanged: func(HealthChange) { changes++ },
		OnDeath:   func() { deaths++ },
	})

	h.ApplyDamage(100)
	require.True(t, h.Dead)

	h.ApplyDamage(20)
	assert.Equal(t, 0, h.Current)
	assert.Equal(t, 1, deaths)
	assert.Equal(t, 1, changes)
}

func TestApplyDamageClamps(t *testing.T) {
	cases := []struct {
		name    string
		start   int
		amount  int
		want    int
		wantDie bool
	}{
		{"partial", 100, 30, 70, false},
		{"zero", 100, 0, 100, false},
		{"exact", 40, 40, 0, true},
		{"overkill", 40, 9999, 0, true},
		{"negative_is_zero", 50, -10, 50, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewHealth(100, nil, nil)
			h.Current = c.start
			h.ApplyDamage(c.amount)
			assert.Equal(t, c.want, h.Current)
			assert.Equal(t, c.wantDie, h.Dead)
			assert.GreaterOrEqual(t, h.Current, 0)
			assert.LessOrEqual(t, h.Current, h.Max)
		})
	}
}

func TestResetRestoresFullHealth(t *testing.T) {
	anim := NewAnimationState()
	view := NewSprite(testColor)
	h := NewHealth(100, anim, view)

	var last HealthChange
	h.Subscribe(HealthListener{OnChanged: func(c HealthChange) { last = c }})

	h.ApplyDamage(100)
	view.SetVisible(false)
	h.Reset()

	assert.False(t, h.Dead)
	assert.Equal(t, 100, h.Current)
	assert.Equal(t, HealthChange{Previous: 0, Current: 100, Max: 100}, last)
	assert.True(t, view.Visible())
	assert.False(t, anim.Pending(TriggerHit))
	assert.False(t, anim.Pending(TriggerDie))

	// Death fires again in the next life.
	deaths := 0
	h.Subscribe(HealthListener{OnDeath: func() { deaths++ }})
	h.ApplyDamage(100)
	assert.Equal(t, 1, deaths)
}

func TestResetFromAnyState(t *testing.T) {
	for _, start := range []int{0, 1, 50, 100} {
		h := NewHealth(100, nil, nil)
		h.Current = start
		h.Dead = start == 0
		h.Reset()
		assert.Equal(t, 100, h.Current)
		assert.False(t, h.Dead)
	}
}

func TestUnsubscribe(t *testing.T) {
	h := NewHealth(100, nil, nil)
	var order []string

	var second int
	h.Subscribe(HealthListener{OnChanged: func(HealthChange) {
		order = append(order, "first")
		h.Unsubscribe(second)
	}})
	second = h.Subscribe(HealthListener{OnChanged: func(HealthChange) {
		order = append(order, "second")
	}})
	third := h.Subscribe(HealthListener{OnChanged: func(HealthChange) {
		order = append(order, "third")
	}})

	h.ApplyDamage(10)
	assert.Equal(t, []string{"first", "third"}, order)

	assert.True(t, h.Unsubscribe(third))
	assert.False(t, h.Unsubscribe(third))
}
