package component

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTargetingValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Targeting)
		ok     bool
	}{
		{"defaults", func(*Targeting) {}, true},
		{"zero_bullet_speed", func(c *Targeting) { c.BulletSpeed = 0 }, false},
		{"negative_detection", func(c *Targeting) { c.DetectionRange = -1 }, false},
		{"zero_fire_interval", func(c *Targeting) { c.FireInterval = 0 }, false},
		{"lead_above_one", func(c *Targeting) { c.LeadFactor = 1.5 }, false},
		{"zero_damage_allowed", func(c *Targeting) { c.BulletDamage = 0 }, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultTargeting()
			c.mutate(&cfg)
			got, err := NewTargeting(cfg)
			if c.ok {
				require.NoError(t, err)
				assert.Equal(t, cfg, *got)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
			assert.Nil(t, got)
		})
	}
}

func TestTargetingStateTransitions(t *testing.T) {
	ctx := context.Background()
	s := NewTargetingState()
	assert.Equal(t, StateIdle, s.State())
	assert.False(t, s.Alerted())

	assert.False(t, s.Fire(ctx, TransitionLose), "lose from idle is a no-op")
	assert.False(t, s.Fire(ctx, TransitionEngage), "engage needs alerted")

	require.True(t, s.Fire(ctx, TransitionAcquire))
	assert.True(t, s.Alerted())
	assert.False(t, s.Fire(ctx, TransitionAcquire), "acquire fires once")

	require.True(t, s.Fire(ctx, TransitionEngage))
	assert.Equal(t, StateAttacking, s.State())
	require.True(t, s.Fire(ctx, TransitionLose))
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 3, s.Transitions)
}

func TestScheduleNextFireNeverMovesBack(t *testing.T) {
	s := NewTargetingState()
	s.ScheduleNextFire(2)
	s.ScheduleNextFire(1)
	assert.Equal(t, 2.0, s.NextFireTime)
}
