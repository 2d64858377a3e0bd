package component

import "fmt"

// DamageResult reports what a damage call did. Killed is true only on the
// call that took health from alive to dead.
type DamageResult struct {
	Applied float64
	Killed  bool
}

// Damageable is anything a projectile can hurt.
type Damageable interface {
	TakeDamage(amount float64) DamageResult
	IsAlive() bool
}

// Health is a reusable health pool. Current stays within [0, Max] and Dead
// is terminal until Reset.
type Health struct {
	Max            float64
	Current        float64
	Dead           bool
	DestroyOnDeath bool
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64, destroyOnDeath bool) (*Health, error) {
	if max <= 0 {
		return nil, fmt.Errorf("%w: max health must be positive, got %v", ErrInvalidConfig, max)
	}
	return &Health{Max: max, Current: max, DestroyOnDeath: destroyOnDeath}, nil
}

func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead
}

// TakeDamage subtracts amount, clamping at zero. Negative amounts count as
// zero and a dead pool ignores further damage.
func (h *Health) TakeDamage(amount float64) DamageResult {
	if h == nil || h.Dead {
		return DamageResult{}
	}
	if amount < 0 {
		amount = 0
	}
	applied := amount
	if applied > h.Current {
		applied = h.Current
	}
	h.Current -= applied
	if h.Current > 0 {
		return DamageResult{Applied: applied}
	}
	h.Current = 0
	h.Dead = true
	return DamageResult{Applied: applied, Killed: true}
}

// Heal restores health up to Max. Dead pools stay dead.
func (h *Health) Heal(amount float64) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Reset revives the pool at full health.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.Current = h.Max
	h.Dead = false
}

// Fraction is Current/Max.
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

var HealthComponent = NewComponent[Health]()
