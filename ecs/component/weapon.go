package component

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Weapon is the player's projectile gun. Cooldown and reload are deadlines
// compared against simulation time.
type Weapon struct {
	FireInterval    float64
	ProjectileSpeed float64
	Damage          float64
	Lifetime        float64
	Radius          float64
	ImpactForce     float64
	MagazineSize    int
	ReloadTime      float64
	Muzzle          mgl64.Vec3

	Ammo          int
	NextFireTime  float64
	Reloading     bool
	ReloadReadyAt float64
}

func NewWeapon(cfg Weapon) (*Weapon, error) {
	var errs []error
	if !(cfg.FireInterval > 0) {
		errs = append(errs, fmt.Errorf("fire interval must be positive, got %v", cfg.FireInterval))
	}
	if !(cfg.ProjectileSpeed > 0) {
		errs = append(errs, fmt.Errorf("projectile speed must be positive, got %v", cfg.ProjectileSpeed))
	}
	if !(cfg.Lifetime > 0) {
		errs = append(errs, fmt.Errorf("lifetime must be positive, got %v", cfg.Lifetime))
	}
	if cfg.MagazineSize <= 0 {
		errs = append(errs, fmt.Errorf("magazine size must be positive, got %d", cfg.MagazineSize))
	}
	if cfg.ReloadTime < 0 || cfg.Damage < 0 || cfg.Radius < 0 || cfg.ImpactForce < 0 {
		errs = append(errs, errors.New("reload time, damage, radius and impact force must not be negative"))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: weapon: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	cfg.Ammo = cfg.MagazineSize
	cfg.Reloading = false
	return &cfg, nil
}

// CanFire reports whether a shot may leave the barrel at now.
func (w *Weapon) CanFire(now float64) bool {
	return w != nil && !w.Reloading && w.Ammo > 0 && now >= w.NextFireTime
}

// Consume spends one round and starts the cooldown.
func (w *Weapon) Consume(now float64) {
	if w == nil || w.Ammo <= 0 {
		return
	}
	w.Ammo--
	w.NextFireTime = now + w.FireInterval
}

// StartReload begins a reload unless one is running or the magazine is full.
func (w *Weapon) StartReload(now float64) bool {
	if w == nil || w.Reloading || w.Ammo >= w.MagazineSize {
		return false
	}
	w.Reloading = true
	w.ReloadReadyAt = now + w.ReloadTime
	return true
}

// FinishReload refills the magazine once the reload deadline has passed.
func (w *Weapon) FinishReload(now float64) bool {
	if w == nil || !w.Reloading || now < w.ReloadReadyAt {
		return false
	}
	w.Reloading = false
	w.Ammo = w.MagazineSize
	return true
}

var WeaponComponent = NewComponent[Weapon]()
