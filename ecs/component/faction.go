package component

import (
	"fmt"
	"strings"
)

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
	FactionEnvironment
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	case FactionEnvironment:
		return "environment"
	default:
		return "neutral"
	}
}

func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "neutral":
		return FactionNeutral, nil
	case "player":
		return FactionPlayer, nil
	case "enemy":
		return FactionEnemy, nil
	case "environment":
		return FactionEnvironment, nil
	}
	return FactionNeutral, fmt.Errorf("%w: unknown faction %q", ErrInvalidConfig, s)
}

// CanHit reports whether a projectile from attacker may damage target.
// Neutral damage hits everyone; otherwise teams never hurt themselves.
func CanHit(attacker, target Faction) bool {
	if attacker == FactionNeutral || target == FactionNeutral {
		return true
	}
	return attacker != target
}

type FactionTag struct {
	Faction Faction
}

var FactionTagComponent = NewComponent[FactionTag]()
