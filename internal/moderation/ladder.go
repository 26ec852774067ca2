package moderation

import (
	"fmt"
	"time"

	"diaspora-bot/internal/config"
	"diaspora-bot/internal/storage"
)

// Restriction ladder actions.
const (
	ActionWarn     = "warn"
	ActionRestrict = "restrict"
	ActionBan      = "ban"
)

// banHorizon makes a ban effectively permanent.
const banHorizon = 100 * 365 * 24 * time.Hour

// Elevate moves a restriction one rung up the ladder and returns the rung
// applied. A fresh restriction (level -1) lands on rung 0; elevation past the
// last rung stays on the last rung.
func Elevate(r *storage.Restriction, ladder []config.LadderRung, now time.Time) (config.LadderRung, error) {
	if len(ladder) == 0 {
		return config.LadderRung{}, fmt.Errorf("restriction ladder is empty")
	}
	level := r.Level + 1
	if level >= len(ladder) {
		level = len(ladder) - 1
	}
	rung := ladder[level]

	r.Level = level
	switch rung.Action {
	case ActionWarn:
		r.ActiveUntil = now
		r.CooldownUntil = now.Add(time.Duration(rung.CooldownMinutes) * time.Minute)
	case ActionRestrict:
		r.ActiveUntil = now.Add(time.Duration(rung.DurationMinutes) * time.Minute)
		r.CooldownUntil = r.ActiveUntil.Add(time.Duration(rung.CooldownMinutes) * time.Minute)
	case ActionBan:
		r.ActiveUntil = now.Add(banHorizon)
		r.CooldownUntil = r.ActiveUntil
	default:
		return config.LadderRung{}, fmt.Errorf("unknown ladder action %q", rung.Action)
	}
	return rung, nil
}
