package models

import "time"

type EffectType string

const EffectTypeRole EffectType = "role"

// Effect is a time-boxed grant attached to an account. Effects are reaped
// lazily on the owner's next interaction.
type Effect struct {
	Type      EffectType `json:"type"`
	RoleID    string     `json:"roleId,omitempty"`
	GuildID   string     `json:"guildId,omitempty"`
	ItemID    string     `json:"itemId"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// Expired reports whether the effect is due for reaping. Effects without an
// expiry never expire.
func (e Effect) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !e.ExpiresAt.After(now)
}
