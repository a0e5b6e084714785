// Package economy implements check-ins, the shop, inventory items, teams and
// timed role effects on top of the shared document store.
package economy

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/afterclass/commitgoblin/goblin/database"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/economy/platform"
	"github.com/disgoorg/snowflake/v2"
)

type (
	Role        = platform.Role
	RoleGranter = platform.RoleGranter
)

type Service struct {
	store *database.Store
	roles RoleGranter
	now   func() time.Time
	pick  func(n int) int
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPicker replaces the uniform random index used for phrase selection.
func WithPicker(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

func NewService(store *database.Store, roles RoleGranter, opts ...Option) *Service {
	s := &Service{
		store: store,
		roles: roles,
		now:   time.Now,
		pick:  rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func key(id snowflake.ID) string {
	return id.String()
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// findItem resolves a user-typed item reference: alias table, then catalog
// id, then display name. All comparisons are trimmed and case-insensitive.
func findItem(doc *models.Document, idOrName string) (*models.ShopItem, bool) {
	raw := normalizeName(idOrName)
	if raw == "" {
		return nil, false
	}
	k := models.CanonicalItemID(raw)
	if item, ok := doc.Shop[k]; ok {
		return item, true
	}
	for _, item := range doc.Shop {
		if normalizeName(item.Name) == k {
			return item, true
		}
	}
	return nil, false
}

func findTeam(doc *models.Document, name string) (*models.Team, bool) {
	target := normalizeName(name)
	if target == "" {
		return nil, false
	}
	for _, t := range doc.Teams {
		if normalizeName(t.Name) == target {
			return t, true
		}
	}
	return nil, false
}
