package economy

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/afterclass/commitgoblin/goblin/logger"
	"github.com/disgoorg/snowflake/v2"
)

type PurchaseRequest struct {
	UserID snowflake.ID
	// GuildID is zero outside a server.
	GuildID snowflake.ID
	Item    string
	Amount  int
}

type PurchaseResult struct {
	Item      models.ShopItem
	Amount    int
	TotalCost int
	Coins     int
	// Owned is the inventory count after the purchase. Zero for role items.
	Owned     int
	Role      Role
	ExpiresAt time.Time
}

type InventoryEntry struct {
	ItemID string
	Name   string
	Count  int
}

// ListShop returns the catalog, most expensive first.
func (s *Service) ListShop() []models.ShopItem {
	var out []models.ShopItem
	s.store.View(func(doc *models.Document) {
		out = make([]models.ShopItem, 0, len(doc.Shop))
		for _, item := range doc.Shop {
			out = append(out, *item)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost > out[j].Cost
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// FindItem resolves an item by alias, id or display name.
func (s *Service) FindItem(idOrName string) (models.ShopItem, bool) {
	var (
		item models.ShopItem
		ok   bool
	)
	s.store.View(func(doc *models.Document) {
		var found *models.ShopItem
		if found, ok = findItem(doc, idOrName); ok {
			item = *found
		}
	})
	return item, ok
}

func unknownItem(idOrName string) error {
	return errs.New(errs.CodeNotFound, "I don't know any item with ID/name **%s**.", idOrName)
}

// Purchase debits cost*amount and delivers the item. Inventory items are
// credited in the same store update as the debit. Role items are debited
// first, granted on the platform outside the store lock, and refunded in full
// if the role is missing or the grant fails.
func (s *Service) Purchase(ctx context.Context, req PurchaseRequest) (PurchaseResult, error) {
	if req.Amount < 1 {
		return PurchaseResult{}, errs.New(errs.CodeInvalidInput, "Amount must be at least 1.")
	}

	item, ok := s.FindItem(req.Item)
	if !ok {
		return PurchaseResult{}, unknownItem(req.Item)
	}
	roleKind, isRole := item.Kind.(models.RoleItem)
	if isRole && req.GuildID == 0 {
		return PurchaseResult{}, errs.New(errs.CodeInvalidInput, "Roles can only be assigned in a server context.")
	}

	if item.Cost > 0 && req.Amount > math.MaxInt/item.Cost {
		return PurchaseResult{}, errs.New(errs.CodeInvalidInput, "That amount is far more than anyone could ever afford.")
	}

	out := PurchaseResult{Item: item, Amount: req.Amount, TotalCost: item.Cost * req.Amount}
	uid := key(req.UserID)

	err := s.store.Update(ctx, "purchase", func(doc *models.Document) error {
		u := doc.Account(uid)
		if u.Coins < out.TotalCost {
			return errs.New(errs.CodeInsufficientFunds,
				"You don't have enough coins. You need **%d**, but you only have **%d**.", out.TotalCost, u.Coins)
		}
		u.Coins -= out.TotalCost
		if !isRole {
			u.Items[item.ID] += req.Amount
			out.Owned = u.Items[item.ID]
		}
		out.Coins = u.Coins
		return nil
	})
	if err != nil {
		return PurchaseResult{}, err
	}

	if !isRole {
		logger.LogShop("Item purchased",
			slog.String("user_id", uid),
			slog.String("item_id", item.ID),
			slog.Int("amount", req.Amount),
			slog.Int("cost", out.TotalCost),
		)
		return out, nil
	}

	role, found, err := s.roles.FindRoleByName(ctx, req.GuildID, roleKind.RoleName)
	if err != nil || !found {
		s.refund(ctx, uid, out.TotalCost)
		if err != nil {
			return PurchaseResult{}, errs.Wrap(errs.CodeExternalActionFailure, err,
				"Could not look up the role **%s**. Please try again later.", roleKind.RoleName)
		}
		return PurchaseResult{}, errs.New(errs.CodeExternalActionFailure,
			"The role **%s** does not exist on this server. Please create it in the server settings.", roleKind.RoleName)
	}

	if err := s.roles.GrantRole(ctx, req.GuildID, req.UserID, role.ID); err != nil {
		s.refund(ctx, uid, out.TotalCost)
		return PurchaseResult{}, errs.Wrap(errs.CodeExternalActionFailure, err,
			"Could not assign the role (am I missing permissions?). Please check the role hierarchy.")
	}

	hours := roleKind.DurationHours
	if hours <= 0 {
		hours = config.DefaultRoleDurationHours
	}
	out.Role = role
	out.ExpiresAt = s.now().UTC().Add(time.Duration(hours) * time.Hour)

	err = s.store.Update(ctx, "purchase_effect", func(doc *models.Document) error {
		u := doc.Account(uid)
		u.ActiveEffects = append(u.ActiveEffects, models.Effect{
			Type:      models.EffectTypeRole,
			RoleID:    role.ID.String(),
			GuildID:   req.GuildID.String(),
			ItemID:    item.ID,
			ExpiresAt: out.ExpiresAt,
		})
		out.Coins = u.Coins
		return nil
	})
	if err != nil {
		return PurchaseResult{}, err
	}

	logger.LogShop("Role purchased",
		slog.String("user_id", uid),
		slog.String("item_id", item.ID),
		slog.String("role_id", role.ID.String()),
		slog.Time("expires_at", out.ExpiresAt),
	)
	return out, nil
}

func (s *Service) refund(ctx context.Context, uid string, amount int) {
	_ = s.store.Update(ctx, "purchase_refund", func(doc *models.Document) error {
		doc.Account(uid).Coins += amount
		return nil
	})
	logger.LogShop("Purchase refunded", slog.String("user_id", uid), slog.Int("amount", amount))
}

// Inventory lists items the user holds at least one of, by item id.
func (s *Service) Inventory(userID snowflake.ID) []InventoryEntry {
	var out []InventoryEntry
	s.store.View(func(doc *models.Document) {
		u, ok := doc.LookupAccount(key(userID))
		if !ok {
			return
		}
		for id, count := range u.Items {
			if count <= 0 {
				continue
			}
			name := id
			if item, ok := doc.Shop[id]; ok {
				name = item.Name
			}
			out = append(out, InventoryEntry{ItemID: id, Name: name, Count: count})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// ItemNames returns every catalog id and display name, for suggestions.
func (s *Service) ItemNames() []string {
	var out []string
	s.store.View(func(doc *models.Document) {
		for id, item := range doc.Shop {
			out = append(out, id)
			if normalizeName(item.Name) != id {
				out = append(out, item.Name)
			}
		}
	})
	sort.Strings(out)
	return out
}
