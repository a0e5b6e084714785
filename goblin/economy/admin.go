package economy

import (
	"context"
	"log/slog"

	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/afterclass/commitgoblin/goblin/metrics"
	"github.com/disgoorg/snowflake/v2"
)

var errAdminOnly = errs.New(errs.CodeForbidden, "Only admins can use this command.")

// AdminGiveCoins adds amount (possibly negative) to the user's balance. The
// balance never drops below zero. It returns the new balance.
func (s *Service) AdminGiveCoins(ctx context.Context, actorIsAdmin bool, userID snowflake.ID, amount int, reason string) (int, error) {
	if !actorIsAdmin {
		return 0, errAdminOnly
	}

	var balance int
	err := s.store.Update(ctx, "admin_give_coins", func(doc *models.Document) error {
		u := doc.Account(key(userID))
		u.Coins = max(u.Coins+amount, 0)
		balance = u.Coins
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.AddCoinsAwarded("admin", amount)
	slog.Info("Admin adjusted coins",
		slog.String("type", "cmd"),
		slog.String("user_id", userID.String()),
		slog.Int("amount", amount),
		slog.String("reason", reason),
	)
	return balance, nil
}

// AdminGiveItem adds amount of an item to the user's inventory and returns
// the item and the new count.
func (s *Service) AdminGiveItem(ctx context.Context, actorIsAdmin bool, userID snowflake.ID, idOrName string, amount int) (models.ShopItem, int, error) {
	if !actorIsAdmin {
		return models.ShopItem{}, 0, errAdminOnly
	}
	if amount < 1 {
		return models.ShopItem{}, 0, errs.New(errs.CodeInvalidInput, "Amount must be at least 1.")
	}
	item, ok := s.FindItem(idOrName)
	if !ok {
		return models.ShopItem{}, 0, unknownItem(idOrName)
	}

	var owned int
	err := s.store.Update(ctx, "admin_give_item", func(doc *models.Document) error {
		u := doc.Account(key(userID))
		u.Items[item.ID] += amount
		owned = u.Items[item.ID]
		return nil
	})
	if err != nil {
		return models.ShopItem{}, 0, err
	}

	slog.Info("Admin gave item",
		slog.String("type", "cmd"),
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID),
		slog.Int("amount", amount),
	)
	return item, owned, nil
}
