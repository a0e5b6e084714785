package economy

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const goldenRole snowflake.ID = 7777

func TestService_ListShop(t *testing.T) {
	f := newFixture(t)

	items := f.svc.ListShop()
	require.Len(t, items, 4)
	assert.Equal(t, models.ItemGoldenDev, items[0].ID)
	assert.Equal(t, models.ItemRaffleTicket, items[3].ID)
	// Equal costs fall back to id order.
	assert.Equal(t, models.ItemRoast, items[1].ID)
	assert.Equal(t, models.ItemShoutout, items[2].ID)
}

func TestService_Purchase(t *testing.T) {
	tests := []struct {
		name      string
		coins     int
		req       PurchaseRequest
		setup     func(f *fixture)
		wantCode  errs.Code
		wantCoins int
		check     func(t *testing.T, f *fixture, res PurchaseResult)
	}{
		{
			name:      "inventory item",
			coins:     120,
			req:       PurchaseRequest{UserID: alice, Item: "shoutout", Amount: 2},
			wantCoins: 20,
			check: func(t *testing.T, f *fixture, res PurchaseResult) {
				assert.Equal(t, 100, res.TotalCost)
				assert.Equal(t, 2, res.Owned)
				assert.Equal(t, 2, f.svc.Balance(alice).Items[models.ItemShoutout])
			},
		},
		{
			name:      "insufficient funds",
			coins:     30,
			req:       PurchaseRequest{UserID: alice, Item: "roast", Amount: 1},
			wantCode:  errs.CodeInsufficientFunds,
			wantCoins: 30,
		},
		{
			name:      "zero amount",
			coins:     100,
			req:       PurchaseRequest{UserID: alice, Item: "roast", Amount: 0},
			wantCode:  errs.CodeInvalidInput,
			wantCoins: 100,
		},
		{
			name:      "cost overflow",
			coins:     0,
			req:       PurchaseRequest{UserID: alice, Item: "shoutout", Amount: math.MaxInt/50 + 1},
			wantCode:  errs.CodeInvalidInput,
			wantCoins: 0,
			check: func(t *testing.T, f *fixture, _ PurchaseResult) {
				assert.Zero(t, f.svc.Balance(alice).Items[models.ItemShoutout])
			},
		},
		{
			name:      "unknown item",
			coins:     100,
			req:       PurchaseRequest{UserID: alice, Item: "unicorn", Amount: 1},
			wantCode:  errs.CodeNotFound,
			wantCoins: 100,
		},
		{
			name:      "role outside a server",
			coins:     500,
			req:       PurchaseRequest{UserID: alice, Item: "golden-dev", Amount: 1},
			wantCode:  errs.CodeInvalidInput,
			wantCoins: 500,
		},
		{
			name:  "role granted",
			coins: 250,
			req:   PurchaseRequest{UserID: alice, GuildID: guild, Item: "Golden Dev", Amount: 1},
			setup: func(f *fixture) {
				f.roles.EXPECT().FindRoleByName(gomock.Any(), guild, config.GoldenDevRoleName).
					Return(Role{ID: goldenRole, Name: config.GoldenDevRoleName}, true, nil)
				f.roles.EXPECT().GrantRole(gomock.Any(), guild, alice, goldenRole).Return(nil)
			},
			wantCoins: 50,
			check: func(t *testing.T, f *fixture, res PurchaseResult) {
				assert.Equal(t, f.clock.now.Add(24*time.Hour), res.ExpiresAt)
				effects := f.svc.Balance(alice).ActiveEffects
				require.Len(t, effects, 1)
				assert.Equal(t, goldenRole.String(), effects[0].RoleID)
				assert.Equal(t, guild.String(), effects[0].GuildID)
				assert.Equal(t, models.ItemGoldenDev, effects[0].ItemID)
			},
		},
		{
			name:  "role missing is refunded",
			coins: 250,
			req:   PurchaseRequest{UserID: alice, GuildID: guild, Item: "golden-dev", Amount: 1},
			setup: func(f *fixture) {
				f.roles.EXPECT().FindRoleByName(gomock.Any(), guild, config.GoldenDevRoleName).
					Return(Role{}, false, nil)
			},
			wantCode:  errs.CodeExternalActionFailure,
			wantCoins: 250,
			check: func(t *testing.T, f *fixture, _ PurchaseResult) {
				assert.Empty(t, f.svc.Balance(alice).ActiveEffects)
			},
		},
		{
			name:  "grant failure is refunded",
			coins: 200,
			req:   PurchaseRequest{UserID: alice, GuildID: guild, Item: "golden-dev", Amount: 1},
			setup: func(f *fixture) {
				f.roles.EXPECT().FindRoleByName(gomock.Any(), guild, config.GoldenDevRoleName).
					Return(Role{ID: goldenRole}, true, nil)
				f.roles.EXPECT().GrantRole(gomock.Any(), guild, alice, goldenRole).
					Return(errors.New("missing permissions"))
			},
			wantCode:  errs.CodeExternalActionFailure,
			wantCoins: 200,
			check: func(t *testing.T, f *fixture, _ PurchaseResult) {
				assert.Empty(t, f.svc.Balance(alice).ActiveEffects)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.setCoins(t, alice, tt.coins)
			if tt.setup != nil {
				tt.setup(f)
			}

			res, err := f.svc.Purchase(context.Background(), tt.req)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errs.CodeOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantCoins, res.Coins)
			}
			assert.Equal(t, tt.wantCoins, f.svc.Balance(alice).Coins)
			if tt.check != nil {
				tt.check(t, f, res)
			}
		})
	}
}

func TestService_InsufficientFundsMessage(t *testing.T) {
	f := newFixture(t)
	f.setCoins(t, alice, 10)

	_, err := f.svc.Purchase(context.Background(), PurchaseRequest{UserID: alice, Item: "roast", Amount: 2})
	assert.Equal(t, "You don't have enough coins. You need **100**, but you only have **10**.", errs.MessageOf(err))
}

func TestService_Inventory(t *testing.T) {
	f := newFixture(t)
	f.setItems(t, alice, models.ItemRoast, 2)
	f.setItems(t, alice, models.ItemShoutout, 0)
	f.setItems(t, alice, "retired-item", 1)

	inv := f.svc.Inventory(alice)
	require.Len(t, inv, 2)
	assert.Equal(t, InventoryEntry{ItemID: "retired-item", Name: "retired-item", Count: 1}, inv[0])
	assert.Equal(t, InventoryEntry{ItemID: models.ItemRoast, Name: "Roast", Count: 2}, inv[1])

	assert.Empty(t, f.svc.Inventory(bob))
}

func TestService_ReapEffects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	now := f.clock.now
	otherGuild := snowflake.ID(9100)

	require.NoError(t, f.store.Update(ctx, "test", func(doc *models.Document) error {
		doc.Account(key(alice)).ActiveEffects = []models.Effect{
			{Type: models.EffectTypeRole, RoleID: "7777", GuildID: guild.String(), ItemID: models.ItemGoldenDev, ExpiresAt: now.Add(-time.Minute)},
			{Type: models.EffectTypeRole, RoleID: "8888", GuildID: guild.String(), ItemID: models.ItemGoldenDev, ExpiresAt: now.Add(time.Hour)},
			{Type: models.EffectTypeRole, RoleID: "9999", GuildID: otherGuild.String(), ItemID: models.ItemGoldenDev, ExpiresAt: now.Add(-time.Hour)},
			{Type: models.EffectTypeRole, RoleID: "6666", ItemID: models.ItemGoldenDev, ExpiresAt: now.Add(-time.Hour)},
			{Type: models.EffectTypeRole, RoleID: "5555", GuildID: guild.String(), ItemID: models.ItemGoldenDev},
		}
		return nil
	}))

	f.roles.EXPECT().RevokeRole(gomock.Any(), guild, alice, snowflake.ID(7777)).Return(nil)
	f.roles.EXPECT().RevokeRole(gomock.Any(), guild, alice, snowflake.ID(6666)).Return(errors.New("unknown role"))

	assert.Equal(t, 2, f.svc.ReapEffects(ctx, alice, guild))

	var left []string
	for _, e := range f.svc.Balance(alice).ActiveEffects {
		left = append(left, e.RoleID)
	}
	assert.Equal(t, []string{"8888", "9999", "5555"}, left)

	// Nothing due: no revokes, no changes.
	assert.Zero(t, f.svc.ReapEffects(ctx, alice, guild))
	assert.Zero(t, f.svc.ReapEffects(ctx, alice, 0))
	assert.Zero(t, f.svc.ReapEffects(ctx, bob, guild))
}
