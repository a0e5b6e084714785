package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyDocument = `{
  "users": {
    "42": {
      "coins": 120,
      "streak": 3,
      "lastCheckin": "2024-05-02",
      "items": {"shoutout": 1},
      "activeEffects": [
        {"type": "role", "roleId": "99", "itemId": "golden-dev", "expiresAt": "2024-05-03T10:00:00Z"}
      ]
    },
    "7": null
  },
  "teams": {
    "bug-hunters": {"name": "Bug Hunters", "createdBy": "42", "members": ["42"]}
  },
  "shop": {
    "golden-dev": {"id": "golden-dev", "name": "Golden Dev", "cost": 200, "type": "role", "roleName": "Golden Dev", "durationHours": 24},
    "roast": {"id": "roast", "name": "Roast", "cost": 50, "type": "usable", "usableCommand": "roast"}
  }
}`

func TestDocument_LegacyLayout(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, json.Unmarshal([]byte(legacyDocument), doc))
	doc.Normalize()

	u, ok := doc.LookupAccount("42")
	require.True(t, ok)
	assert.Equal(t, 120, u.Coins)
	assert.Equal(t, Day("2024-05-02"), u.LastCheckin)
	assert.Equal(t, 0, u.CheckinsTotal)
	assert.True(t, u.FocusStats.Day.IsZero())
	require.Len(t, u.ActiveEffects, 1)
	assert.Equal(t, EffectTypeRole, u.ActiveEffects[0].Type)

	nilUser, ok := doc.LookupAccount("7")
	require.True(t, ok)
	assert.NotNil(t, nilUser.Items)

	team := doc.Teams["bug-hunters"]
	require.NotNil(t, team)
	assert.Equal(t, "bug-hunters", team.ID)

	assert.Equal(t, RoleItem{RoleName: "Golden Dev", DurationHours: 24}, doc.Shop["golden-dev"].Kind)
	assert.Equal(t, UsableItem{Command: UsableRoast}, doc.Shop["roast"].Kind)
}

func TestShopItem_UnknownType(t *testing.T) {
	var item ShopItem
	err := json.Unmarshal([]byte(`{"id":"x","type":"mystery"}`), &item)
	assert.Error(t, err)
}

func TestShopItem_FlatLayout(t *testing.T) {
	data, err := json.Marshal(ShopItem{ID: "t", Name: "T", Cost: 5, Kind: TicketItem{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"t","name":"T","description":"","cost":5,"type":"ticket"}`, string(data))
}

func TestDay(t *testing.T) {
	tests := []struct {
		name string
		day  Day
		want Day
	}{
		{"mid month", "2024-05-02", "2024-05-01"},
		{"month boundary", "2024-03-01", "2024-02-29"},
		{"year boundary", "2025-01-01", "2024-12-31"},
		{"garbage", "not-a-day", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.day.Prev(); got != tt.want {
				t.Errorf("Day.Prev() = %v, want %v", got, tt.want)
			}
		})
	}

	late := time.Date(2024, 5, 2, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	assert.Equal(t, Day("2024-05-03"), DayOf(late))

	data, err := json.Marshal(struct {
		D Day `json:"d"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":null}`, string(data))
}

func TestEffect_Expired(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	assert.True(t, Effect{ExpiresAt: now}.Expired(now))
	assert.True(t, Effect{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
	assert.False(t, Effect{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.False(t, Effect{}.Expired(now))
}

func TestTeam_Members(t *testing.T) {
	team := &Team{Members: []string{"a"}}
	assert.False(t, team.AddMember("a"))
	assert.True(t, team.AddMember("b"))
	assert.True(t, team.RemoveMember("a"))
	assert.False(t, team.RemoveMember("a"))
	assert.Equal(t, []string{"b"}, team.Members)
}
