package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent map[snowflake.ID][]string
	err  error
}

func (f *fakeSender) CreateMessage(channelID snowflake.ID, m discord.MessageCreate, _ ...rest.RequestOpt) (*discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.sent == nil {
		f.sent = make(map[snowflake.ID][]string)
	}
	f.sent[channelID] = append(f.sent[channelID], m.Content)
	return &discord.Message{ChannelID: channelID, Content: m.Content}, nil
}

func TestDiscordNotifier_Send(t *testing.T) {
	ctx := context.Background()
	n := NewDiscordNotifier(100, 10)

	assert.False(t, n.Send(ctx, 42, "no client yet"))

	sender := &fakeSender{}
	n.SetSender(sender)
	assert.False(t, n.Send(ctx, 0, "no channel"))

	require.True(t, n.Send(ctx, 42, "Focus done\nGreat job"))
	require.Len(t, sender.sent[42], 1)
	assert.Contains(t, sender.sent[42][0], "┃ Focus done")
	assert.Contains(t, sender.sent[42][0], "┃ Great job")

	sender.err = errors.New("missing access")
	assert.False(t, n.Send(ctx, 42, "hello"))
}

func TestDiscordNotifier_SendHonorsContext(t *testing.T) {
	n := NewDiscordNotifier(0.001, 1)
	n.SetSender(&fakeSender{})

	require.True(t, n.Send(context.Background(), 42, "first"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.False(t, n.Send(ctx, 42, "throttled"))
}

type fakeRoleAPI struct {
	roles     []discord.Role
	listCalls int
	added     []snowflake.ID
	removed   []snowflake.ID
	addErr    error
	removeErr error
}

func (f *fakeRoleAPI) GetRoles(_ snowflake.ID, _ ...rest.RequestOpt) ([]discord.Role, error) {
	f.listCalls++
	return f.roles, nil
}

func (f *fakeRoleAPI) AddMemberRole(_, _, roleID snowflake.ID, _ ...rest.RequestOpt) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, roleID)
	return nil
}

func (f *fakeRoleAPI) RemoveMemberRole(_, _, roleID snowflake.ID, _ ...rest.RequestOpt) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, roleID)
	return nil
}

func TestRoleService(t *testing.T) {
	ctx := context.Background()
	const guild, user snowflake.ID = 10, 20
	api := &fakeRoleAPI{roles: []discord.Role{{ID: 1, Name: "Member"}, {ID: 2, Name: "Golden Dev"}}}
	svc := NewRoleService(api)

	role, ok, err := svc.FindRoleByName(ctx, guild, "Golden Dev")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, economy.Role{ID: 2, Name: "Golden Dev"}, role)

	_, ok, err = svc.FindRoleByName(ctx, guild, "Golden Dev")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, api.listCalls, "second lookup is cached")

	_, ok, err = svc.FindRoleByName(ctx, guild, "golden dev")
	require.NoError(t, err)
	assert.False(t, ok, "names match exactly")

	require.NoError(t, svc.GrantRole(ctx, guild, user, 2))
	require.NoError(t, svc.RevokeRole(ctx, guild, user, 2))
	assert.Equal(t, []snowflake.ID{2}, api.added)
	assert.Equal(t, []snowflake.ID{2}, api.removed)

	api.addErr = errors.New("unknown role")
	assert.Error(t, svc.GrantRole(ctx, guild, user, 2))

	calls := api.listCalls
	_, _, err = svc.FindRoleByName(ctx, guild, "Golden Dev")
	require.NoError(t, err)
	assert.Equal(t, calls+1, api.listCalls, "failed grant drops the cached role")
}

func TestSuggestItems(t *testing.T) {
	candidates := []string{"golden-dev", "Golden Dev", "roast", "Roast", "raffle-ticket", "Raffle Ticket", "shoutout"}

	assert.Equal(t, []string{"roast"}, SuggestItems("rost", candidates, 1))
	assert.Equal(t, []string{"Roast"}, SuggestItems("rost", []string{"Roast", "roast"}, 3), "first spelling wins")
	got := SuggestItems("gld", candidates, 3)
	require.NotEmpty(t, got)
	assert.Contains(t, []string{"golden-dev", "Golden Dev"}, got[0])
	assert.Nil(t, SuggestItems("  ", candidates, 3))
	assert.Empty(t, SuggestItems("zzz", candidates, 3))
}

func TestParseCatalog(t *testing.T) {
	items, err := ParseCatalog([]byte(`
items:
  - id: sticker
    name: Sticker Pack
    cost: 15
    type: ticket
  - id: night-owl
    name: Night Owl
    cost: 300
    type: role
    role_name: Night Owl
    duration_hours: 48
  - id: hype
    cost: 40
    type: usable
    usable_command: shoutout
`))
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, models.TicketItem{}, items[0].Kind)
	assert.Equal(t, models.RoleItem{RoleName: "Night Owl", DurationHours: 48}, items[1].Kind)
	assert.Equal(t, models.UsableItem{Command: models.UsableShoutout}, items[2].Kind)
	assert.Equal(t, "hype", items[2].Name)

	tests := map[string]string{
		"missing id":     "items:\n  - name: x\n    type: ticket\n",
		"duplicate id":   "items:\n  - id: a\n    type: ticket\n  - id: a\n    type: ticket\n",
		"unknown type":   "items:\n  - id: a\n    type: potion\n",
		"role sans name": "items:\n  - id: a\n    type: role\n",
		"negative cost":  "items:\n  - id: a\n    type: ticket\n    cost: -1\n",
		"bad yaml":       "items: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}

	items, err = LoadCatalog("")
	assert.NoError(t, err)
	assert.Nil(t, items)
}

type fakePutter struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[*in.Bucket+"/"+*in.Key] = body
	return &s3.PutObjectOutput{}, nil
}

type staticSnapshot []byte

func (s staticSnapshot) Snapshot() ([]byte, error) { return s, nil }
func (s staticSnapshot) Backend() string           { return "memory" }

func TestBackupService_Upload(t *testing.T) {
	putter := &fakePutter{}
	svc := NewBackupService(putter, "goblin", "/backups/", staticSnapshot(`{"users":{}}`))
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC) }

	key, err := svc.Upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backups/20250310T083000Z.json", key)
	assert.True(t, bytes.Equal([]byte(`{"users":{}}`), putter.objects["goblin/backups/20250310T083000Z.json"]))
	assert.Contains(t, putter.objects, "goblin/backups/latest.json")

	putter.err = errors.New("access denied")
	_, err = svc.Upload(context.Background())
	assert.Error(t, err)
}

func TestBackupService_Schedule(t *testing.T) {
	svc := NewBackupService(&fakePutter{}, "goblin", "", staticSnapshot(`{}`))
	assert.Equal(t, "backups", svc.prefix)

	assert.Error(t, svc.Start("every so often"))
	require.NoError(t, svc.Start("@every 1h"))
	assert.Error(t, svc.Start("@every 1h"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	svc.Stop(ctx)
	svc.Stop(ctx)
}
