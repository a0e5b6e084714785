package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"
)

// RoleAPI is the slice of the Discord REST API used for role effects.
type RoleAPI interface {
	GetRoles(guildID snowflake.ID, opts ...rest.RequestOpt) ([]discord.Role, error)
	AddMemberRole(guildID snowflake.ID, userID snowflake.ID, roleID snowflake.ID, opts ...rest.RequestOpt) error
	RemoveMemberRole(guildID snowflake.ID, userID snowflake.ID, roleID snowflake.ID, opts ...rest.RequestOpt) error
}

// RoleService grants and revokes guild roles. Name lookups are cached per
// guild; a failed grant drops the guild's cached entries.
type RoleService struct {
	api   RoleAPI
	cache *lru.Cache
}

var _ economy.RoleGranter = (*RoleService)(nil)

func NewRoleService(api RoleAPI) *RoleService {
	cache, _ := lru.New(config.RoleCacheSize)
	return &RoleService{api: api, cache: cache}
}

// NewRoleServiceFromClient uses the client's REST API.
func NewRoleServiceFromClient(client bot.Client) *RoleService {
	return NewRoleService(client.Rest())
}

func cacheKey(guildID snowflake.ID, name string) string {
	return fmt.Sprintf("%s:%s", guildID, name)
}

func (s *RoleService) FindRoleByName(ctx context.Context, guildID snowflake.ID, name string) (economy.Role, bool, error) {
	if cached, ok := s.cache.Get(cacheKey(guildID, name)); ok {
		return cached.(economy.Role), true, nil
	}

	roles, err := s.api.GetRoles(guildID, rest.WithCtx(ctx))
	if err != nil {
		return economy.Role{}, false, fmt.Errorf("failed to list roles of guild %s: %w", guildID, err)
	}
	for _, r := range roles {
		if r.Name == name {
			role := economy.Role{ID: r.ID, Name: r.Name}
			s.cache.Add(cacheKey(guildID, name), role)
			return role, true, nil
		}
	}
	return economy.Role{}, false, nil
}

func (s *RoleService) GrantRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error {
	if err := s.api.AddMemberRole(guildID, userID, roleID, rest.WithCtx(ctx)); err != nil {
		s.forget(guildID, roleID)
		return fmt.Errorf("failed to add role %s to %s: %w", roleID, userID, err)
	}
	slog.Info("Role granted",
		slog.String("type", "shop"),
		slog.String("guild_id", guildID.String()),
		slog.String("user_id", userID.String()),
		slog.String("role_id", roleID.String()),
	)
	return nil
}

func (s *RoleService) RevokeRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error {
	if err := s.api.RemoveMemberRole(guildID, userID, roleID, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to remove role %s from %s: %w", roleID, userID, err)
	}
	return nil
}

// forget drops cached lookups that resolved to roleID in guildID.
func (s *RoleService) forget(guildID, roleID snowflake.ID) {
	prefix := guildID.String() + ":"
	for _, k := range s.cache.Keys() {
		key, _ := k.(string)
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if v, ok := s.cache.Peek(k); ok && v.(economy.Role).ID == roleID {
			s.cache.Remove(k)
		}
	}
}
