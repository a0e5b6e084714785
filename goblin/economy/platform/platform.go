// Package platform holds the chat-platform role contract the economy depends on.
package platform

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

//go:generate go run go.uber.org/mock/mockgen -destination=../mock/role_granter.go -package=mock . RoleGranter

// Role is a guild role as seen by the economy.
type Role struct {
	ID   snowflake.ID
	Name string
}

// RoleGranter performs role changes on the chat platform.
type RoleGranter interface {
	FindRoleByName(ctx context.Context, guildID snowflake.ID, name string) (Role, bool, error)
	GrantRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error
	RevokeRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error
}
