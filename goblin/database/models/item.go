package models

import (
	"encoding/json"
	"fmt"
)

// Item type names as stored in the document.
const (
	ItemTypeRole   = "role"
	ItemTypeUsable = "usable"
	ItemTypeTicket = "ticket"
)

// Default shop item IDs.
const (
	ItemGoldenDev    = "golden-dev"
	ItemShoutout     = "shoutout"
	ItemRoast        = "roast"
	ItemRaffleTicket = "raffle-ticket"
)

// UsableCommand names the effect run when a usable item is consumed.
type UsableCommand string

const (
	UsableShoutout UsableCommand = "shoutout"
	UsableRoast    UsableCommand = "roast"
)

// ItemKind is the closed set of item behaviours: RoleItem, UsableItem or TicketItem.
type ItemKind interface {
	TypeName() string
}

// RoleItem grants a guild role for DurationHours on purchase.
type RoleItem struct {
	RoleName      string
	DurationHours int
}

// UsableItem is stored in inventory and consumed by /use.
type UsableItem struct {
	Command UsableCommand
}

// TicketItem is stored in inventory with no runtime effect.
type TicketItem struct{}

func (RoleItem) TypeName() string   { return ItemTypeRole }
func (UsableItem) TypeName() string { return ItemTypeUsable }
func (TicketItem) TypeName() string { return ItemTypeTicket }

type ShopItem struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Kind        ItemKind
}

// shopItemJSON is the flat on-disk shape of a ShopItem.
type shopItemJSON struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Cost          int    `json:"cost"`
	Type          string `json:"type"`
	RoleName      string `json:"roleName,omitempty"`
	DurationHours int    `json:"durationHours,omitempty"`
	UsableCommand string `json:"usableCommand,omitempty"`
}

func (s ShopItem) MarshalJSON() ([]byte, error) {
	out := shopItemJSON{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Cost:        s.Cost,
	}
	switch k := s.Kind.(type) {
	case RoleItem:
		out.Type = ItemTypeRole
		out.RoleName = k.RoleName
		out.DurationHours = k.DurationHours
	case UsableItem:
		out.Type = ItemTypeUsable
		out.UsableCommand = string(k.Command)
	case TicketItem:
		out.Type = ItemTypeTicket
	default:
		return nil, fmt.Errorf("shop item %q has no kind", s.ID)
	}
	return json.Marshal(out)
}

func (s *ShopItem) UnmarshalJSON(data []byte) error {
	var in shopItemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	kind, err := ParseItemKind(in.Type, in.RoleName, in.DurationHours, in.UsableCommand)
	if err != nil {
		return fmt.Errorf("shop item %q: %w", in.ID, err)
	}
	*s = ShopItem{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Cost:        in.Cost,
		Kind:        kind,
	}
	return nil
}

// ParseItemKind builds an ItemKind from its flat on-disk fields.
func ParseItemKind(typeName, roleName string, durationHours int, usable string) (ItemKind, error) {
	switch typeName {
	case ItemTypeRole:
		if roleName == "" {
			return nil, fmt.Errorf("role item without role name")
		}
		return RoleItem{RoleName: roleName, DurationHours: durationHours}, nil
	case ItemTypeUsable:
		switch UsableCommand(usable) {
		case UsableShoutout, UsableRoast:
			return UsableItem{Command: UsableCommand(usable)}, nil
		default:
			return nil, fmt.Errorf("unknown usable command %q", usable)
		}
	case ItemTypeTicket:
		return TicketItem{}, nil
	default:
		return nil, fmt.Errorf("unknown item type %q", typeName)
	}
}

// DefaultShop returns the built-in catalog. The caller owns the returned items.
func DefaultShop(roleName string, roleHours int) []*ShopItem {
	return []*ShopItem{
		{
			ID:          ItemGoldenDev,
			Name:        "Golden Dev",
			Description: "Golden developer role for 24 hours.",
			Cost:        200,
			Kind:        RoleItem{RoleName: roleName, DurationHours: roleHours},
		},
		{
			ID:          ItemShoutout,
			Name:        "Shoutout",
			Description: "A one-time shoutout for a person of your choice.",
			Cost:        50,
			Kind:        UsableItem{Command: UsableShoutout},
		},
		{
			ID:          ItemRoast,
			Name:        "Roast",
			Description: "A friendly nerd roast from CommitGoblin.",
			Cost:        50,
			Kind:        UsableItem{Command: UsableRoast},
		},
		{
			ID:          ItemRaffleTicket,
			Name:        "Raffle Ticket",
			Description: "Ticket for future raffles.",
			Cost:        25,
			Kind:        TicketItem{},
		},
	}
}

// ItemAliases maps legacy item IDs to their canonical catalog IDs.
var ItemAliases = map[string]string{
	"honor-scroll": ItemShoutout,
	"roast-scroll": ItemRoast,
}

// CanonicalItemID resolves legacy aliases.
func CanonicalItemID(id string) string {
	if canon, ok := ItemAliases[id]; ok {
		return canon
	}
	return id
}
