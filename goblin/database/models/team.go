package models

import (
	"slices"
	"time"
)

type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	Members     []string  `json:"members"`
}

func (t *Team) HasMember(userID string) bool {
	return slices.Contains(t.Members, userID)
}

// AddMember appends userID unless already present.
func (t *Team) AddMember(userID string) bool {
	if t.HasMember(userID) {
		return false
	}
	t.Members = append(t.Members, userID)
	return true
}

// RemoveMember drops every occurrence of userID.
func (t *Team) RemoveMember(userID string) bool {
	before := len(t.Members)
	t.Members = slices.DeleteFunc(t.Members, func(id string) bool { return id == userID })
	return len(t.Members) != before
}

func (t *Team) Clone() Team {
	c := *t
	c.Members = append([]string(nil), t.Members...)
	return c
}
