package models

// Document is the whole persisted state. It is serialised and written as a
// unit after every mutation.
type Document struct {
	Users map[string]*UserAccount `json:"users"`
	Teams map[string]*Team        `json:"teams"`
	Shop  map[string]*ShopItem    `json:"shop"`
}

func NewDocument() *Document {
	return &Document{
		Users: make(map[string]*UserAccount),
		Teams: make(map[string]*Team),
		Shop:  make(map[string]*ShopItem),
	}
}

// Normalize fills missing maps and repairs partially written records so the
// rest of the code never sees nil collections.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = make(map[string]*UserAccount)
	}
	if d.Teams == nil {
		d.Teams = make(map[string]*Team)
	}
	if d.Shop == nil {
		d.Shop = make(map[string]*ShopItem)
	}
	for id, u := range d.Users {
		if u == nil {
			d.Users[id] = NewUserAccount()
			continue
		}
		u.normalize()
	}
	for id, t := range d.Teams {
		if t == nil {
			delete(d.Teams, id)
			continue
		}
		if t.ID == "" {
			t.ID = id
		}
		if t.Members == nil {
			t.Members = make([]string, 0)
		}
	}
	for id, item := range d.Shop {
		if item == nil || item.Kind == nil {
			delete(d.Shop, id)
			continue
		}
		if item.ID == "" {
			item.ID = id
		}
	}
}

// Account returns the account for userID, creating it on first reference.
func (d *Document) Account(userID string) *UserAccount {
	u, ok := d.Users[userID]
	if !ok || u == nil {
		u = NewUserAccount()
		d.Users[userID] = u
	}
	return u
}

// LookupAccount returns the account for userID without creating it.
func (d *Document) LookupAccount(userID string) (*UserAccount, bool) {
	u, ok := d.Users[userID]
	return u, ok && u != nil
}

// TeamsOf returns the teams userID belongs to.
func (d *Document) TeamsOf(userID string) []*Team {
	var out []*Team
	for _, t := range d.Teams {
		if t.HasMember(userID) {
			out = append(out, t)
		}
	}
	return out
}
