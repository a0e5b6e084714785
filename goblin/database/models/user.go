package models

// UserAccount is the per-user ledger entry. Accounts are created lazily on
// first reference and never deleted.
type UserAccount struct {
	Coins         int            `json:"coins"`
	Streak        int            `json:"streak"`
	LastCheckin   Day            `json:"lastCheckin"`
	CheckinsTotal int            `json:"checkinsTotal"`
	Items         map[string]int `json:"items"`
	ActiveEffects []Effect       `json:"activeEffects"`

	ShoutoutsGiven    int `json:"shoutoutsGiven"`
	ShoutoutsReceived int `json:"shoutoutsReceived"`
	RoastsGiven       int `json:"roastsGiven"`
	RoastsReceived    int `json:"roastsReceived"`

	FocusStats FocusStats `json:"focusStats"`
}

// FocusStats is the daily anti-grind bucket. It is reset whenever Day differs
// from the current UTC day.
type FocusStats struct {
	Day     Day `json:"day"`
	Minutes int `json:"minutes"`
	Coins   int `json:"coins"`
}

// NewUserAccount returns an empty account.
func NewUserAccount() *UserAccount {
	return &UserAccount{
		Items:         make(map[string]int),
		ActiveEffects: make([]Effect, 0),
	}
}

func (u *UserAccount) normalize() {
	if u.Items == nil {
		u.Items = make(map[string]int)
	}
	if u.ActiveEffects == nil {
		u.ActiveEffects = make([]Effect, 0)
	}
	if u.Coins < 0 {
		u.Coins = 0
	}
}

// Clone returns a deep copy safe to hand out of the store lock.
func (u *UserAccount) Clone() UserAccount {
	c := *u
	c.Items = make(map[string]int, len(u.Items))
	for k, v := range u.Items {
		c.Items[k] = v
	}
	c.ActiveEffects = append([]Effect(nil), u.ActiveEffects...)
	return c
}
