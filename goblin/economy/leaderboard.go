package economy

import (
	"sort"

	"github.com/afterclass/commitgoblin/goblin/database/models"
)

type LeaderboardSort string

const (
	SortCoins    LeaderboardSort = "coins"
	SortStreak   LeaderboardSort = "streak"
	SortCheckins LeaderboardSort = "checkins"
)

// ParseLeaderboardSort defaults unknown values to coins.
func ParseLeaderboardSort(s string) LeaderboardSort {
	switch LeaderboardSort(s) {
	case SortStreak, SortCheckins:
		return LeaderboardSort(s)
	default:
		return SortCoins
	}
}

type LeaderboardEntry struct {
	UserID        string
	Coins         int
	Streak        int
	CheckinsTotal int
}

func (e LeaderboardEntry) Value(by LeaderboardSort) int {
	switch by {
	case SortStreak:
		return e.Streak
	case SortCheckins:
		return e.CheckinsTotal
	default:
		return e.Coins
	}
}

type TeamStanding struct {
	TeamID        string
	Name          string
	Members       int
	Coins         int
	CheckinsTotal int
	BestStreak    int
}

func (t TeamStanding) Value(by LeaderboardSort) int {
	switch by {
	case SortStreak:
		return t.BestStreak
	case SortCheckins:
		return t.CheckinsTotal
	default:
		return t.Coins
	}
}

// Leaderboard ranks users. Ties: coins by streak, streak by coins, check-ins
// by streak; remaining ties by user id.
func (s *Service) Leaderboard(by LeaderboardSort, limit int) []LeaderboardEntry {
	var out []LeaderboardEntry
	s.store.View(func(doc *models.Document) {
		out = make([]LeaderboardEntry, 0, len(doc.Users))
		for id, u := range doc.Users {
			out = append(out, LeaderboardEntry{
				UserID:        id,
				Coins:         u.Coins,
				Streak:        u.Streak,
				CheckinsTotal: u.CheckinsTotal,
			})
		}
	})

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var primary, secondary [2]int
		switch by {
		case SortStreak:
			primary, secondary = [2]int{a.Streak, b.Streak}, [2]int{a.Coins, b.Coins}
		case SortCheckins:
			primary, secondary = [2]int{a.CheckinsTotal, b.CheckinsTotal}, [2]int{a.Streak, b.Streak}
		default:
			primary, secondary = [2]int{a.Coins, b.Coins}, [2]int{a.Streak, b.Streak}
		}
		if primary[0] != primary[1] {
			return primary[0] > primary[1]
		}
		if secondary[0] != secondary[1] {
			return secondary[0] > secondary[1]
		}
		return a.UserID < b.UserID
	})
	return truncate(out, limit)
}

// TeamLeaderboard ranks teams with at least one member by summed coins,
// summed check-ins or best member streak. Ties: coins by check-ins, the
// others by coins.
func (s *Service) TeamLeaderboard(by LeaderboardSort, limit int) []TeamStanding {
	var out []TeamStanding
	s.store.View(func(doc *models.Document) {
		for _, t := range doc.Teams {
			if len(t.Members) == 0 {
				continue
			}
			st := TeamStanding{TeamID: t.ID, Name: t.Name, Members: len(t.Members)}
			for _, uid := range t.Members {
				u, ok := doc.LookupAccount(uid)
				if !ok {
					continue
				}
				st.Coins += u.Coins
				st.CheckinsTotal += u.CheckinsTotal
				st.BestStreak = max(st.BestStreak, u.Streak)
			}
			out = append(out, st)
		}
	})

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var primary, secondary [2]int
		switch by {
		case SortStreak:
			primary, secondary = [2]int{a.BestStreak, b.BestStreak}, [2]int{a.Coins, b.Coins}
		case SortCheckins:
			primary, secondary = [2]int{a.CheckinsTotal, b.CheckinsTotal}, [2]int{a.Coins, b.Coins}
		default:
			primary, secondary = [2]int{a.Coins, b.Coins}, [2]int{a.CheckinsTotal, b.CheckinsTotal}
		}
		if primary[0] != primary[1] {
			return primary[0] > primary[1]
		}
		if secondary[0] != secondary[1] {
			return secondary[0] > secondary[1]
		}
		return a.TeamID < b.TeamID
	})
	return truncate(out, limit)
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
