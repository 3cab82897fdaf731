// Package fines is the banter ledger: the fixed table of fine categories and
// per-player totals.
package fines

import (
	"cmp"
	"slices"
	"strings"
)

// Category is a kind of fine with its amount in euros.
type Category struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

var categories = []Category{
	{"3 Putt", 1, "Taking 3 stabs with a putter"},
	{"Woody", 1, "Hitting a tree during your round"},
	{"Wetty", 1, "Ball landing in water hazard"},
	{"Sandy", 1, "Ball landing in bunker"},
	{"Lost Ball", 2, "Losing a ball during play"},
	{"Air Shot", 2, "Completely missing the ball on a swing"},
	{"Not clearing ladies tee", 5, "Drive that doesn't make it past the ladies tee box"},
	{"Club Throw", 2, "Throwing a club in frustration"},
	{"Late for Tee Time", 5, "Arriving late for scheduled tee time"},
	{"Phone Ringing", 2, "Phone going off during play"},
	{"Dress Code Violation", 2, "Not adhering to proper golf attire"},
}

// Categories returns the category table in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// Lookup finds a category by name, ignoring case and surrounding space.
func Lookup(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// Entry is one recorded fine.
type Entry struct {
	PlayerID   string
	PlayerName string
	Amount     float64
}

// Total is a player's summed fines.
type Total struct {
	PlayerID   string  `json:"playerID"`
	PlayerName string  `json:"playerName"`
	Count      int     `json:"count"`
	Amount     float64 `json:"amount"`
}

// Totals sums fines per player, largest amount first, ties by name.
func Totals(entries []Entry) []Total {
	byPlayer := make(map[string]*Total)
	var out []*Total
	for _, e := range entries {
		t, ok := byPlayer[e.PlayerID]
		if !ok {
			t = &Total{PlayerID: e.PlayerID, PlayerName: e.PlayerName}
			byPlayer[e.PlayerID] = t
			out = append(out, t)
		}
		t.Count++
		t.Amount += e.Amount
	}

	totals := make([]Total, 0, len(out))
	for _, t := range out {
		totals = append(totals, *t)
	}
	slices.SortFunc(totals, func(a, b Total) int {
		return cmp.Or(cmp.Compare(b.Amount, a.Amount), cmp.Compare(a.PlayerName, b.PlayerName), cmp.Compare(a.PlayerID, b.PlayerID))
	})
	return totals
}
