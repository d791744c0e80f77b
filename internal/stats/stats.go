// Package stats computes derived guest/companion/gift totals and implements
// the list filtering and sorting used by the dashboard and gift registry.
// Everything here is pure: callers load guests and pass them in.
package stats

import (
	"strings"

	"github.com/weddlist/backend/internal/models"
)

// WeddingStats are the dashboard totals for a whole wedding.
type WeddingStats struct {
	TotalGuests     int     `json:"total_guests"`
	TotalAdults     int     `json:"total_adults"`
	TotalChildren   int     `json:"total_children"`
	TotalCost       float64 `json:"total_cost"`
	TotalGiftAmount float64 `json:"total_gift_amount"`
}

// GroupStats are the per-group totals. Groups carry no seat price, so there
// is no cost figure.
type GroupStats struct {
	TotalGuests     int     `json:"total_guests"`
	TotalAdults     int     `json:"total_adults"`
	TotalChildren   int     `json:"total_children"`
	TotalGiftAmount float64 `json:"total_gift_amount"`
}

// Compute aggregates totals over a guest list. Primary guests always count
// as adults; only companions can be children, and children do not occupy a
// billable seat. An empty list yields a zero-valued result.
func Compute(guests []models.Guest, pricePerPerson float64) WeddingStats {
	adults, children, giftAmount := tally(guests)
	return WeddingStats{
		TotalGuests:     adults + children,
		TotalAdults:     adults,
		TotalChildren:   children,
		TotalCost:       float64(adults) * pricePerPerson,
		TotalGiftAmount: giftAmount,
	}
}

// ComputeGroup aggregates totals over one group's guest subset.
func ComputeGroup(guests []models.Guest) GroupStats {
	adults, children, giftAmount := tally(guests)
	return GroupStats{
		TotalGuests:     adults + children,
		TotalAdults:     adults,
		TotalChildren:   children,
		TotalGiftAmount: giftAmount,
	}
}

func tally(guests []models.Guest) (adults, children int, giftAmount float64) {
	adults = len(guests)
	for _, g := range guests {
		for _, c := range g.Companions {
			if c.IsAdult {
				adults++
			} else {
				children++
			}
		}
		giftAmount += g.Gift.MoneyAmount()
	}
	return adults, children, giftAmount
}

// ViewMode selects which grouping bucket a guest listing shows.
type ViewMode string

const (
	ViewAll       ViewMode = "all"
	ViewGroups    ViewMode = "groups"
	ViewUngrouped ViewMode = "ungrouped"
)

// Filter narrows a guest list. Zero values ("", "all") pass everything
// through.
type Filter struct {
	Search     string
	Side       string
	Attendance string
	View       ViewMode
}

// Active reports whether any narrowing criterion is set.
func (f Filter) Active() bool {
	return f.Search != "" ||
		(f.Side != "" && f.Side != "all") ||
		(f.Attendance != "" && f.Attendance != "all") ||
		(f.View != "" && f.View != ViewAll)
}

func (f Filter) matches(g models.Guest) bool {
	if f.Search != "" {
		name := strings.ToLower(g.FirstName + " " + g.LastName)
		if !strings.Contains(name, strings.ToLower(f.Search)) {
			return false
		}
	}
	if f.Side != "" && f.Side != "all" && string(g.Side) != f.Side {
		return false
	}
	if f.Attendance != "" && f.Attendance != "all" && string(g.Attendance) != f.Attendance {
		return false
	}
	switch f.View {
	case ViewGroups:
		if g.GroupID == nil {
			return false
		}
	case ViewUngrouped:
		if g.GroupID != nil {
			return false
		}
	}
	return true
}

// FilterGuests returns the guests matching the filter, preserving order.
func FilterGuests(guests []models.Guest, f Filter) []models.Guest {
	out := make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		if f.matches(g) {
			out = append(out, g)
		}
	}
	return out
}
