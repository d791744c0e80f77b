package stats

import (
	"sort"
	"strings"

	"github.com/weddlist/backend/internal/models"
)

// GiftRow is a gift flattened together with its guest, the shape the gift
// registry lists and sorts.
type GiftRow struct {
	GuestName   string          `json:"guest_name"`
	Side        models.Side     `json:"side"`
	Type        models.GiftType `json:"type"`
	Amount      *float64        `json:"amount"`
	Description *string         `json:"description"`
}

// GiftSortKey selects the active sort column of the gift registry.
type GiftSortKey string

const (
	SortByName   GiftSortKey = "name"
	SortByAmount GiftSortKey = "amount"
	SortByType   GiftSortKey = "type"
	SortBySide   GiftSortKey = "side"
)

func (k GiftSortKey) Valid() bool {
	switch k {
	case SortByName, SortByAmount, SortByType, SortBySide:
		return true
	}
	return false
}

// GiftRows flattens guests into gift rows, skipping guests without a gift.
func GiftRows(guests []models.Guest) []GiftRow {
	rows := make([]GiftRow, 0, len(guests))
	for _, g := range guests {
		if g.Gift == nil {
			continue
		}
		rows = append(rows, GiftRow{
			GuestName:   strings.TrimSpace(g.FirstName + " " + g.LastName),
			Side:        g.Side,
			Type:        g.Gift.Type,
			Amount:      g.Gift.Amount,
			Description: g.Gift.Description,
		})
	}
	return rows
}

// GiftFilter narrows the gift registry. Zero values pass through.
type GiftFilter struct {
	Search string
	Side   string
	Type   string
}

// FilterGifts returns the rows matching the filter, preserving order.
func FilterGifts(rows []GiftRow, f GiftFilter) []GiftRow {
	out := make([]GiftRow, 0, len(rows))
	for _, r := range rows {
		if f.Search != "" && !strings.Contains(strings.ToLower(r.GuestName), strings.ToLower(f.Search)) {
			continue
		}
		if f.Side != "" && f.Side != "all" && string(r.Side) != f.Side {
			continue
		}
		if f.Type != "" && f.Type != "all" && string(r.Type) != f.Type {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortGifts sorts rows in place by the given key. The sort is stable, so
// ties keep their original order. A missing amount sorts as 0.
func SortGifts(rows []GiftRow, key GiftSortKey, descending bool) {
	less := func(a, b GiftRow) bool {
		switch key {
		case SortByAmount:
			return amountOrZero(a) < amountOrZero(b)
		case SortByType:
			return a.Type < b.Type
		case SortBySide:
			return a.Side < b.Side
		default:
			return a.GuestName < b.GuestName
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

// MoneyTotal sums the monetary gifts among rows; other gift types
// contribute nothing.
func MoneyTotal(rows []GiftRow) float64 {
	var total float64
	for _, r := range rows {
		if r.Type == models.GiftMoney && r.Amount != nil {
			total += *r.Amount
		}
	}
	return total
}

func amountOrZero(r GiftRow) float64 {
	if r.Amount == nil {
		return 0
	}
	return *r.Amount
}
