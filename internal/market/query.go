package market

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// MaxLimit caps how many rows a view renders.
const MaxLimit = 500

// SortSymbol is the sort key every view supports and the fallback for
// unknown keys.
const SortSymbol = "symbol"

// Query narrows and orders the rows a view renders.
type Query struct {
	Search string
	Sort   string
	Desc   bool
	// Limit of zero means no limit.
	Limit int
}

// ParseQuery reads q, sort, order, and limit from URL query values. Missing
// keys take def. A present but empty limit clears any default limit.
func ParseQuery(values url.Values, def Query) Query {
	q := def

	if v := strings.TrimSpace(values.Get("q")); v != "" {
		q.Search = v
	}
	if v := strings.ToLower(strings.TrimSpace(values.Get("sort"))); v != "" {
		q.Sort = v
	}
	switch strings.ToLower(values.Get("order")) {
	case "asc":
		q.Desc = false
	case "desc":
		q.Desc = true
	}
	if values.Has("limit") {
		v := strings.TrimSpace(values.Get("limit"))
		if v == "" {
			q.Limit = 0
		} else if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}

	if q.Limit <= 0 {
		q.Limit = 0
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

type sortKeys[T any] map[string]func(a, b T) int

// TickerSortKeys lists the columns the market table sorts by.
var TickerSortKeys = sortKeys[Ticker]{
	SortSymbol: func(a, b Ticker) int { return cmp.Compare(a.Symbol, b.Symbol) },
	"price":    func(a, b Ticker) int { return cmp.Compare(a.Price, b.Price) },
	"change":   func(a, b Ticker) int { return cmp.Compare(a.Change, b.Change) },
	"volume":   func(a, b Ticker) int { return cmp.Compare(a.Volume, b.Volume) },
	"funding": func(a, b Ticker) int {
		return cmp.Compare(derefOr(a.FundingRate, 0), derefOr(b.FundingRate, 0))
	},
}

// OpenInterestSortKeys lists the columns the open-interest view sorts by.
var OpenInterestSortKeys = sortKeys[OpenInterest]{
	SortSymbol: func(a, b OpenInterest) int { return cmp.Compare(a.Symbol, b.Symbol) },
	"oi":       func(a, b OpenInterest) int { return cmp.Compare(a.OpenInterest, b.OpenInterest) },
	"funding":  func(a, b OpenInterest) int { return cmp.Compare(a.FundingRate, b.FundingRate) },
	"5m":       func(a, b OpenInterest) int { return cmp.Compare(a.Change.M5, b.Change.M5) },
	"15m":      func(a, b OpenInterest) int { return cmp.Compare(a.Change.M15, b.Change.M15) },
	"1h":       func(a, b OpenInterest) int { return cmp.Compare(a.Change.H1, b.Change.H1) },
}

// PriceChangeSortKeys lists the columns the price-change view sorts by.
var PriceChangeSortKeys = sortKeys[PriceChange]{
	SortSymbol: func(a, b PriceChange) int { return cmp.Compare(a.Symbol, b.Symbol) },
	"price":    func(a, b PriceChange) int { return cmp.Compare(a.Price, b.Price) },
	"1m":       func(a, b PriceChange) int { return cmp.Compare(a.Change.M1, b.Change.M1) },
	"2m":       func(a, b PriceChange) int { return cmp.Compare(a.Change.M2, b.Change.M2) },
	"5m":       func(a, b PriceChange) int { return cmp.Compare(a.Change.M5, b.Change.M5) },
	"20m":      func(a, b PriceChange) int { return cmp.Compare(a.Change.M20, b.Change.M20) },
	"40m":      func(a, b PriceChange) int { return cmp.Compare(a.Change.M40, b.Change.M40) },
	"1h":       func(a, b PriceChange) int { return cmp.Compare(a.Change.H1, b.Change.H1) },
}

// FilterTickers applies q to tickers without modifying the input.
func FilterTickers(tickers []Ticker, q Query) []Ticker {
	return apply(tickers, q, TickerSortKeys, func(t Ticker) string { return t.Symbol })
}

// FilterOpenInterest applies q to rows without modifying the input.
func FilterOpenInterest(rows []OpenInterest, q Query) []OpenInterest {
	return apply(rows, q, OpenInterestSortKeys, func(o OpenInterest) string { return o.Symbol })
}

// FilterPriceChanges applies q to rows without modifying the input.
func FilterPriceChanges(rows []PriceChange, q Query) []PriceChange {
	return apply(rows, q, PriceChangeSortKeys, func(p PriceChange) string { return p.Symbol })
}

// FilterAlerts keeps alert lines containing the search term.
func FilterAlerts(lines []string, search string) []string {
	if search == "" {
		return slices.Clone(lines)
	}
	term := strings.ToUpper(search)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.Contains(strings.ToUpper(l), term) {
			out = append(out, l)
		}
	}
	return out
}

func apply[T any](items []T, q Query, keys sortKeys[T], symbol func(T) string) []T {
	term := strings.ToUpper(q.Search)

	out := make([]T, 0, len(items))
	for _, it := range items {
		if term == "" || strings.Contains(strings.ToUpper(symbol(it)), term) {
			out = append(out, it)
		}
	}

	less, ok := keys[q.Sort]
	if !ok {
		less = keys[SortSymbol]
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if q.Desc {
			return less(b, a)
		}
		return less(a, b)
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func derefOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
