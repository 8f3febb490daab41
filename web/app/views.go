package app

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/crypto-monitor/internal/market"
	"github.com/JaimeStill/crypto-monitor/pkg/web"
)

// Table is a filtered, sorted slice of backend rows.
type Table[T any] struct {
	Message string
	// Total counts rows before filtering.
	Total int
	Rows  []T
}

// AlertsPage pairs backend alert lines with the contracts behind them.
type AlertsPage struct {
	Alerts []string
	Table[market.Ticker]
}

// OpenInterestPage is the open-interest table with its 5 minute alerts.
type OpenInterestPage struct {
	Alerts []market.OpenInterestAlert
	Table[market.OpenInterest]
}

type loaders struct {
	market market.System
}

func (l *loaders) forRoute(name string) web.DataFunc {
	switch name {
	case "market":
		return l.tickers
	case "ema-alerts":
		return l.emaAlerts
	case "change-alerts":
		return l.changeAlerts
	case "open-interest":
		return l.openInterest
	case "price-change":
		return l.priceChanges
	}
	return nil
}

func (l *loaders) tickers(r *http.Request) (any, error) {
	snap, err := l.market.Snapshot(r.Context())
	if err != nil {
		return nil, err
	}

	q := market.ParseQuery(r.URL.Query(), market.Query{Sort: "volume", Desc: true})
	return &Table[market.Ticker]{
		Message: snap.Message,
		Total:   len(snap.Data),
		Rows:    market.FilterTickers(snap.Data, q),
	}, nil
}

func (l *loaders) emaAlerts(r *http.Request) (any, error) {
	snap, err := l.market.Snapshot(r.Context())
	if err != nil {
		return nil, err
	}

	above := make([]market.Ticker, 0, len(snap.Data))
	for _, t := range snap.Data {
		if t.AboveEMA() {
			above = append(above, t)
		}
	}

	q := market.ParseQuery(r.URL.Query(), market.Query{Sort: market.SortSymbol})
	return &AlertsPage{
		Alerts: market.FilterAlerts(snap.Alerts.EMA, q.Search),
		Table: Table[market.Ticker]{
			Message: snap.Message,
			Total:   len(above),
			Rows:    market.FilterTickers(above, q),
		},
	}, nil
}

func (l *loaders) changeAlerts(r *http.Request) (any, error) {
	snap, err := l.market.Snapshot(r.Context())
	if err != nil {
		return nil, err
	}

	q := market.ParseQuery(r.URL.Query(), market.Query{Sort: "change", Desc: true, Limit: 20})
	return &AlertsPage{
		Alerts: market.FilterAlerts(snap.Alerts.Change, q.Search),
		Table: Table[market.Ticker]{
			Message: snap.Message,
			Total:   len(snap.Data),
			Rows:    market.FilterTickers(snap.Data, q),
		},
	}, nil
}

func (l *loaders) openInterest(r *http.Request) (any, error) {
	report, err := l.market.OpenInterest(r.Context())
	if err != nil {
		return nil, err
	}

	q := market.ParseQuery(r.URL.Query(), market.Query{Sort: "5m", Desc: true})

	alerts := make([]market.OpenInterestAlert, 0, len(report.Alerts))
	term := strings.ToUpper(q.Search)
	for _, a := range report.Alerts {
		if strings.Contains(strings.ToUpper(a.Symbol), term) {
			alerts = append(alerts, a)
		}
	}

	return &OpenInterestPage{
		Alerts: alerts,
		Table: Table[market.OpenInterest]{
			Message: report.Message,
			Total:   len(report.Data),
			Rows:    market.FilterOpenInterest(report.Data, q),
		},
	}, nil
}

func (l *loaders) priceChanges(r *http.Request) (any, error) {
	report, err := l.market.PriceChanges(r.Context())
	if err != nil {
		return nil, err
	}

	q := market.ParseQuery(r.URL.Query(), market.Query{Sort: "5m", Desc: true})
	return &Table[market.PriceChange]{
		Message: report.Message,
		Total:   len(report.Data),
		Rows:    market.FilterPriceChanges(report.Data, q),
	}, nil
}
