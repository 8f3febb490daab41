package market

// Ticker is one USDT perpetual contract as reported by GET /api/data.
type Ticker struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	// Change is the 24h price change in percent.
	Change float64 `json:"change"`
	// Volume is the 24h quote volume.
	Volume      float64  `json:"volume"`
	FundingRate *float64 `json:"fundingRate"`
	EMA25       float64  `json:"ema25"`
}

// AboveEMA reports whether the price is above its 25 period EMA.
func (t Ticker) AboveEMA() bool {
	return t.EMA25 > 0 && t.Price > t.EMA25
}

// Alerts are the human-readable alert lines produced alongside a snapshot.
type Alerts struct {
	EMA    []string `json:"ema_alerts"`
	Change []string `json:"change_alerts"`
}

// Snapshot is the response of GET /api/data.
type Snapshot struct {
	Message string   `json:"message"`
	Data    []Ticker `json:"data"`
	Alerts  Alerts   `json:"alerts"`
	Error   string   `json:"error,omitempty"`
}

// OIChange holds open-interest change percentages per lookback window.
type OIChange struct {
	M5  float64 `json:"5m"`
	M15 float64 `json:"15m"`
	H1  float64 `json:"1h"`
}

// OpenInterest is one contract's open interest with change windows.
type OpenInterest struct {
	Symbol       string   `json:"symbol"`
	FundingRate  float64  `json:"fundingRate"`
	OpenInterest float64  `json:"openInterest"`
	Change       OIChange `json:"openInterestChange"`
}

// OpenInterestAlert flags a contract whose 5 minute open-interest change
// crossed the backend threshold.
type OpenInterestAlert struct {
	Symbol       string  `json:"symbol"`
	Change5m     float64 `json:"change_5m"`
	OpenInterest float64 `json:"openInterest"`
}

// OpenInterestReport is the response of GET /api/open_interest.
type OpenInterestReport struct {
	Message string              `json:"message"`
	Data    []OpenInterest      `json:"data"`
	Alerts  []OpenInterestAlert `json:"alerts"`
	Error   string              `json:"error,omitempty"`
}

// Windows holds price change percentages per lookback window.
type Windows struct {
	M1  float64 `json:"1m"`
	M2  float64 `json:"2m"`
	M5  float64 `json:"5m"`
	M20 float64 `json:"20m"`
	M40 float64 `json:"40m"`
	H1  float64 `json:"1h"`
}

// PriceChange is one contract's price with change windows.
type PriceChange struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Change Windows `json:"change"`
}

// PriceChangeReport is the response of GET /api/price_change.
type PriceChangeReport struct {
	Message string        `json:"message"`
	Data    []PriceChange `json:"data"`
	Error   string        `json:"error,omitempty"`
}
