// Package market reads market data from the backend through the shared
// apiclient and shapes it for the views. All analytics happen in the backend;
// this package only decodes, filters, and sorts what it returns.
package market

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JaimeStill/crypto-monitor/pkg/apiclient"
)

// Backend endpoint paths, relative to the client base URL.
const (
	PathSnapshot     = "/api/data"
	PathOpenInterest = "/api/open_interest"
	PathPriceChange  = "/api/price_change"
)

// System is the typed backend surface the views depend on.
type System interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	OpenInterest(ctx context.Context) (*OpenInterestReport, error)
	PriceChanges(ctx context.Context) (*PriceChangeReport, error)
}

// Getter is the subset of *apiclient.Client the market system needs.
type Getter interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
}

type system struct {
	client Getter
	logger *slog.Logger
}

// New creates a market System over client.
func New(client Getter, logger *slog.Logger) System {
	return &system{
		client: client,
		logger: logger.With("system", "market"),
	}
}

var _ Getter = (*apiclient.Client)(nil)

func (s *system) Snapshot(ctx context.Context) (*Snapshot, error) {
	var out Snapshot
	if err := s.client.Get(ctx, PathSnapshot, nil, &out); err != nil {
		return nil, err
	}
	if out.Error != "" || failed(out.Message, len(out.Data)) {
		return nil, &BackendError{Endpoint: PathSnapshot, Message: out.Message, Detail: out.Error}
	}

	s.logger.Debug("snapshot loaded", "tickers", len(out.Data))
	return &out, nil
}

func (s *system) OpenInterest(ctx context.Context) (*OpenInterestReport, error) {
	var out OpenInterestReport
	if err := s.client.Get(ctx, PathOpenInterest, nil, &out); err != nil {
		return nil, err
	}
	if out.Error != "" || failed(out.Message, len(out.Data)) {
		return nil, &BackendError{Endpoint: PathOpenInterest, Message: out.Message, Detail: out.Error}
	}

	s.logger.Debug("open interest loaded", "contracts", len(out.Data), "alerts", len(out.Alerts))
	return &out, nil
}

func (s *system) PriceChanges(ctx context.Context) (*PriceChangeReport, error) {
	var out PriceChangeReport
	if err := s.client.Get(ctx, PathPriceChange, nil, &out); err != nil {
		return nil, err
	}
	if out.Error != "" || failed(out.Message, len(out.Data)) {
		return nil, &BackendError{Endpoint: PathPriceChange, Message: out.Message, Detail: out.Error}
	}

	s.logger.Debug("price changes loaded", "contracts", len(out.Data))
	return &out, nil
}

// failed reports whether a response without an error field still announces a
// failed fetch. The backend answers a failed scrape with 200, an empty data
// list, and a failure message.
func failed(message string, rows int) bool {
	if rows > 0 || message == "" {
		return false
	}
	return strings.Contains(message, "失败") || strings.Contains(strings.ToLower(message), "fail")
}
