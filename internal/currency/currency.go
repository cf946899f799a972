// Package currency fetches USD-based exchange rates and converts amounts
// between the plan's supported currencies. Rates are cached for a day; when
// they cannot be had at all, conversion degrades to identity rather than
// failing the caller.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/openfma/fma/internal/calc"
	"github.com/openfma/fma/internal/kv"
)

const (
	cacheKey       = "currency-rates-cache"
	cacheTTL       = 24 * time.Hour
	defaultBaseURL = "https://api.currencyfreaks.com"
)

// ErrNoAPIKey is returned when no rates provider key is configured.
var ErrNoAPIKey = errors.New("currency API key not configured")

// Rates is the provider response: units of each currency per 1 USD, as
// decimal strings.
type Rates struct {
	Date  string            `json:"date"`
	Base  string            `json:"base"`
	Rates map[string]string `json:"rates"`
}

type cacheEntry struct {
	Timestamp int64 `json:"timestamp"`
	Data      Rates `json:"data"`
}

type Service struct {
	apiKey  string
	baseURL string
	http    *http.Client
	kv      kv.Store
	log     *slog.Logger
	now     func() time.Time
}

func NewService(apiKey, baseURL string, store kv.Store, log *slog.Logger) *Service {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Service{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    http.DefaultClient,
		kv:      store,
		log:     log,
		now:     time.Now,
	}
}

// FetchRates returns the current rate table, from cache when fetched within
// the last 24 hours. Cache failures are logged and ignored.
func (s *Service) FetchRates(ctx context.Context) (*Rates, error) {
	if s.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	url := fmt.Sprintf("%s/v2.0/rates/latest?apikey=%s&symbols=VND,AUD", s.baseURL, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building rates request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching rates: unexpected status %s", resp.Status)
	}

	var rates Rates
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("decoding rates: %w", err)
	}

	if rates.Rates == nil {
		rates.Rates = map[string]string{}
	}

	// The provider omits its own base currency.
	rates.Rates["USD"] = "1.0"

	s.writeCache(ctx, rates)

	return &rates, nil
}

// Converter returns the curried conversion hook the calculation functions
// take, with the target currency fixed. When rates are unavailable the hook
// converts nothing.
func (s *Service) Converter(ctx context.Context, target string) calc.Convert {
	rates, err := s.FetchRates(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "currency rates unavailable, amounts left unconverted",
			slog.String("error", err.Error()))

		return func(amount float64, _ string) float64 { return amount }
	}

	return func(amount float64, from string) float64 {
		return Convert(amount, from, target, rates)
	}
}

// Convert moves an amount between currencies through the USD base. Unknown
// currencies or missing rates leave the amount unchanged.
func Convert(amount float64, from, to string, rates *Rates) float64 {
	if rates == nil {
		return amount
	}

	fromCode := normalizeCode(from)
	toCode := normalizeCode(to)

	if fromCode == toCode {
		return amount
	}

	fromRate, err1 := strconv.ParseFloat(rates.Rates[fromCode], 64)
	toRate, err2 := strconv.ParseFloat(rates.Rates[toCode], 64)

	if err1 != nil || err2 != nil || fromRate == 0 {
		return amount
	}

	return amount / fromRate * toRate
}

// normalizeCode maps the display symbols the frontend stores back onto
// ISO codes.
func normalizeCode(symbol string) string {
	switch symbol {
	case "đ", "VND":
		return "VND"
	case "$", "USD":
		return "USD"
	case "A$", "AUD":
		return "AUD"
	}

	return symbol
}

func (s *Service) readCache(ctx context.Context) *Rates {
	raw, err := s.kv.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.WarnContext(ctx, "failed to read currency cache", slog.String("error", err.Error()))
		}

		return nil
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.log.WarnContext(ctx, "corrupt currency cache entry", slog.String("error", err.Error()))
		return nil
	}

	if s.now().Sub(time.UnixMilli(entry.Timestamp)) >= cacheTTL {
		return nil
	}

	return &entry.Data
}

func (s *Service) writeCache(ctx context.Context, rates Rates) {
	raw, err := json.Marshal(cacheEntry{Timestamp: s.now().UnixMilli(), Data: rates})
	if err != nil {
		s.log.WarnContext(ctx, "failed to encode currency cache", slog.String("error", err.Error()))
		return
	}

	if err := s.kv.Set(ctx, cacheKey, string(raw)); err != nil {
		s.log.WarnContext(ctx, "failed to write currency cache", slog.String("error", err.Error()))
	}
}
