package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Rates is an immutable snapshot of the KRW conversion table:
// 1 unit of foreign currency = Rates[code] KRW.
type Rates map[string]float64

// Convert turns a local price into KRW. Unknown codes pass the amount
// through unchanged, matching the fallback behavior of the rate table.
func (r Rates) Convert(amount int, currencyCode string) int {
	rate, ok := r[strings.ToUpper(currencyCode)]
	if !ok || rate == 0 {
		return amount
	}
	return int(math.Round(float64(amount) * rate))
}

// ConvertFromKRW goes the other way, for display of local prices.
func (r Rates) ConvertFromKRW(amountKRW int, currencyCode string) int {
	rate, ok := r[strings.ToUpper(currencyCode)]
	if !ok || rate == 0 {
		return amountKRW
	}
	return int(math.Round(float64(amountKRW) / rate))
}

func (r Rates) clone() Rates {
	out := make(Rates, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// fallbackRates seeds the table before any fetch succeeds.
var fallbackRates = Rates{
	"USD": 1430,
	"JPY": 9.1,
	"EUR": 1550,
	"THB": 42,
	"VND": 0.06,
	"CNY": 195,
	"TWD": 45,
	"HKD": 183,
	"SGD": 1060,
}

const (
	ratesAPIURL    = "https://open.er-api.com/v6/latest/KRW"
	ratesCacheKey  = "latest"
	refreshTimeout = 10 * time.Second
)

// Provider hands out rate snapshots. Refresh replaces the whole table in one
// swap; readers always see either the old or the fully-updated snapshot.
type Provider struct {
	mu      sync.RWMutex
	current Rates

	apiURL string
	client *http.Client
	cache  *gocache.Cache
}

func NewProvider() *Provider {
	return &Provider{
		current: fallbackRates.clone(),
		apiURL:  ratesAPIURL,
		client:  &http.Client{Timeout: refreshTimeout},
		cache:   gocache.New(30*time.Minute, 10*time.Minute),
	}
}

// Snapshot returns the current table. The returned map must not be mutated.
func (p *Provider) Snapshot() Rates {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Refresh fetches the live table and merges it over the current one. The API
// reports 1 KRW = X target currency, so each rate is inverted. A recent
// cached fetch short-circuits the network call.
func (p *Provider) Refresh(ctx context.Context) (Rates, error) {
	if cached, ok := p.cache.Get(ratesCacheKey); ok {
		return p.apply(cached.(Rates)), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate API returned %s", resp.Status)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding exchange rates: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("exchange rate API returned no rates")
	}

	fetched := make(Rates, len(payload.Rates))
	for code, rate := range payload.Rates {
		if rate > 0 {
			fetched[strings.ToUpper(code)] = 1 / rate
		}
	}
	p.cache.Set(ratesCacheKey, fetched, gocache.DefaultExpiration)

	return p.apply(fetched), nil
}

func (p *Provider) apply(fetched Rates) Rates {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := p.current.clone()
	for code, rate := range fetched {
		next[code] = rate
	}
	p.current = next
	return next
}

// Override sets manual per-code rates, as the rate editor screen does.
func (p *Provider) Override(overrides map[string]float64) Rates {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := p.current.clone()
	for code, rate := range overrides {
		if rate > 0 {
			next[strings.ToUpper(code)] = rate
		}
	}
	p.current = next
	return next
}
