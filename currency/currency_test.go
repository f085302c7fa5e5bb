package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

func TestConvert(t *testing.T) {
	rates := Rates{"THB": 42, "JPY": 9.1}

	tests := []struct {
		amount int
		code   string
		want   int
	}{
		{100, "THB", 4200},
		{100, "thb", 4200},
		{1000, "JPY", 9100},
		{333, "JPY", 3030}, // 3030.3 rounds down
		{5000, "XXX", 5000},
		{0, "THB", 0},
	}

	for _, tt := range tests {
		if got := rates.Convert(tt.amount, tt.code); got != tt.want {
			t.Errorf("Convert(%d, %q) = %d, want %d", tt.amount, tt.code, got, tt.want)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	rates := Rates{"USD": 1430}
	krw := rates.Convert(100, "USD")
	if back := rates.ConvertFromKRW(krw, "USD"); back != 100 {
		t.Errorf("round trip 100 USD -> %d KRW -> %d USD", krw, back)
	}
}

func testProvider(apiURL string) *Provider {
	return &Provider{
		current: fallbackRates.clone(),
		apiURL:  apiURL,
		client:  &http.Client{Timeout: time.Second},
		cache:   gocache.New(time.Minute, time.Minute),
	}
}

func TestRefreshInvertsAndMerges(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// the API reports 1 KRW = X foreign
		w.Write([]byte(`{"result":"success","rates":{"USD":0.0007,"THB":0.025}}`))
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	rates, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if got := rates["USD"]; got < 1428 || got > 1429 {
		t.Errorf("USD rate = %v, want ~1428.57", got)
	}
	if got := rates["THB"]; got != 40 {
		t.Errorf("THB rate = %v, want 40", got)
	}
	// codes the API omitted keep their fallback values
	if got := rates["JPY"]; got != 9.1 {
		t.Errorf("JPY rate = %v, want fallback 9.1", got)
	}

	// a second refresh hits the cache, not the API
	if _, err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	if calls != 1 {
		t.Errorf("API called %d times, want 1", calls)
	}
}

func TestRefreshErrorLeavesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	if _, err := p.Refresh(context.Background()); err == nil {
		t.Fatal("expected error from failing API")
	}
	if got := p.Snapshot()["USD"]; got != 1430 {
		t.Errorf("snapshot changed after failed refresh: USD = %v", got)
	}
}

func TestOverride(t *testing.T) {
	p := NewProvider()
	before := p.Snapshot()

	after := p.Override(map[string]float64{"usd": 1500, "JPY": 0})

	if after["USD"] != 1500 {
		t.Errorf("override USD = %v, want 1500", after["USD"])
	}
	if after["JPY"] != 9.1 {
		t.Errorf("zero override must be ignored, JPY = %v", after["JPY"])
	}
	// snapshots are immutable: the old one is untouched
	if before["USD"] != 1430 {
		t.Errorf("old snapshot mutated: USD = %v", before["USD"])
	}
}
