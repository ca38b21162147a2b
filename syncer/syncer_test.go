package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	stockstudy "github.com/Dream-page/stockstudy"
)

// memKV is a throwaway in-memory kv.Store.
type memKV struct {
	blobs map[string][]byte
}

func newMemKV() *memKV { return &memKV{blobs: make(map[string][]byte)} }

func (m *memKV) Save(key string, value any) bool {
	content, err := json.Marshal(value)
	if err != nil {
		return false
	}
	m.blobs[key] = content
	return true
}

func (m *memKV) Load(key string, out any) bool {
	content, ok := m.blobs[key]
	if !ok {
		return false
	}
	return json.Unmarshal(content, out) == nil
}

func (m *memKV) Remove(key string) { delete(m.blobs, key) }

func (m *memKV) Clear(keys ...string) {
	for _, k := range keys {
		m.Remove(k)
	}
}

// fakeSheets scripts the remote sheet endpoints.
type fakeSheets struct {
	mu            sync.Mutex
	holdings      []stockstudy.Holding
	holdingsErr   error
	quotes        []stockstudy.Quote
	rate          *float64
	quotesErr     error
	quoteCalls    int
	holdingsCalls int
	block         chan struct{} // when non-nil, FetchQuotes waits on it
}

func (f *fakeSheets) FetchHoldings(ctx context.Context) ([]stockstudy.Holding, error) {
	f.mu.Lock()
	f.holdingsCalls++
	f.mu.Unlock()
	return f.holdings, f.holdingsErr
}

func (f *fakeSheets) FetchQuotes(ctx context.Context) ([]stockstudy.Quote, *float64, error) {
	f.mu.Lock()
	f.quoteCalls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.quotes, f.rate, f.quotesErr
}

// fakeRates scripts the fallback exchange-rate provider.
type fakeRates struct {
	rate  float64
	err   error
	calls int
}

func (f *fakeRates) FetchWithRetry(ctx context.Context, maxRetries int) (float64, error) {
	f.calls++
	return f.rate, f.err
}

func ptr(v float64) *float64 { return &v }

func newTestSyncer(sheets *fakeSheets, rates *fakeRates) (*Syncer, *stockstudy.Store) {
	store := stockstudy.Open(newMemKV())
	s := &Syncer{
		Store:  store,
		Sheets: sheets,
		Rates:  rates,
		Now:    func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) },
	}
	return s, store
}

func TestRunCycleBootstrapsEmptyPortfolio(t *testing.T) {
	imported := stockstudy.NewHolding("Apple", "AAPL", stockstudy.US, stockstudy.Growth, 2, 150)
	sheets := &fakeSheets{
		holdings: []stockstudy.Holding{imported},
		quotes:   []stockstudy.Quote{{Ticker: "aapl", Price: 155.5}},
		rate:     ptr(1320),
	}
	s, store := newTestSyncer(sheets, &fakeRates{})

	if err := s.RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.State() != SettledSuccess {
		t.Errorf("state = %v, want settled", s.State())
	}

	portfolio := store.Portfolio()
	if len(portfolio) != 1 {
		t.Fatalf("portfolio = %d holdings, want the bootstrapped one", len(portfolio))
	}
	if got := portfolio[0].CurrentPrice; got != 155.5 {
		t.Errorf("price = %v, want 155.5 applied case-insensitively", got)
	}
	rate := store.Settings().ExchangeRate
	if rate.Rate != 1320 || rate.Source != stockstudy.SourceRemoteSheet {
		t.Errorf("rate = %+v, want 1320 remote-sheet", rate)
	}
}

func TestRunCycleSkipsBootstrapWhenPortfolioExists(t *testing.T) {
	sheets := &fakeSheets{quotes: nil, rate: nil}
	s, store := newTestSyncer(sheets, &fakeRates{})
	if err := store.AddHolding(stockstudy.NewHolding("Apple", "AAPL", stockstudy.US, stockstudy.Growth, 2, 150)); err != nil {
		t.Fatal(err)
	}

	if err := s.RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sheets.holdingsCalls != 0 {
		t.Errorf("FetchHoldings called %d times, want 0 for a populated portfolio", sheets.holdingsCalls)
	}
}

func TestRunCycleDegradedFallbackRate(t *testing.T) {
	sheets := &fakeSheets{quotesErr: errors.New("sheet unreachable")}
	rates := &fakeRates{rate: 1400}
	s, store := newTestSyncer(sheets, rates)
	h := stockstudy.NewHolding("Apple", "AAPL", stockstudy.US, stockstudy.Growth, 2, 150)
	if err := store.AddHolding(h); err != nil {
		t.Fatal(err)
	}

	if err := s.RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.State() != SettledDegraded {
		t.Errorf("state = %v, want degraded", s.State())
	}
	if rates.calls != 1 {
		t.Errorf("fallback provider called %d times, want 1", rates.calls)
	}

	rate := store.Settings().ExchangeRate
	if rate.Rate != 1400 || rate.Source != stockstudy.SourceExternalAPI {
		t.Errorf("rate = %+v, want 1400 external-api", rate)
	}
	if got := store.Portfolio()[0].CurrentPrice; got != h.CurrentPrice {
		t.Errorf("price = %v, a degraded cycle must leave prices untouched", got)
	}
}

func TestRunCycleBothPathsFailLeaveStateUntouched(t *testing.T) {
	sheets := &fakeSheets{quotesErr: errors.New("sheet unreachable")}
	rates := &fakeRates{err: errors.New("providers down")}
	s, store := newTestSyncer(sheets, rates)
	h := stockstudy.NewHolding("Apple", "AAPL", stockstudy.US, stockstudy.Growth, 2, 150)
	if err := store.AddHolding(h); err != nil {
		t.Fatal(err)
	}
	before := store.Snapshot()

	err := s.RunCycle(context.Background())
	if err == nil {
		t.Fatal("want an error when both paths fail")
	}
	if s.State() != SettledDegraded {
		t.Errorf("state = %v, want degraded", s.State())
	}

	after := store.Snapshot()
	if len(after.Portfolio) != 1 || after.Portfolio[0] != before.Portfolio[0] {
		t.Errorf("portfolio changed across a fully failed cycle")
	}
	if after.Settings.ExchangeRate != before.Settings.ExchangeRate {
		t.Errorf("rate changed across a fully failed cycle")
	}
}

func TestRunCycleBootstrapFailureStillRefreshes(t *testing.T) {
	sheets := &fakeSheets{
		holdingsErr: errors.New("portfolio sheet unreachable"),
		quotes:      []stockstudy.Quote{{Ticker: "AAPL", Price: 155}},
	}
	s, store := newTestSyncer(sheets, &fakeRates{})

	if err := s.RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sheets.quoteCalls != 1 {
		t.Errorf("FetchQuotes called %d times, want 1 after a failed bootstrap", sheets.quoteCalls)
	}
	if got := len(store.Portfolio()); got != 0 {
		t.Errorf("portfolio = %d holdings, want 0 when bootstrap failed", got)
	}
}

func TestRunCycleNilRateKeepsPrevious(t *testing.T) {
	sheets := &fakeSheets{quotes: []stockstudy.Quote{{Ticker: "AAPL", Price: 155}}}
	s, store := newTestSyncer(sheets, &fakeRates{})
	if err := store.SetManualExchangeRate(1450); err != nil {
		t.Fatal(err)
	}

	if err := s.RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	rate := store.Settings().ExchangeRate
	if rate.Rate != 1450 || rate.Source != stockstudy.SourceManual {
		t.Errorf("rate = %+v, want the previous manual 1450 kept", rate)
	}
}

func TestRunCycleCoalescesOverlappingCalls(t *testing.T) {
	block := make(chan struct{})
	sheets := &fakeSheets{block: block, quotes: []stockstudy.Quote{{Ticker: "AAPL", Price: 155}}}
	s, _ := newTestSyncer(sheets, &fakeRates{})

	done := make(chan error, 1)
	go func() { done <- s.RunCycle(context.Background()) }()

	// wait for the first cycle to be mid-fetch
	for {
		sheets.mu.Lock()
		started := sheets.quoteCalls > 0
		sheets.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := s.RunCycle(context.Background()); err != nil {
		t.Errorf("overlapping call must coalesce to a no-op, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if sheets.quoteCalls != 1 {
		t.Errorf("FetchQuotes called %d times, want the second call coalesced", sheets.quoteCalls)
	}
}

func TestStateString(t *testing.T) {
	for st, want := range map[State]string{
		Idle:            "idle",
		Bootstrapping:   "bootstrapping",
		Refreshing:      "refreshing",
		SettledSuccess:  "settled",
		SettledDegraded: "degraded",
		State(99):       "unknown",
	} {
		if got := st.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", st, got, want)
		}
	}
}
