package stockstudy

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Dream-page/stockstudy/kv"
)

// Storage keys, one JSON blob per top-level state slice.
const (
	KeyPortfolio = "insight-log-portfolio"
	KeyJournals  = "insight-log-journals"
	KeyStudies   = "insight-log-studies"
	KeyMacro     = "insight-log-macro"
	KeySettings  = "insight-log-settings"
)

// Keys lists every storage key the application owns.
var Keys = []string{KeyPortfolio, KeyJournals, KeyStudies, KeyMacro, KeySettings}

// Store is the single state container for the application. All mutation goes
// through its methods, which serialize writers behind a mutex: the original
// runtime was single-threaded, here the orchestrator and user commands run
// on independent goroutines and must not interleave mid-update.
//
// Every mutation persists the touched slice through the key-value store. A
// persistence failure is reported by the kv layer but never blocks the
// in-memory update.
type Store struct {
	mu sync.Mutex
	kv kv.Store

	portfolio  []Holding
	journals   []JournalEntry
	studies    []StudyNote
	indicators []Indicator
	settings   Settings
}

// Open loads the application state from the key-value store, falling back to
// defaults for any slice that is absent or unreadable.
func Open(store kv.Store) *Store {
	s := &Store{
		kv:       store,
		settings: DefaultSettings(),
	}
	store.Load(KeyPortfolio, &s.portfolio)
	store.Load(KeyJournals, &s.journals)
	store.Load(KeyStudies, &s.studies)
	if !store.Load(KeyMacro, &s.indicators) || len(s.indicators) == 0 {
		s.indicators = DefaultIndicators()
	}
	store.Load(KeySettings, &s.settings)
	return s
}

// Snapshot is a consistent read of the whole state.
type Snapshot struct {
	Portfolio  []Holding      `json:"portfolio"`
	Journals   []JournalEntry `json:"journals"`
	Studies    []StudyNote    `json:"studies"`
	Indicators []Indicator    `json:"macroIndicators"`
	Settings   Settings       `json:"settings"`
}

// Snapshot returns deep copies of every slice; callers may mutate the result
// freely without affecting the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Portfolio:  slices.Clone(s.portfolio),
		Journals:   slices.Clone(s.journals),
		Studies:    slices.Clone(s.studies),
		Indicators: slices.Clone(s.indicators),
		Settings:   s.settings,
	}
}

// Portfolio returns a copy of the current holdings.
func (s *Store) Portfolio() []Holding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.portfolio)
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// AddHolding validates and appends a holding.
func (s *Store) AddHolding(h Holding) error {
	if err := h.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.portfolio {
		if existing.ID == h.ID {
			return fmt.Errorf("holding %q already exists", h.ID)
		}
	}
	s.portfolio = append(s.portfolio, h)
	s.kv.Save(KeyPortfolio, s.portfolio)
	return nil
}

// UpdateHolding replaces the holding with the same id.
func (s *Store) UpdateHolding(h Holding) error {
	if err := h.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.portfolio {
		if existing.ID == h.ID {
			s.portfolio[i] = h
			s.kv.Save(KeyPortfolio, s.portfolio)
			return nil
		}
	}
	return fmt.Errorf("no holding with id %q", h.ID)
}

// DeleteHolding removes the holding with the given id.
func (s *Store) DeleteHolding(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.portfolio)
	s.portfolio = slices.DeleteFunc(s.portfolio, func(h Holding) bool { return h.ID == id })
	if len(s.portfolio) == n {
		return fmt.Errorf("no holding with id %q", id)
	}
	s.kv.Save(KeyPortfolio, s.portfolio)
	return nil
}

// AddJournal prepends a journal entry (newest first, like the journal view).
func (s *Store) AddJournal(j JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journals = append([]JournalEntry{j}, s.journals...)
	s.kv.Save(KeyJournals, s.journals)
}

// UpdateJournal replaces the entry with the same id.
func (s *Store) UpdateJournal(j JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.journals {
		if existing.ID == j.ID {
			s.journals[i] = j
			s.kv.Save(KeyJournals, s.journals)
			return nil
		}
	}
	return fmt.Errorf("no journal entry with id %q", j.ID)
}

// DeleteJournal removes the entry with the given id.
func (s *Store) DeleteJournal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.journals)
	s.journals = slices.DeleteFunc(s.journals, func(j JournalEntry) bool { return j.ID == id })
	if len(s.journals) == n {
		return fmt.Errorf("no journal entry with id %q", id)
	}
	s.kv.Save(KeyJournals, s.journals)
	return nil
}

// AddStudy prepends a study note.
func (s *Store) AddStudy(n StudyNote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studies = append([]StudyNote{n}, s.studies...)
	s.kv.Save(KeyStudies, s.studies)
}

// AddStudies appends pulled study-feed items, skipping titles already known.
func (s *Store) AddStudies(notes []StudyNote) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	known := make(map[string]bool, len(s.studies))
	for _, existing := range s.studies {
		known[existing.Title] = true
	}
	added := 0
	for _, n := range notes {
		if known[n.Title] {
			continue
		}
		s.studies = append(s.studies, n)
		added++
	}
	if added > 0 {
		s.kv.Save(KeyStudies, s.studies)
	}
	return added
}

// UpdateStudy replaces the note with the same id.
func (s *Store) UpdateStudy(n StudyNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.studies {
		if existing.ID == n.ID {
			s.studies[i] = n
			s.kv.Save(KeyStudies, s.studies)
			return nil
		}
	}
	return fmt.Errorf("no study note with id %q", n.ID)
}

// DeleteStudy removes the note with the given id.
func (s *Store) DeleteStudy(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.studies)
	s.studies = slices.DeleteFunc(s.studies, func(note StudyNote) bool { return note.ID == id })
	if len(s.studies) == n {
		return fmt.Errorf("no study note with id %q", id)
	}
	s.kv.Save(KeyStudies, s.studies)
	return nil
}

// UpdateIndicator sets the value and judgment of one macro indicator.
func (s *Store) UpdateIndicator(id string, value float64, judgment Judgment) error {
	if judgment < StrongSell || judgment > StrongBuy {
		return fmt.Errorf("judgment %d out of range (-2..2)", judgment)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ind := range s.indicators {
		if ind.ID == id {
			s.indicators[i].Value = value
			s.indicators[i].Judgment = judgment
			s.indicators[i].LastUpdated = time.Now()
			s.kv.Save(KeyMacro, s.indicators)
			return nil
		}
	}
	return fmt.Errorf("no indicator with id %q", id)
}

// Indicators returns a copy of the macro indicators.
func (s *Store) Indicators() []Indicator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.indicators)
}

// SetExchangeRate records an automatically fetched exchange rate. The rate
// must be positive but is not bounds-checked: the configured sheet and the
// rate APIs are trusted sources.
func (s *Store) SetExchangeRate(rate float64, source string, at time.Time) error {
	if rate <= 0 {
		return fmt.Errorf("exchange rate must be positive, got %v", rate)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.ExchangeRate = ExchangeRate{Rate: rate, Source: source, LastUpdated: at}
	s.kv.Save(KeySettings, s.settings)
	return nil
}

// SetManualExchangeRate records a hand-entered exchange rate after bounds
// validation.
func (s *Store) SetManualExchangeRate(rate float64) error {
	if err := ValidateRate(rate); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.ExchangeRate = ExchangeRate{Rate: rate, Source: SourceManual, LastUpdated: time.Now()}
	s.kv.Save(KeySettings, s.settings)
	return nil
}

// CommitSync atomically replaces the portfolio and, when rate is non-nil,
// the exchange rate, as the single commit of one synchronization cycle.
func (s *Store) CommitSync(holdings []Holding, rate *float64, source string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portfolio = slices.Clone(holdings)
	s.kv.Save(KeyPortfolio, s.portfolio)
	if rate != nil && *rate > 0 {
		s.settings.ExchangeRate = ExchangeRate{Rate: *rate, Source: source, LastUpdated: at}
	}
	s.kv.Save(KeySettings, s.settings)
}

// RestoreAll replaces the whole state from a backup snapshot. Missing slices
// default to empty, except indicators and settings which keep their current
// values. Nothing is ever left nil.
func (s *Store) RestoreAll(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portfolio = snap.Portfolio
	if s.portfolio == nil {
		s.portfolio = []Holding{}
	}
	s.journals = snap.Journals
	if s.journals == nil {
		s.journals = []JournalEntry{}
	}
	s.studies = snap.Studies
	if s.studies == nil {
		s.studies = []StudyNote{}
	}
	if snap.Indicators != nil {
		s.indicators = snap.Indicators
	}
	if snap.Settings.ExchangeRate.Rate > 0 {
		s.settings = snap.Settings
	}
	s.kv.Save(KeyPortfolio, s.portfolio)
	s.kv.Save(KeyJournals, s.journals)
	s.kv.Save(KeyStudies, s.studies)
	s.kv.Save(KeyMacro, s.indicators)
	s.kv.Save(KeySettings, s.settings)
}
