// Package syncer drives the periodic data-synchronization cycle: bootstrap
// the portfolio from the remote sheet when it is empty, refresh prices and
// the exchange rate, and commit the result as one atomic state update. A
// failed cycle degrades gracefully and never cancels future cycles.
package syncer

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	stockstudy "github.com/Dream-page/stockstudy"
)

// State of the orchestrator, visible for status reporting.
type State int32

const (
	Idle State = iota
	Bootstrapping
	Refreshing
	SettledSuccess
	SettledDegraded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Bootstrapping:
		return "bootstrapping"
	case Refreshing:
		return "refreshing"
	case SettledSuccess:
		return "settled"
	case SettledDegraded:
		return "degraded"
	}
	return "unknown"
}

// SheetSource is the slice of the sheet client the syncer needs.
type SheetSource interface {
	FetchQuotes(ctx context.Context) ([]stockstudy.Quote, *float64, error)
	FetchHoldings(ctx context.Context) ([]stockstudy.Holding, error)
}

// RateSource is the degraded-path exchange-rate provider.
type RateSource interface {
	FetchWithRetry(ctx context.Context, maxRetries int) (float64, error)
}

// DefaultInterval between automatic cycles.
const DefaultInterval = 5 * time.Minute

// rateRetries within the single degraded fallback call of one cycle.
const rateRetries = 2

// Syncer runs synchronization cycles against the application state.
type Syncer struct {
	Store  *stockstudy.Store
	Sheets SheetSource
	Rates  RateSource
	// Interval defaults to DefaultInterval.
	Interval time.Duration
	// Now defaults to time.Now.
	Now func() time.Time

	state    atomic.Int32
	inFlight atomic.Bool
}

// State returns the last observed orchestrator state.
func (s *Syncer) State() State { return State(s.state.Load()) }

func (s *Syncer) setState(st State) { s.state.Store(int32(st)) }

func (s *Syncer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RunCycle executes one complete synchronization cycle. At most one cycle is
// in flight at a time: a call while another cycle runs is coalesced into a
// no-op, so a manual refresh cannot race the timer-driven one.
func (s *Syncer) RunCycle(ctx context.Context) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Println("synchronization cycle already running, skipping")
		return nil
	}
	defer s.inFlight.Store(false)

	settled, err := s.cycle(ctx)
	s.setState(settled)
	return err
}

func (s *Syncer) cycle(ctx context.Context) (State, error) {
	holdings := s.Store.Portfolio()

	// Step 1: bootstrap the portfolio from the sheet when it is empty.
	// Failure here is not fatal; the refresh step proceeds with whatever
	// portfolio exists.
	if len(holdings) == 0 {
		s.setState(Bootstrapping)
		imported, err := s.Sheets.FetchHoldings(ctx)
		switch {
		case err != nil:
			log.Printf("portfolio bootstrap failed: %v", err)
		case len(imported) == 0:
			log.Println("portfolio bootstrap: sheet has no holdings")
		default:
			log.Printf("portfolio bootstrap: imported %d holdings", len(imported))
			holdings = imported
		}
	}

	// Step 2: refresh prices from the price sheet.
	s.setState(Refreshing)
	quotes, rate, err := s.Sheets.FetchQuotes(ctx)
	if err == nil {
		now := s.now()
		updated := stockstudy.Reconcile(holdings, quotes, now)
		s.Store.CommitSync(updated, rate, stockstudy.SourceRemoteSheet, now)
		return SettledSuccess, nil
	}
	log.Printf("price refresh failed: %v", err)

	// Degraded fallback: keep at least the exchange rate current. Holding
	// prices stay untouched; a freshly bootstrapped portfolio is not
	// committed either, the next cycle will import it again.
	fallbackRate, rateErr := s.Rates.FetchWithRetry(ctx, rateRetries)
	if rateErr != nil {
		log.Printf("fallback rate fetch failed: %v", rateErr)
		// leave state entirely untouched
		return SettledDegraded, errors.Join(err, rateErr)
	}
	if commitErr := s.Store.SetExchangeRate(fallbackRate, stockstudy.SourceExternalAPI, s.now()); commitErr != nil {
		return SettledDegraded, errors.Join(err, commitErr)
	}
	log.Printf("degraded cycle: updated exchange rate to %v from fallback API", fallbackRate)
	return SettledDegraded, nil
}

// Run executes a first cycle immediately and then one per interval until the
// context is cancelled. A cycle failure is logged and the loop keeps going;
// there is no backoff between cycles.
func (s *Syncer) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	if err := s.RunCycle(ctx); err != nil {
		log.Printf("synchronization cycle failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("stopping auto-refresh")
			return
		case <-ticker.C:
			if err := s.RunCycle(ctx); err != nil {
				log.Printf("synchronization cycle failed: %v", err)
			}
		}
	}
}
