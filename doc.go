// Package stockstudy holds the domain model and state container behind the
// stockstudy command-line tool, a local-first study log and portfolio tracker
// fed by hand-maintained published spreadsheets.
//
// The core pieces are:
//   - Portfolio model: holdings across the Korean and US markets, each tagged
//     with an investment-thesis category, valued in its market currency.
//   - Reconciliation: applying remotely fetched price quotes to the portfolio
//     by case-insensitive ticker match, touching nothing but the price and
//     its timestamp.
//   - Study log: trading journal entries and study notes, the latter either
//     hand-written or pulled from a remote daily feed.
//   - Macro view: a fixed set of macroeconomic indicators the user scores by
//     hand, aggregated into a single market sentiment score.
//   - State container: a mutex-guarded store over all of the above, where
//     every mutation persists its slice through a pluggable key-value layer
//     and a synchronization cycle commits atomically.
//
// The subpackages supply the moving parts: sheet fetches the published
// tables, fx the fallback exchange rate, syncer the periodic cycle, kv the
// persistence, advisor the AI summaries, and cmd the CLI surface.
package stockstudy
