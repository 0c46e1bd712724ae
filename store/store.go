// Package store owns the trade log: it loads it from a storage backend,
// applies add and remove, and saves the whole log after every change.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/pnl/pkg/id"
	"github.com/rustyeddy/pnl/storage"
	"github.com/rustyeddy/pnl/trade"
)

// Key is the storage key the log is kept under.
const Key = "pnl-trades"

// ErrNotPersisted wraps save failures that happen after the in-memory log
// has already changed. The change is kept; Synced reports false until a
// later save succeeds.
var ErrNotPersisted = errors.New("trade log not persisted")

// Add validates in, builds a trade with a fresh id and creation time and
// returns a new slice with it appended. current is never modified. On a
// validation error current is returned as is.
func Add(current []trade.Trade, in trade.Input, newID func() string, now func() time.Time) ([]trade.Trade, trade.Trade, error) {
	if err := in.Validate(); err != nil {
		return current, trade.Trade{}, err
	}
	t, err := trade.New(in, newID(), now())
	if err != nil {
		return current, trade.Trade{}, err
	}
	next := make([]trade.Trade, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, t)
	return next, t, nil
}

// Remove returns a new slice without the trade with the given id. An unknown
// id is not an error; the result then equals current and removed is false.
func Remove(current []trade.Trade, tradeID string) (next []trade.Trade, removed bool) {
	next = make([]trade.Trade, 0, len(current))
	for _, t := range current {
		if t.ID == tradeID {
			removed = true
			continue
		}
		next = append(next, t)
	}
	return next, removed
}

// Store is the single owner of the trade log.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	key    string
	trades []trade.Trade
	synced bool

	newID func() string
	now   func() time.Time
	log   zerolog.Logger
}

type Option func(*Store)

// WithIDs replaces the ULID generator.
func WithIDs(f func() string) Option { return func(s *Store) { s.newID = f } }

// WithClock replaces time.Now for CreatedAt.
func WithClock(f func() time.Time) Option { return func(s *Store) { s.now = f } }

func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

// WithKey stores the log under a key other than Key.
func WithKey(k string) Option { return func(s *Store) { s.key = k } }

// Open creates a Store over kv and loads the log from it.
func Open(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   Key,
		newID: id.New,
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.Load()
	return s
}

// Load replaces the in-memory log with what is stored. Missing or unreadable
// data yields an empty log; it never fails. Malformed data is copied to
// "<key>.corrupt" before it can be overwritten by the next save. When the
// backend cannot be read at all, Synced reports false until a save succeeds.
func (s *Store) Load() []trade.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades, s.synced = s.read()
	return clone(s.trades)
}

func (s *Store) read() ([]trade.Trade, bool) {
	raw, err := s.kv.Get(s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.Debug().Str("key", s.key).Msg("no stored trades, starting empty")
		return nil, true
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("cannot read trades, starting empty; the next save replaces the stored log")
		return nil, false
	}
	trades, err := trade.Decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("stored trades are malformed, starting empty")
		if berr := s.kv.Set(s.key+".corrupt", raw); berr != nil {
			s.log.Error().Err(berr).Msg("cannot back up malformed trades")
		}
		return nil, true
	}
	s.log.Debug().Int("count", len(trades)).Msg("trades loaded")
	return trades, true
}

// Save writes the whole log under the store key.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save()
}

func (s *Store) save() error {
	b, err := trade.Encode(s.trades)
	if err != nil {
		s.synced = false
		return fmt.Errorf("encode trades: %w", err)
	}
	if err := s.kv.Set(s.key, b); err != nil {
		s.synced = false
		s.log.Error().Err(err).Str("key", s.key).Int("count", len(s.trades)).Msg("save trades")
		return fmt.Errorf("save trades: %w", err)
	}
	s.synced = true
	s.log.Debug().Int("count", len(s.trades)).Msg("trades saved")
	return nil
}

// Add appends a new trade and saves the log. A validation error leaves
// everything untouched. A save error keeps the trade in memory and wraps
// ErrNotPersisted.
func (s *Store) Add(in trade.Input) (trade.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, t, err := Add(s.trades, in, s.newID, s.now)
	if err != nil {
		return trade.Trade{}, err
	}
	s.trades = next
	s.log.Info().Str("id", t.ID).Str("type", string(t.Type)).Str("amount", t.Amount.String()).
		Stringer("date", t.Date).Msg("trade added")

	if err := s.save(); err != nil {
		return t, fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return t, nil
}

// Remove deletes the trade with the given id and saves the log. Nothing is
// saved when no trade matched.
func (s *Store) Remove(tradeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := Remove(s.trades, tradeID)
	if !removed {
		s.log.Debug().Str("id", tradeID).Msg("remove: no such trade")
		return false, nil
	}
	s.trades = next
	s.log.Info().Str("id", tradeID).Msg("trade removed")

	if err := s.save(); err != nil {
		return true, fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return true, nil
}

// Trades returns a copy of the log in insertion order.
func (s *Store) Trades() []trade.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clone(s.trades)
}

// Get returns the trade with the given id.
func (s *Store) Get(tradeID string) (trade.Trade, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.trades {
		if t.ID == tradeID {
			return t, true
		}
	}
	return trade.Trade{}, false
}

// Synced reports whether the in-memory log matches the last successful load
// or save.
func (s *Store) Synced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.synced
}

func clone(ts []trade.Trade) []trade.Trade {
	return append([]trade.Trade{}, ts...)
}
