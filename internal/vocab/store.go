package vocab

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"codeberg.org/snonux/wordcycle/internal/domain"
)

// Store owns the active word file path and the ordered word list.
// Mutations that persist roll back the in-memory list if the save fails.
type Store struct {
	path    string
	entries []domain.Entry
	rnd     *rand.Rand
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithRand sets the random source used for shuffling.
func WithRand(rnd *rand.Rand) Option {
	return func(s *Store) { s.rnd = rnd }
}

// WithLogger sets the store's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store for path holding entries in the given order.
func NewStore(path string, entries []domain.Entry, opts ...Option) *Store {
	s := &Store{
		path:    path,
		entries: append([]domain.Entry(nil), entries...),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Open loads path and returns a store over its entries in file order.
func Open(path string, opts ...Option) (*Store, error) {
	entries, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := NewStore(path, entries, opts...)
	s.logger.Debug("word file loaded", zap.String("path", path), zap.Int("entries", len(entries)))
	return s, nil
}

// Path returns the file the store persists to.
func (s *Store) Path() string { return s.path }

// SetPath changes the file subsequent saves go to.
func (s *Store) SetPath(path string) { s.path = path }

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Entry returns the entry at index i.
func (s *Store) Entry(i int) domain.Entry { return s.entries[i] }

// Entries returns a copy of the list in display order.
func (s *Store) Entries() []domain.Entry {
	return append([]domain.Entry(nil), s.entries...)
}

// IndexOf returns the position of the entry with the given identity, or -1.
func (s *Store) IndexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Shuffle reorders the list in memory. Order is not persisted.
func (s *Store) Shuffle() {
	s.entries = Shuffled(s.entries, s.rnd)
}

// Append adds e at the end of the list and saves the file.
func (s *Store) Append(e domain.Entry) error {
	next := Append(s.entries, e)
	if err := Save(s.path, next); err != nil {
		return err
	}
	s.entries = next
	s.logger.Info("word added", zap.String("word", e.Word), zap.Int("entries", len(next)))
	return nil
}

// Delete removes every entry whose identity is in ids and returns how many
// were removed. Nothing is written when no entry matched.
func (s *Store) Delete(ids map[string]struct{}) (int, error) {
	next, removed := DeleteByID(s.entries, ids)
	if removed == 0 {
		return 0, nil
	}
	if err := Save(s.path, next); err != nil {
		return 0, err
	}
	s.entries = next
	s.logger.Info("words deleted", zap.Int("removed", removed), zap.Int("entries", len(next)))
	return removed, nil
}

// Replace substitutes the whole list, optionally shuffled. It does not save.
func (s *Store) Replace(entries []domain.Entry, shuffle bool) {
	if shuffle {
		s.entries = Shuffled(entries, s.rnd)
	} else {
		s.entries = append([]domain.Entry(nil), entries...)
	}
}

// Save writes the current list to the store's path.
func (s *Store) Save() error {
	return Save(s.path, s.entries)
}
