// SPDX-License-Identifier: MIT

package spectrum

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/katalvlaran/qham/model"
)

// Key layout:
//
//	run/<canonical params>/<run id>  -> Record JSON
//	id/<run id>                      -> run key
const (
	runPrefix = "run/"
	idPrefix  = "id/"
)

// canonicalJSON sorts map keys and emits compact output.
var canonicalJSON = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

// Config holds configuration for a Store.
type Config struct {
	// Path is the database directory; ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM (tests).
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Logger receives badger's own log lines; nil silences them.
	Logger *zap.Logger
}

// DefaultConfig returns a durable on-disk configuration for path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration for tests.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Record is one stored diagonalization. Eigenvectors are split into real and
// imaginary parts because JSON has no complex numbers.
type Record struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Name      string              `json:"name,omitempty"`
	Params    jsoniter.RawMessage `json:"params"`
	Method    Method              `json:"method"`
	Dim       int                 `json:"dim"`
	Values    []float64           `json:"values"`
	VectorsRe [][]float64         `json:"vectors_re"`
	VectorsIm [][]float64         `json:"vectors_im"`
}

// Vectors reassembles the complex eigenvectors.
func (r *Record) Vectors() [][]complex128 {
	out := make([][]complex128, len(r.VectorsRe))
	for k, re := range r.VectorsRe {
		out[k] = make([]complex128, len(re))
		for i, x := range re {
			var y float64
			if k < len(r.VectorsIm) && i < len(r.VectorsIm[k]) {
				y = r.VectorsIm[k][i]
			}
			out[k][i] = complex(x, y)
		}
	}

	return out
}

// badgerLogger adapts zap to badger's Logger interface.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.s.Infof(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }

// Store persists Records in badger. Safe for concurrent use.
type Store struct {
	db  *badger.DB
	log *zap.Logger
	now func() time.Time
}

// Open opens (creating if needed) a store.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("spectrum: store path is required")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("spectrum: create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	log := cfg.Logger
	if log != nil {
		opts = opts.WithLogger(badgerLogger{s: log.Named("badger").Sugar()})
	} else {
		opts = opts.WithLogger(nil)
		log = zap.NewNop()
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("spectrum: open store: %w", err)
	}

	return &Store{db: db, log: log, now: time.Now}, nil
}

// OpenInMemory opens a RAM-only store.
func OpenInMemory() (*Store, error) { return Open(InMemoryConfig()) }

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// CanonicalParams returns the storage key body for p: compact JSON with
// sorted keys. Run names are not part of it.
func CanonicalParams(p model.Params) ([]byte, error) {
	raw, err := canonicalJSON.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("spectrum: encode params: %w", err)
	}
	var generic interface{}
	if err := canonicalJSON.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("spectrum: encode params: %w", err)
	}

	return canonicalJSON.Marshal(generic)
}

// Put appends res as a new run of p under a fresh run ID. Earlier runs of
// the same parameters are kept. Put never reads inside its transaction, so
// concurrent calls do not conflict.
func (s *Store) Put(p model.Params, res *Result) (*Record, error) {
	if res == nil {
		return nil, errors.New("spectrum: nil result")
	}
	key, err := CanonicalParams(p)
	if err != nil {
		return nil, err
	}
	rec := &Record{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Name:      p.Name,
		Params:    key,
		Method:    res.Method,
		Dim:       res.Dim,
		Values:    res.Values,
		VectorsRe: make([][]float64, len(res.Vectors)),
		VectorsIm: make([][]float64, len(res.Vectors)),
	}
	for k, v := range res.Vectors {
		rec.VectorsRe[k] = make([]float64, len(v))
		rec.VectorsIm[k] = make([]float64, len(v))
		for i, z := range v {
			rec.VectorsRe[k][i], rec.VectorsIm[k][i] = real(z), imag(z)
		}
	}
	val, err := canonicalJSON.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("spectrum: encode record: %w", err)
	}

	runKey := append(paramsPrefix(key), rec.ID...)
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(runKey, val); err != nil {
			return err
		}

		return txn.Set([]byte(idPrefix+rec.ID), runKey)
	})
	if err != nil {
		return nil, fmt.Errorf("spectrum: put: %w", err)
	}
	s.log.Debug("record stored", zap.String("id", rec.ID), zap.String("name", rec.Name), zap.Int("pairs", len(rec.Values)))

	return rec, nil
}

// Get returns every run stored for p, oldest first.
// Errors: ErrNotFound when p has no runs.
func (s *Store) Get(p model.Params) ([]*Record, error) {
	key, err := CanonicalParams(p)
	if err != nil {
		return nil, err
	}
	recs, err := s.scan(paramsPrefix(key))
	if err != nil {
		return nil, fmt.Errorf("spectrum: get: %w", err)
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	slices.SortFunc(recs, func(a, b *Record) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return recs, nil
}

// GetByID returns the record with run ID id.
// Errors: ErrNotFound.
func (s *Store) GetByID(id string) (*Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("spectrum: run id %q: %w", id, ErrNotFound)
	}
	var rec *Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(idPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("run id %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		runKey, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		rec, err = getRecord(txn, runKey)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// List returns every record, grouped by parameters in key order.
func (s *Store) List() ([]*Record, error) {
	recs, err := s.scan([]byte(runPrefix))
	if err != nil {
		return nil, fmt.Errorf("spectrum: list: %w", err)
	}

	return recs, nil
}

// paramsPrefix is "run/<canonical params>/". A canonical JSON object is never
// a proper prefix of another one, so the prefix selects exactly one params set.
func paramsPrefix(key []byte) []byte {
	out := make([]byte, 0, len(runPrefix)+len(key)+1+36)
	out = append(out, runPrefix...)
	out = append(out, key...)

	return append(out, '/')
}

func (s *Store) scan(prefix []byte) ([]*Record, error) {
	var out []*Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 16})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return canonicalJSON.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, &rec)
		}
		return nil
	})

	return out, err
}

func getRecord(txn *badger.Txn, key []byte) (*Record, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := item.Value(func(val []byte) error {
		return canonicalJSON.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("spectrum: decode record: %w", err)
	}

	return &rec, nil
}
