// SPDX-License-Identifier: MIT

package store

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/search"
)

var cellPrefix = []byte("cell/")

// Key addresses one cached cell query.
type Key struct {
	// Digest identifies the matrix and committee size; see Digest.
	Digest uint64
	// Rule is the strategy name.
	Rule string
	// Cell is (covLo, covHi, appLo, appHi).
	Cell [4]int
}

// Digest hashes the candidate ids, every matrix row and k.
// Complexity: O(n·m).
func Digest(mx *approval.Matrix, k int) uint64 {
	var (
		h   = xxhash.New()
		buf [binary.MaxVarintLen64]byte
	)
	put := func(v int) {
		l := binary.PutVarint(buf[:], int64(v))
		_, _ = h.Write(buf[:l])
	}
	put(mx.Rows())
	put(mx.Cols())
	for _, c := range mx.Candidates() {
		put(int(c))
	}
	row := make([]byte, mx.Cols())
	for i := 0; i < mx.Rows(); i++ {
		for j := range row {
			row[j] = 0
			if mx.Approves(i, j) {
				row[j] = 1
			}
		}
		_, _ = h.Write(row)
	}
	put(k)

	return h.Sum64()
}

// bytes encodes the key.
func (k Key) bytes() []byte {
	out := make([]byte, 0, len(cellPrefix)+8+len(k.Rule)+1+4*binary.MaxVarintLen64)
	out = append(out, cellPrefix...)
	out = binary.BigEndian.AppendUint64(out, k.Digest)
	out = append(out, k.Rule...)
	out = append(out, 0)
	for _, v := range k.Cell {
		out = binary.AppendVarint(out, int64(v))
	}

	return out
}

// Option configures Open.
type Option func(*Store)

// WithLogger sets the logger for cache hits and writes.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store is a Badger-backed outcome cache. Get and Put are safe for concurrent
// use; Close must not race with them.
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens (or creates) the cache at path. An empty path keeps everything
// in memory.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	dbOpts := badger.DefaultOptions(path)
	dbOpts.Logger = nil
	dbOpts.DetectConflicts = false
	if path == "" {
		dbOpts.InMemory = true
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "open store %q", path)
	}
	s.db = db

	return s, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil

	return err
}

// Get returns the cached outcome for key.
func (s *Store) Get(key Key) (search.Outcome, bool, error) {
	if s.db == nil {
		return search.Outcome{}, false, ErrClosed
	}
	var (
		out   search.Outcome
		found bool
	)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key.bytes())
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		return item.Value(func(val []byte) error {
			out, err = decode(val)
			return err
		})
	})
	if err != nil {
		return search.Outcome{}, false, errors.Wrap(err, "store get")
	}
	if found {
		s.logger.Debug("cache hit", zap.String("rule", key.Rule), zap.Ints("cell", key.Cell[:]))
	}

	return out, found, nil
}

// Put stores out under key, replacing any previous value.
func (s *Store) Put(key Key, out search.Outcome) error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key.bytes(), encode(out))
	})

	return errors.Wrap(err, "store put")
}

// Len counts the cached cells.
func (s *Store) Len() (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         cellPrefix,
		})
		defer it.Close()
		for it.Seek(cellPrefix); it.ValidForPrefix(cellPrefix); it.Next() {
			n++
		}

		return nil
	})

	return n, errors.Wrap(err, "store len")
}

// encode writes found, objective, coverage, approval, |committee|, members.
func encode(out search.Outcome) []byte {
	buf := make([]byte, 0, 1+(4+len(out.Committee))*binary.MaxVarintLen64)
	if out.Found {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = binary.AppendVarint(buf, int64(out.Objective))
	buf = binary.AppendVarint(buf, int64(out.Coverage))
	buf = binary.AppendVarint(buf, int64(out.Approval))
	buf = binary.AppendUvarint(buf, uint64(len(out.Committee)))
	for _, c := range out.Committee {
		buf = binary.AppendVarint(buf, int64(c))
	}

	return buf
}

func decode(val []byte) (search.Outcome, error) {
	if len(val) < 1 || val[0] > 1 {
		return search.Outcome{}, ErrCorruptEntry
	}
	out := search.Outcome{Found: val[0] == 1}
	rest := val[1:]
	next := func() (int64, bool) {
		v, l := binary.Varint(rest)
		if l <= 0 {
			return 0, false
		}
		rest = rest[l:]
		return v, true
	}
	var fields [3]int64
	for t := range fields {
		v, ok := next()
		if !ok {
			return search.Outcome{}, ErrCorruptEntry
		}
		fields[t] = v
	}
	out.Objective, out.Coverage, out.Approval = int(fields[0]), int(fields[1]), int(fields[2])
	size, l := binary.Uvarint(rest)
	if l <= 0 || size > uint64(len(rest)) {
		return search.Outcome{}, ErrCorruptEntry
	}
	rest = rest[l:]
	if size > 0 {
		out.Committee = make(approval.Committee, size)
		for t := range out.Committee {
			v, ok := next()
			if !ok {
				return search.Outcome{}, ErrCorruptEntry
			}
			out.Committee[t] = approval.Candidate(v)
		}
	}
	if len(rest) != 0 {
		return search.Outcome{}, ErrCorruptEntry
	}

	return out, nil
}
