package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
)

// lockRetryInterval and lockTimeout bound how long an operation waits
// for another process to release the database directory.
const (
	lockRetryInterval = 20 * time.Millisecond
	lockTimeout       = 3 * time.Second
)

// BadgerKV implements KV using Badger v3.
//
// Badger takes an exclusive lock on its directory while open. The
// database is opened for each operation and closed again, so several
// mitaina-cli processes (a REPL and one-shot commands) share one store.
type BadgerKV struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	lastGC time.Time
}

// NewBadgerKV prepares a Badger store in cfg.Dir. The directory is
// created if needed; the database itself is opened per operation.
func NewBadgerKV(cfg Config, logger *slog.Logger) (*BadgerKV, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(cfg.Dir, 0700); err != nil {
		return nil, fmt.Errorf("badger: create dir: %w", err)
	}

	return &BadgerKV{
		cfg:    cfg,
		logger: logger,
		lastGC: time.Now(),
	}, nil
}

func (s *BadgerKV) options() badger.Options {
	opts := badger.DefaultOptions(s.cfg.Dir)
	opts.Logger = &badgerLogger{logger: s.logger}

	// The store only ever holds a handful of small values. ValueThreshold
	// must stay below the batch limit derived from MemTableSize.
	opts.MemTableSize = 4 << 20
	opts.ValueThreshold = 1 << 10
	opts.ValueLogFileSize = 16 << 20
	opts.BlockCacheSize = 1 << 20
	opts.IndexCacheSize = 1 << 20
	opts.NumMemtables = 1
	opts.SyncWrites = s.cfg.SyncWrites
	opts.DetectConflicts = false
	return opts
}

// isLockErr reports whether err means another process holds the directory.
func isLockErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Cannot acquire directory lock")
}

// open opens the database, retrying while another process holds it.
func (s *BadgerKV) open(ctx context.Context) (*badger.DB, error) {
	deadline := time.Now().Add(lockTimeout)
	for {
		db, err := badger.Open(s.options())
		if err == nil {
			return db, nil
		}
		if !isLockErr(err) || time.Now().After(deadline) {
			return nil, fmt.Errorf("badger: open db: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// with runs fn against a freshly opened database and closes it again.
func (s *BadgerKV) with(ctx context.Context, fn func(db *badger.DB) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}

	err = fn(db)
	if cerr := db.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("badger: close db: %w", cerr)
	}
	return err
}

// Get retrieves a value by key.
func (s *BadgerKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.with(ctx, func(db *badger.DB) error {
		return db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(key))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return ErrKeyNotFound
				}
				return err
			}
			value, err = item.ValueCopy(nil)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a key-value pair.
func (s *BadgerKV) Set(ctx context.Context, key string, value []byte) error {
	return s.with(ctx, func(db *badger.DB) error {
		if err := db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte(key), value)
		}); err != nil {
			return err
		}
		s.maybeGC(db)
		return nil
	})
}

// Delete removes a key.
func (s *BadgerKV) Delete(ctx context.Context, key string) error {
	return s.with(ctx, func(db *badger.DB) error {
		if err := db.Update(func(txn *badger.Txn) error {
			return txn.Delete([]byte(key))
		}); err != nil {
			return err
		}
		s.maybeGC(db)
		return nil
	})
}

// GC runs value log garbage collection until nothing more can be rewritten.
func (s *BadgerKV) GC(ctx context.Context) error {
	return s.with(ctx, runGC(s.cfg.GCThreshold))
}

func runGC(threshold float64) func(db *badger.DB) error {
	return func(db *badger.DB) error {
		for {
			err := db.RunValueLogGC(threshold)
			if err != nil {
				if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
					return nil
				}
				return fmt.Errorf("gc: %w", err)
			}
		}
	}
}

// maybeGC collects the value log after a write once GCInterval has
// passed. Called with mu held.
func (s *BadgerKV) maybeGC(db *badger.DB) {
	interval, err := time.ParseDuration(s.cfg.GCInterval)
	if err != nil || interval <= 0 {
		interval = 10 * time.Minute
	}
	if time.Since(s.lastGC) < interval {
		return
	}
	s.lastGC = time.Now()
	if err := runGC(s.cfg.GCThreshold)(db); err != nil {
		s.logger.Warn("auto gc failed", "error", err)
	}
}

// Close marks the store closed. It is safe to call more than once.
func (s *BadgerKV) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.logger.Debug("badger store closed", "dir", s.cfg.Dir)
	}
	return nil
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
// Badger's info output is chatty, so it is logged at debug level.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
