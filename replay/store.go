// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package replay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flowchartsman/retry"
	bbolt "go.etcd.io/bbolt"
	"go.uber.org/atomic"

	perrors "github.com/tochemey/pcheck/errors"
)

// Store persists replay records.
type Store interface {
	// Put stores or replaces the given record.
	Put(ctx context.Context, record *Record) error
	// Get returns the record with the given identifier.
	Get(ctx context.Context, id string) (*Record, error)
	// List returns the records of the given test in creation order.
	// An empty test name lists every record.
	List(ctx context.Context, test string) ([]*Record, error)
	// Close releases the store resources.
	Close() error
}

const (
	boltFileMode   os.FileMode = 0o600
	boltBucketName             = "records"
)

var (
	boltTimeout        = time.Second
	defaultBoltOptions = &bbolt.Options{Timeout: boltTimeout, NoGrowSync: true}

	// open attempts when the database file is locked by another process
	openMaxAttempts  = 5
	openInitialDelay = 100 * time.Millisecond
	openMaxDelay     = 2 * time.Second
)

// BoltStore implements Store on top of go.etcd.io/bbolt.
//
// Records are encoded with Encode and kept in a single bucket keyed by
// record identifier. bbolt provides single-writer/multi-reader semantics,
// so the store only guards its closed state.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
	closed atomic.Bool
}

var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens, or creates, the bbolt database at the given path.
// Opening is retried with backoff while the file is locked by another
// process.
func OpenBoltStore(ctx context.Context, path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("replay: unable to create store directory: %w", err)
	}

	var db *bbolt.DB
	retrier := retry.NewRetrier(openMaxAttempts, openInitialDelay, openMaxDelay)
	if err := retrier.RunContext(ctx, func(context.Context) error {
		optionsCopy := *defaultBoltOptions
		handle, err := bbolt.Open(path, boltFileMode, &optionsCopy)
		if err != nil {
			return err
		}
		db = handle
		return nil
	}); err != nil {
		return nil, fmt.Errorf("replay: opening boltdb: %w", err)
	}

	bucket := []byte(boltBucketName)
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucket)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("replay: initializing boltdb bucket: %w", err)
	}

	return &BoltStore{db: db, bucket: bucket}, nil
}

// Put stores or replaces the given record.
func (s *BoltStore) Put(ctx context.Context, record *Record) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(record)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("replay: bucket %q missing", s.bucket)
		}
		return bucket.Put([]byte(record.ID), data)
	})
}

// Get returns the record with the given identifier.
func (s *BoltStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record *Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("replay: bucket %q missing", s.bucket)
		}
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return perrors.NewErrRecordNotFound(id)
		}
		decoded, err := Decode(raw)
		if err != nil {
			return err
		}
		record = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List returns the records of the given test in creation order. bbolt
// iterates keys in byte order, which is the creation order of version 7
// UUIDs.
func (s *BoltStore) List(ctx context.Context, test string) ([]*Record, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []*Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("replay: bucket %q missing", s.bucket)
		}
		return bucket.ForEach(func(_, raw []byte) error {
			record, err := Decode(raw)
			if err != nil {
				return err
			}
			if test == "" || record.Test == test {
				records = append(records, record)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Close releases the underlying bbolt handle. The database file is kept.
func (s *BoltStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStore) ensureOpen() error {
	if s.closed.Load() {
		return perrors.ErrStoreClosed
	}
	return nil
}

// IsNotFound reports whether the error means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, perrors.ErrRecordNotFound)
}
