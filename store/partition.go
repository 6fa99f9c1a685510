package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
)

// FeedKind names one of the ingested GTFS-RT feeds. It doubles as the
// partition directory name.
type FeedKind string

const (
	VehiclePositions FeedKind = "vehicle_positions"
	TripUpdates      FeedKind = "trip_updates"
	Alerts           FeedKind = "alerts"
)

// Kinds lists every feed kind in ingestion order.
func Kinds() []FeedKind {
	return []FeedKind{VehiclePositions, TripUpdates, Alerts}
}

// StorageError reports a failed filesystem operation on a partition.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("partition %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store resolves and rewrites daily partition files under a root directory.
type Store struct {
	root string

	mu    sync.Mutex
	locks map[FeedKind]*sync.Mutex
}

// New creates a store rooted at the given directory. The directory does
// not need to exist yet.
func New(root string) *Store {
	return &Store{root: root, locks: map[FeedKind]*sync.Mutex{}}
}

// Root returns the partition root directory.
func (s *Store) Root() string { return s.root }

// PartitionPath returns the file path for (kind, day). The day is taken
// in UTC.
func (s *Store) PartitionPath(kind FeedKind, day time.Time) string {
	return filepath.Join(s.root, string(kind), day.UTC().Format("2006-01-02")+".parquet")
}

func (s *Store) lock(kind FeedKind) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[kind] == nil {
		s.locks[kind] = &sync.Mutex{}
	}
	return s.locks[kind]
}

// Append merges rows into the partition for (kind, day). Existing rows
// keep their order; new rows go at the end. The rewrite is atomic: rows
// are written to a temporary file which is renamed over the partition.
// An empty batch is a no-op and creates no file.
func Append[T any](s *Store, kind FeedKind, day time.Time, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	mu := s.lock(kind)
	mu.Lock()
	defer mu.Unlock()

	path := s.PartitionPath(kind, day)
	combined := rows
	if _, err := os.Stat(path); err == nil {
		existing, err := parquet.ReadFile[T](path)
		if err != nil {
			return &StorageError{Op: "read", Path: path, Err: err}
		}
		combined = append(existing, rows...)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &StorageError{Op: "stat", Path: path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageError{Op: "mkdir", Path: path, Err: err}
	}

	tmp := path + ".tmp"
	if err := parquet.WriteFile(tmp, combined); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// Read loads every row of the partition for (kind, day).
func Read[T any](s *Store, kind FeedKind, day time.Time) ([]T, error) {
	path := s.PartitionPath(kind, day)
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	return rows, nil
}
