package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/mediastash/mediastash-backend/pkg/logger"
)

// Store owns the persisted collection of media records. The whole collection
// lives in one JSON array document that is read and rewritten in full on every
// append; the store mutex serializes those read-modify-write cycles so
// concurrent uploads cannot overwrite each other's appends.
type Store struct {
	path string
	logg *logger.Logger

	mu sync.Mutex
}

// NewStore returns a store persisting to the document at path. The document
// is created on the first save.
func NewStore(path string, logg *logger.Logger) *Store {
	return &Store{path: path, logg: logg}
}

// ReadAll loads the persisted document. A missing, unreadable or malformed
// document reads as an empty collection; the three conditions are logged
// apart so "no data yet" and "data lost" stay distinguishable.
func (s *Store) ReadAll(ctx context.Context) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAllLocked(ctx)
}

func (s *Store) readAllLocked(ctx context.Context) []Record {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if s.logg != nil {
				s.logg.Debug(ctx, "metadata document absent, reading as empty")
			}
			return []Record{}
		}
		if s.logg != nil {
			s.logg.Error(ctx, "metadata document unreadable, reading as empty", err)
		}
		return []Record{}
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "metadata document corrupt, reading as empty", err)
		}
		return []Record{}
	}
	if records == nil {
		records = []Record{}
	}
	return records
}

// SaveAll serializes the full collection and overwrites the document in one
// plain write. There is no temp-file rename; a write interrupted mid-way can
// truncate the document, which later reads surface as an empty collection.
func (s *Store) SaveAll(ctx context.Context, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAllLocked(records)
}

func (s *Store) saveAllLocked(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write metadata document: %w", err)
	}
	return nil
}

// Append runs one read-modify-write cycle of the whole document under the
// store mutex.
func (s *Store) Append(ctx context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.readAllLocked(ctx)
	records = append(records, record)
	return s.saveAllLocked(records)
}
