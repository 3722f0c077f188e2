// Package vectorstore keeps job embeddings in memory and answers
// nearest-neighbour queries by cosine distance.
package vectorstore

import (
	"fmt"
	"sort"
	"sync"

	apperrors "linkedinsight/backend/pkg/errors"
)

// Record is a stored embedding with its source document and metadata
type Record struct {
	ID       string
	Vector   []float32
	Document string
	Metadata map[string]string
}

// Match is a query hit
type Match struct {
	ID         string            `json:"id"`
	Document   string            `json:"document"`
	Metadata   map[string]string `json:"metadata"`
	Distance   float32           `json:"distance"`
	Similarity float32           `json:"similarity_score"`
}

// Store is a process-lifetime collection of records
type Store struct {
	name    string
	mu      sync.RWMutex
	records map[string]Record
	dim     int
}

// New creates an empty collection
func New(name string) *Store {
	return &Store{
		name:    name,
		records: make(map[string]Record),
	}
}

// Name returns the collection name
func (s *Store) Name() string {
	return s.name
}

// Upsert inserts rec or replaces the record with the same ID.
// All records in a collection share one dimension, fixed by the first insert.
func (s *Store) Upsert(rec Record) error {
	if rec.ID == "" {
		return apperrors.NewInvalidArgument("id", "Record ID cannot be empty")
	}
	if len(rec.Vector) == 0 {
		return apperrors.NewInvalidArgument("vector", "Record vector cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dim != 0 && len(rec.Vector) != s.dim {
		return fmt.Errorf("%w: collection has %d, record %s has %d",
			ErrDimensionMismatch, s.dim, rec.ID, len(rec.Vector))
	}
	if s.dim == 0 {
		s.dim = len(rec.Vector)
	}

	stored := Record{
		ID:       rec.ID,
		Vector:   append([]float32(nil), rec.Vector...),
		Document: rec.Document,
		Metadata: copyMetadata(rec.Metadata),
	}
	s.records[rec.ID] = stored
	return nil
}

// Query returns up to n records closest to vector, nearest first.
// Only records whose metadata equals every entry of filter are considered.
func (s *Store) Query(vector []float32, n int, filter map[string]string) ([]Match, error) {
	if n <= 0 {
		return nil, apperrors.NewInvalidArgument("n", "Number of results must be positive")
	}
	if len(vector) == 0 {
		return nil, apperrors.NewInvalidArgument("vector", "Query vector cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return []Match{}, nil
	}
	if len(vector) != s.dim {
		return nil, fmt.Errorf("%w: collection has %d, query has %d", ErrDimensionMismatch, s.dim, len(vector))
	}

	matches := make([]Match, 0, len(s.records))
	for _, rec := range s.records {
		if !matchesFilter(rec.Metadata, filter) {
			continue
		}
		distance, err := CosineDistance(vector, rec.Vector)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{
			ID:         rec.ID,
			Document:   rec.Document,
			Metadata:   copyMetadata(rec.Metadata),
			Distance:   distance,
			Similarity: 1 - distance,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].ID < matches[j].ID
	})

	if len(matches) > n {
		matches = matches[:n]
	}
	return matches, nil
}

// Get returns the record stored under id
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Delete removes id and reports whether it was present
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	if len(s.records) == 0 {
		s.dim = 0
	}
	return true
}

// Count returns the number of stored records
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func matchesFilter(metadata, filter map[string]string) bool {
	for k, v := range filter {
		if metadata[k] != v {
			return false
		}
	}
	return true
}

func copyMetadata(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
