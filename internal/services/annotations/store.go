package annotations

import (
	"fmt"
	"slices"
	"sort"

	"github.com/killallgit/labeler/internal/models"
)

// Tolerance absorbs floating point noise on interval edges
const Tolerance = 0.001

// Store is the ordered collection of finalized annotations. It is not safe
// for concurrent use; Session serializes access.
type Store struct {
	items []*models.Annotation
}

// NewStore creates a store holding the given annotations
func NewStore(items ...*models.Annotation) *Store {
	s := &Store{}
	s.Replace(items)
	return s
}

// Len returns the number of stored annotations
func (s *Store) Len() int {
	return len(s.items)
}

// Add inserts an annotation and keeps the store sorted by start time
func (s *Store) Add(a *models.Annotation) {
	s.items = append(s.items, a)
	s.sort()
}

// Remove deletes the annotation with the given ID. A missing ID means the
// caller's view of the store is stale and is reported as ErrIntegrity.
func (s *Store) Remove(id string) error {
	idx := slices.IndexFunc(s.items, func(a *models.Annotation) bool { return a.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: annotation %s not found", ErrIntegrity, id)
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	return nil
}

// RemoveAll deletes every annotation in ids. Nothing is removed unless all
// of them are present.
func (s *Store) RemoveAll(ids ...string) error {
	for _, id := range ids {
		if _, ok := s.Get(id); !ok {
			return fmt.Errorf("%w: annotation %s not found", ErrIntegrity, id)
		}
	}
	for _, id := range ids {
		if err := s.Remove(id); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the annotation with the given ID
func (s *Store) Get(id string) (*models.Annotation, bool) {
	for _, a := range s.items {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Replace swaps the full content of the store
func (s *Store) Replace(items []*models.Annotation) {
	s.items = slices.Clone(items)
	s.sort()
}

// Sorted returns the annotations ordered by start time. The slice is a copy;
// the annotations are shared.
func (s *Store) Sorted() []*models.Annotation {
	return slices.Clone(s.items)
}

// Snapshot returns a deep copy of every annotation in start order
func (s *Store) Snapshot() []*models.Annotation {
	out := make([]*models.Annotation, len(s.items))
	for i, a := range s.items {
		out[i] = a.Clone()
	}
	return out
}

// Overlaps reports whether [start, end] intersects a stored annotation other
// than excludeID. Edges touching within Tolerance do not count.
func (s *Store) Overlaps(start, end float64, excludeID string) bool {
	for _, a := range s.items {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if start < a.EndTime-Tolerance && end > a.StartTime+Tolerance {
			return true
		}
	}
	return false
}

// FindContaining returns the index, in start order, of the first annotation
// whose range contains t within Tolerance, or -1. When two annotations share
// a boundary the earlier one wins.
func (s *Store) FindContaining(t float64) int {
	for i, a := range s.items {
		if a.StartTime-Tolerance <= t && t <= a.EndTime+Tolerance {
			return i
		}
	}
	return -1
}

// At returns the annotation at index i of the start order
func (s *Store) At(i int) *models.Annotation {
	return s.items[i]
}

// BoundaryPoints returns every distinct start and end time, ascending
func (s *Store) BoundaryPoints() []float64 {
	points := make([]float64, 0, len(s.items)*2)
	for _, a := range s.items {
		points = append(points, a.StartTime, a.EndTime)
	}
	slices.Sort(points)
	return slices.Compact(points)
}

func (s *Store) sort() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].StartTime < s.items[j].StartTime
	})
}
