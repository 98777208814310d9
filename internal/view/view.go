// Package view derives everything the presentation layer shows from the
// entity cache: dropdown option lists, the filtered student table, and
// summary counters. It performs no network I/O; the cache notifies it on
// every mutation and the derived snapshot is rebuilt from scratch, so no
// corrective polling is ever needed.
package view

import (
	"math"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mbarros/escolactl/internal/cache"
	"github.com/mbarros/escolactl/internal/filter"
	"github.com/mbarros/escolactl/internal/models"
)

// OccupancyBucket classifies how full a class group is.
type OccupancyBucket string

const (
	BucketLow    OccupancyBucket = "low"    // < 50%
	BucketMedium OccupancyBucket = "medium" // 50–79%
	BucketHigh   OccupancyBucket = "high"   // 80–99%
	BucketFull   OccupancyBucket = "full"   // >= 100%
)

// OccupancyPercent is round(enrolled/capacity*100). A non-positive
// capacity yields 0; the service should never send one, but a stale row
// must not panic the view.
func OccupancyPercent(enrolled, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(enrolled) / float64(capacity) * 100))
}

func BucketFor(percent int) OccupancyBucket {
	switch {
	case percent < 50:
		return BucketLow
	case percent < 80:
		return BucketMedium
	case percent < 100:
		return BucketHigh
	}
	return BucketFull
}

// ClassOption is one entry of the class dropdowns.
type ClassOption struct {
	ID   int
	Name string
}

// ClassOccupancy is one row of the occupancy summary.
type ClassOccupancy struct {
	Class   models.ClassGroup
	Percent int
	Bucket  OccupancyBucket
}

// Summary holds the counters shown on the dashboard, computed locally
// from the cached collections.
type Summary struct {
	TotalStudents  int
	ActiveStudents int
	TotalClasses   int
	Occupancy      []ClassOccupancy
}

// Synchronizer owns the derived snapshot. Wire it to a cache with
// cache.SetOnChange(s.Refresh); every mutation then rebuilds the options,
// the filtered rows and the counters.
type Synchronizer struct {
	cache *cache.Cache

	mu       sync.Mutex
	criteria filter.Criteria
	options  []ClassOption
	rows     []models.Student
	summary  Summary
}

func NewSynchronizer(c *cache.Cache) *Synchronizer {
	s := &Synchronizer{cache: c}
	s.Refresh("")
	return s
}

// Refresh rebuilds the whole derived snapshot. The changed kind is
// accepted to satisfy cache.ChangeFunc; recomputing everything keeps the
// view a pure function of (cache, criteria).
func (s *Synchronizer) Refresh(models.EntityKind) {
	classes := s.cache.Classes()
	students := s.cache.Students()
	classNames := s.cache.ClassNames()

	col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)

	options := make([]ClassOption, 0, len(classes))
	for _, cg := range classes {
		options = append(options, ClassOption{ID: cg.ID, Name: cg.Name})
	}
	sort.SliceStable(options, func(i, j int) bool {
		return col.CompareString(options[i].Name, options[j].Name) < 0
	})

	occupancy := make([]ClassOccupancy, 0, len(classes))
	active := 0
	for _, st := range students {
		if st.Status == models.StatusActive {
			active++
		}
	}
	for _, cg := range classes {
		pct := OccupancyPercent(cg.EnrolledCount, cg.Capacity)
		occupancy = append(occupancy, ClassOccupancy{Class: cg, Percent: pct, Bucket: BucketFor(pct)})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = options
	s.rows = filter.Apply(students, classNames, s.criteria)
	s.summary = Summary{
		TotalStudents:  len(students),
		ActiveStudents: active,
		TotalClasses:   len(classes),
		Occupancy:      occupancy,
	}
}

// SetCriteria replaces the filter inputs and re-derives the rows.
func (s *Synchronizer) SetCriteria(c filter.Criteria) {
	s.mu.Lock()
	s.criteria = c
	s.mu.Unlock()
	s.Refresh("")
}

func (s *Synchronizer) Criteria() filter.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// ClassOptions returns the dropdown entries, ordered by class name.
func (s *Synchronizer) ClassOptions() []ClassOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ClassOption(nil), s.options...)
}

// Rows returns the students passing the current criteria, in display
// order.
func (s *Synchronizer) Rows() []models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Student(nil), s.rows...)
}

func (s *Synchronizer) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := s.summary
	sum.Occupancy = append([]ClassOccupancy(nil), s.summary.Occupancy...)
	return sum
}
