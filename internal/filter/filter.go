// Package filter derives the visible student list from the cached
// collection and the operator's current inputs. Apply is a pure function:
// identical inputs always yield an identical ordered sequence, so it is
// safe to re-run on every keystroke.
package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mbarros/escolactl/internal/models"
)

// Criteria is the combined set of active filter inputs. Zero values mean
// "no restriction".
type Criteria struct {
	ClassID  *int
	Status   models.StudentStatus
	FreeText string
}

// Empty reports whether no predicate is active.
func (c Criteria) Empty() bool {
	return c.ClassID == nil && c.Status == "" && strings.TrimSpace(c.FreeText) == ""
}

// newCollator builds the name collator: Brazilian Portuguese order,
// case-insensitive. Collators are not safe for concurrent use, so each
// Apply call gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
}

// Apply keeps the students matching every active predicate and returns
// them sorted by name. classNames resolves a student's class reference for
// the free-text match; a student's own ClassName field is used when the
// map has no entry. Ties keep the original load order (stable sort). The
// input slice is never mutated.
func Apply(students []models.Student, classNames map[int]string, c Criteria) []models.Student {
	text := strings.ToLower(strings.TrimSpace(c.FreeText))

	kept := make([]models.Student, 0, len(students))
	for _, s := range students {
		if c.ClassID != nil && (s.ClassID == nil || *s.ClassID != *c.ClassID) {
			continue
		}
		if c.Status != "" && s.Status != c.Status {
			continue
		}
		if text != "" && !matchesText(s, classNames, text) {
			continue
		}
		kept = append(kept, s)
	}

	col := newCollator()
	sort.SliceStable(kept, func(i, j int) bool {
		return col.CompareString(kept[i].Name, kept[j].Name) < 0
	})
	return kept
}

// matchesText checks the lower-cased needle against name, email and the
// resolved class name. Diacritics are preserved: "Jose" does not match
// "José".
func matchesText(s models.Student, classNames map[int]string, needle string) bool {
	if strings.Contains(strings.ToLower(s.Name), needle) {
		return true
	}
	if s.Email != "" && strings.Contains(strings.ToLower(s.Email), needle) {
		return true
	}
	className := s.ClassName
	if s.ClassID != nil {
		if name, ok := classNames[*s.ClassID]; ok {
			className = name
		}
	}
	return className != "" && strings.Contains(strings.ToLower(className), needle)
}
