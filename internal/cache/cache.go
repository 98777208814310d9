// Package cache is the client's in-memory copy of the server-fetched
// collections and the single source of truth for every view. Setters
// replace a whole collection at once; there is no incremental patching, so
// a late-arriving response can only ever overwrite, never corrupt.
package cache

import (
	"sync"

	"github.com/mbarros/escolactl/internal/models"
)

// ChangeFunc is invoked after every mutation with the kind that changed.
// Profile updates report with kind == "" since no collection moved.
type ChangeFunc func(kind models.EntityKind)

type Cache struct {
	mu       sync.RWMutex
	classes  []models.ClassGroup
	students []models.Student
	accounts []models.Account
	profile  *models.Profile
	loaded   map[models.EntityKind]bool

	onChange ChangeFunc
}

func New() *Cache {
	return &Cache{loaded: make(map[models.EntityKind]bool)}
}

// SetOnChange registers the listener fired after each mutation. Must be
// called before the cache is shared; there is exactly one listener.
func (c *Cache) SetOnChange(fn ChangeFunc) {
	c.onChange = fn
}

func (c *Cache) notify(kind models.EntityKind) {
	if c.onChange != nil {
		c.onChange(kind)
	}
}

// SetClasses replaces the class collection.
func (c *Cache) SetClasses(list []models.ClassGroup) {
	c.mu.Lock()
	c.classes = append([]models.ClassGroup(nil), list...)
	c.loaded[models.KindClasses] = true
	c.mu.Unlock()
	c.notify(models.KindClasses)
}

// SetStudents replaces the student collection.
func (c *Cache) SetStudents(list []models.Student) {
	c.mu.Lock()
	c.students = append([]models.Student(nil), list...)
	c.loaded[models.KindStudents] = true
	c.mu.Unlock()
	c.notify(models.KindStudents)
}

// SetAccounts replaces the account collection.
func (c *Cache) SetAccounts(list []models.Account) {
	c.mu.Lock()
	c.accounts = append([]models.Account(nil), list...)
	c.loaded[models.KindAccounts] = true
	c.mu.Unlock()
	c.notify(models.KindAccounts)
}

// SetProfile stores the authenticated user's record.
func (c *Cache) SetProfile(p models.Profile) {
	c.mu.Lock()
	cp := p
	c.profile = &cp
	c.mu.Unlock()
	c.notify("")
}

// Invalidate drops a collection back to "not loaded", so consumers can
// tell an empty collection from one that was never fetched.
func (c *Cache) Invalidate(kind models.EntityKind) {
	c.mu.Lock()
	switch kind {
	case models.KindClasses:
		c.classes = nil
	case models.KindStudents:
		c.students = nil
	case models.KindAccounts:
		c.accounts = nil
	}
	c.loaded[kind] = false
	c.mu.Unlock()
	c.notify(kind)
}

// Reset wipes everything including the profile. Used on logout.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.classes, c.students, c.accounts, c.profile = nil, nil, nil, nil
	c.loaded = make(map[models.EntityKind]bool)
	c.mu.Unlock()
	c.notify("")
}

// Loaded reports whether the kind's collection has been fetched.
func (c *Cache) Loaded(kind models.EntityKind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded[kind]
}

func (c *Cache) Classes() []models.ClassGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.ClassGroup(nil), c.classes...)
}

func (c *Cache) Students() []models.Student {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Student(nil), c.students...)
}

func (c *Cache) Accounts() []models.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Account(nil), c.accounts...)
}

func (c *Cache) Profile() (models.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return models.Profile{}, false
	}
	return *c.profile, true
}

// ClassNames maps class id to class name for reference resolution in
// filters and tables.
func (c *Cache) ClassNames() map[int]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make(map[int]string, len(c.classes))
	for _, cg := range c.classes {
		names[cg.ID] = cg.Name
	}
	return names
}

// ClassByID looks a class up in the cached collection.
func (c *Cache) ClassByID(id int) (models.ClassGroup, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cg := range c.classes {
		if cg.ID == id {
			return cg, true
		}
	}
	return models.ClassGroup{}, false
}
