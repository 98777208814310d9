// Package editsession tracks the state of the record form: whether it is
// closed, creating a new record, or editing an existing one. The machine
// decides which mutation a submission triggers; the network calls
// themselves belong to the caller.
package editsession

import (
	"errors"
	"fmt"

	"github.com/mbarros/escolactl/internal/models"
)

// Mode of an open session.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

var (
	ErrAlreadyOpen = errors.New("a form session is already open")
	ErrNotOpen     = errors.New("no form session is open")
)

// Session is the state machine. Exactly one lives per client; it starts
// closed. Invariant: an open session in edit mode always carries a record
// id, a session in create mode never does.
type Session struct {
	open bool
	kind models.EntityKind
	mode Mode
	id   int
}

func New() *Session {
	return &Session{}
}

// StartCreate opens the form for a new record of the given kind.
func (s *Session) StartCreate(kind models.EntityKind) error {
	if s.open {
		return ErrAlreadyOpen
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	s.open, s.kind, s.mode, s.id = true, kind, ModeCreate, 0
	return nil
}

// StartEdit opens the form for the existing record id. The caller must
// have fetched the record already; a failed fetch leaves the session
// closed.
func (s *Session) StartEdit(kind models.EntityKind, id int) error {
	if s.open {
		return ErrAlreadyOpen
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	if id <= 0 {
		return fmt.Errorf("invalid record id %d", id)
	}
	s.open, s.kind, s.mode, s.id = true, kind, ModeEdit, id
	return nil
}

// Close discards the session. Closing a closed session is a no-op, so
// cancel paths need no state checks.
func (s *Session) Close() {
	s.open, s.kind, s.mode, s.id = false, "", "", 0
}

func (s *Session) Open() bool { return s.open }

func (s *Session) Kind() models.EntityKind { return s.kind }

func (s *Session) Mode() Mode { return s.mode }

// EditingID returns the record under edit. ok is false in create mode and
// when the session is closed.
func (s *Session) EditingID() (id int, ok bool) {
	if !s.open || s.mode != ModeEdit {
		return 0, false
	}
	return s.id, true
}
