// Package models defines the entities exchanged with the school-records
// service. Field tags follow the service's wire format; the rest of the
// client only sees the Go names.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date serialized as "2006-01-02", the format the
// service uses for birth and enrollment dates.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	*d = Date{t}
	return nil
}

// ParseDate parses the wire layout (YYYY-MM-DD). An empty string is the
// zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Profile is the authenticated user's record, loaded once per session
// from the service and read-only afterwards.
type Profile struct {
	ID         int        `json:"id"`
	Name       string     `json:"nome"`
	Email      string     `json:"email"`
	Role       Role       `json:"cargo"`
	Active     bool       `json:"ativo"`
	CreatedAt  time.Time  `json:"data_criacao"`
	LastAccess *time.Time `json:"ultimo_acesso,omitempty"`
}

// ClassGroup is a scheduled cohort of students. EnrolledCount comes from
// the service and may momentarily exceed Capacity; the client displays the
// ratio but never enforces it.
type ClassGroup struct {
	ID            int    `json:"id"`
	Name          string `json:"nome"`
	Description   string `json:"descricao,omitempty"`
	Capacity      int    `json:"capacidade"`
	Period        Period `json:"periodo"`
	AcademicYear  int    `json:"ano_letivo,string"`
	Active        bool   `json:"ativa"`
	EnrolledCount int    `json:"total_alunos"`
}

// Student belongs to at most one class group; ClassID is a non-owning
// back-reference and may be nil.
type Student struct {
	ID        int           `json:"id"`
	Name      string        `json:"nome"`
	BirthDate Date          `json:"data_nascimento"`
	Email     string        `json:"email,omitempty"`
	Status    StudentStatus `json:"status"`
	ClassID   *int          `json:"turma_id,omitempty"`
	ClassName string        `json:"turma_nome,omitempty"`
}

// Account is an operator account on the service.
type Account struct {
	ID        int       `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Role      Role      `json:"cargo"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"data_criacao"`
}

// Statistics is the aggregate dashboard payload returned by the service.
type Statistics struct {
	TotalStudents    int          `json:"total_alunos"`
	ActiveStudents   int          `json:"alunos_ativos"`
	InactiveStudents int          `json:"alunos_inativos"`
	TotalClasses     int          `json:"total_turmas"`
	ActiveClasses    int          `json:"turmas_ativas"`
	ActiveAccounts   int          `json:"usuarios_ativos"`
	StudentsPerClass []ClassCount `json:"alunos_por_turma"`
}

// ClassCount is one row of the per-class breakdown in Statistics.
type ClassCount struct {
	ClassName string `json:"turma"`
	Count     int    `json:"total"`
}

// Initial returns the first letter of a name, upper-cased, for avatar-style
// display. Empty names yield "?".
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}
