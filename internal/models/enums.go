package models

// Role is an account role as stored by the service.
type Role string

const (
	RoleDirector    Role = "diretor"
	RoleCoordinator Role = "coordenador"
	RoleSecretary   Role = "secretario"
	RoleTeacher     Role = "professor"
)

// AllRoles lists every role the service accepts.
var AllRoles = []Role{RoleDirector, RoleCoordinator, RoleSecretary, RoleTeacher}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDirector, RoleCoordinator, RoleSecretary, RoleTeacher:
		return true
	}
	return false
}

// Label returns the display name for the role. Unknown values are
// passed through unchanged so new server-side roles still render.
func (r Role) Label() string {
	switch r {
	case RoleDirector:
		return "Diretor(a)"
	case RoleCoordinator:
		return "Coordenador(a)"
	case RoleSecretary:
		return "Secretário(a)"
	case RoleTeacher:
		return "Professor(a)"
	}
	return string(r)
}

// StudentStatus is the enrollment status of a student.
type StudentStatus string

const (
	StatusActive      StudentStatus = "ativo"
	StatusInactive    StudentStatus = "inativo"
	StatusSuspended   StudentStatus = "suspenso"
	StatusTransferred StudentStatus = "transferido"
)

var AllStatuses = []StudentStatus{StatusActive, StatusInactive, StatusSuspended, StatusTransferred}

func (s StudentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusTransferred:
		return true
	}
	return false
}

func (s StudentStatus) Label() string {
	switch s {
	case StatusActive:
		return "Ativo"
	case StatusInactive:
		return "Inativo"
	case StatusSuspended:
		return "Suspenso"
	case StatusTransferred:
		return "Transferido"
	}
	return string(s)
}

// Period is the daily period a class group meets in.
type Period string

const (
	PeriodMorning   Period = "manha"
	PeriodAfternoon Period = "tarde"
	PeriodEvening   Period = "noite"
	PeriodFull      Period = "integral"
)

var AllPeriods = []Period{PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodFull}

func (p Period) Valid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodFull:
		return true
	}
	return false
}

func (p Period) Label() string {
	switch p {
	case PeriodMorning:
		return "Manhã"
	case PeriodAfternoon:
		return "Tarde"
	case PeriodEvening:
		return "Noite"
	case PeriodFull:
		return "Integral"
	}
	return string(p)
}

// EntityKind identifies one of the cached collections.
type EntityKind string

const (
	KindClasses  EntityKind = "classes"
	KindStudents EntityKind = "students"
	KindAccounts EntityKind = "accounts"
)

func (k EntityKind) Valid() bool {
	switch k {
	case KindClasses, KindStudents, KindAccounts:
		return true
	}
	return false
}
