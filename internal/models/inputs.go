package models

// Form payloads sent to the service on create/update. Validation tags are
// enforced locally (internal/validate) before any network call; the service
// applies the same rules authoritatively.

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
	Remember bool   `json:"-"`
}

type RegisterInput struct {
	Name     string `json:"nome" validate:"required,notblank,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6"`
	Confirm  string `json:"-" validate:"required,eqfield=Password"`
	Role     Role   `json:"cargo" validate:"required,oneof=diretor coordenador secretario professor"`
}

type ClassInput struct {
	Name         string `json:"nome" validate:"required,notblank,min=2,max=100"`
	Description  string `json:"descricao,omitempty" validate:"omitempty,max=255"`
	Capacity     int    `json:"capacidade" validate:"required,gte=1,lte=100"`
	AcademicYear int    `json:"ano_letivo,string" validate:"required,gte=2020,lte=2030"`
	Period       Period `json:"periodo" validate:"required,oneof=manha tarde noite integral"`
}

type StudentInput struct {
	Name      string        `json:"nome" validate:"required,notblank,min=3,max=100"`
	BirthDate Date          `json:"data_nascimento" validate:"required"`
	Email     string        `json:"email,omitempty" validate:"omitempty,email"`
	Status    StudentStatus `json:"status" validate:"required,oneof=ativo inativo suspenso transferido"`
	ClassID   *int          `json:"turma_id,omitempty" validate:"omitempty,gt=0"`
}

type AccountInput struct {
	Name   string `json:"nome" validate:"required,notblank,min=3,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Role   Role   `json:"cargo" validate:"required,oneof=diretor coordenador secretario professor"`
	Active bool   `json:"ativo"`
}
