package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mbarros/escolactl/internal/editsession"
	"github.com/mbarros/escolactl/internal/models"
	"github.com/mbarros/escolactl/internal/validate"
)

func parseKind(s string) (models.EntityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "class", "classes", "turma", "turmas":
		return models.KindClasses, nil
	case "student", "students", "aluno", "alunos":
		return models.KindStudents, nil
	case "account", "accounts", "user", "users":
		return models.KindAccounts, nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// NewRecord opens a create form for the given kind, prompts for the
// fields and submits. Validation failures keep the form open so the
// operator can correct the input.
func (a *App) NewRecord(ctx context.Context, kind string) error {
	k, err := parseKind(kind)
	if err != nil {
		a.notify.Notify(LevelError, err.Error())
		return nil
	}
	if err := a.edit.StartCreate(k); err != nil {
		a.notify.Notify(LevelError, editErrMessage(err))
		return nil
	}
	defer a.edit.Close()
	return a.runForm(ctx, k)
}

// EditRecord loads the record first and only then opens the edit form,
// so a missing or stale id never leaves a half-open session.
func (a *App) EditRecord(ctx context.Context, kind, rawID string) error {
	k, err := parseKind(kind)
	if err != nil {
		a.notify.Notify(LevelError, err.Error())
		return nil
	}
	id, err := ParseID(rawID)
	if err != nil {
		a.notify.Notify(LevelError, "invalid record id")
		return nil
	}

	switch k {
	case models.KindClasses:
		if _, err := a.gw.GetClass(ctx, id); err != nil {
			a.report(ctx, err)
			return nil
		}
	case models.KindStudents:
		if _, err := a.gw.GetStudent(ctx, id); err != nil {
			a.report(ctx, err)
			return nil
		}
	case models.KindAccounts:
		if _, err := a.gw.GetAccount(ctx, id); err != nil {
			a.report(ctx, err)
			return nil
		}
	}

	if err := a.edit.StartEdit(k, id); err != nil {
		a.notify.Notify(LevelError, editErrMessage(err))
		return nil
	}
	defer a.edit.Close()
	return a.runForm(ctx, k)
}

func editErrMessage(err error) string {
	if err == editsession.ErrAlreadyOpen {
		return "another form is already open, close it first"
	}
	return err.Error()
}

// runForm drives the prompt/validate/submit loop for the open session.
// A failed submission offers a retry instead of discarding the input
// session outright.
func (a *App) runForm(ctx context.Context, kind models.EntityKind) error {
	for {
		var err error
		switch kind {
		case models.KindClasses:
			err = a.submitClass(ctx)
		case models.KindStudents:
			err = a.submitStudent(ctx)
		case models.KindAccounts:
			err = a.submitAccount(ctx)
		}
		if err == nil {
			return nil
		}
		if err == errFormRejected {
			again, cerr := Confirm(a.reader, "Try again?", a.out)
			if cerr != nil {
				return cerr
			}
			if again {
				continue
			}
			a.notify.Notify(LevelInfo, "discarded")
			return nil
		}
		return err
	}
}

// errFormRejected marks a recoverable form failure (local validation or
// a service rejection) inside runForm.
var errFormRejected = fmt.Errorf("form rejected")

func (a *App) submitClass(ctx context.Context) error {
	var current models.ClassGroup
	if id, ok := a.edit.EditingID(); ok {
		if cg, found := a.cache.ClassByID(id); found {
			current = cg
		}
	}

	in, err := a.promptClassInput(current)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		a.notify.Notify(LevelError, err.Error())
		return errFormRejected
	}

	if id, ok := a.edit.EditingID(); ok {
		if _, err := a.gw.UpdateClass(ctx, id, in); err != nil {
			a.report(ctx, err)
			return errFormRejected
		}
		a.notify.Notify(LevelSuccess, "class updated")
	} else {
		if _, err := a.gw.CreateClass(ctx, in); err != nil {
			a.report(ctx, err)
			return errFormRejected
		}
		a.notify.Notify(LevelSuccess, "class created")
	}
	return a.reload(ctx, models.KindClasses)
}

func (a *App) promptClassInput(current models.ClassGroup) (models.ClassInput, error) {
	var in models.ClassInput

	name, err := ReadDefault(a.reader, "Name", current.Name, a.out)
	if err != nil {
		return in, err
	}
	desc, err := ReadDefault(a.reader, "Description", current.Description, a.out)
	if err != nil {
		return in, err
	}
	capacity, err := readDefaultInt(a.reader, "Capacity", current.Capacity, a.out)
	if err != nil {
		return in, err
	}
	year, err := readDefaultInt(a.reader, "Academic year", current.AcademicYear, a.out)
	if err != nil {
		return in, err
	}
	period, err := ReadDefault(a.reader, "Period (manha/tarde/noite/integral)", string(current.Period), a.out)
	if err != nil {
		return in, err
	}

	in = models.ClassInput{
		Name:         name,
		Description:  desc,
		Capacity:     capacity,
		AcademicYear: year,
		Period:       models.Period(strings.ToLower(period)),
	}
	return in, nil
}

func (a *App) submitStudent(ctx context.Context) error {
	var current models.Student
	editID, editing := a.edit.EditingID()
	if editing {
		s, err := a.gw.GetStudent(ctx, editID)
		if err != nil {
			a.report(ctx, err)
			return errFormRejected
		}
		current = s
	}

	in, err := a.promptStudentInput(current)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		a.notify.Notify(LevelError, err.Error())
		return errFormRejected
	}

	if editing {
		if _, err := a.gw.UpdateStudent(ctx, editID, in); err != nil {
			a.report(ctx, err)
			return errFormRejected
		}
		a.notify.Notify(LevelSuccess, "student updated")
	} else {
		if _, err := a.gw.CreateStudent(ctx, in); err != nil {
			a.report(ctx, err)
			return errFormRejected
		}
		a.notify.Notify(LevelSuccess, "student created")
	}
	if err := a.reload(ctx, models.KindStudents); err != nil {
		return err
	}
	// class rosters change together with student assignments
	return a.reload(ctx, models.KindClasses)
}

func (a *App) promptStudentInput(current models.Student) (models.StudentInput, error) {
	var in models.StudentInput

	name, err := ReadDefault(a.reader, "Name", current.Name, a.out)
	if err != nil {
		return in, err
	}
	birthRaw, err := ReadDefault(a.reader, "Birth date (YYYY-MM-DD)", current.BirthDate.String(), a.out)
	if err != nil {
		return in, err
	}
	birth, err := models.ParseDate(birthRaw)
	if err != nil {
		a.notify.Notify(LevelError, "birth date must look like 2015-03-20")
	}
	email, err := ReadDefault(a.reader, "Email", current.Email, a.out)
	if err != nil {
		return in, err
	}

	status := current.Status
	if status == "" {
		status = models.StatusActive
	}
	statusRaw, err := ReadDefault(a.reader, "Status (ativo/inativo/suspenso/transferido)", string(status), a.out)
	if err != nil {
		return in, err
	}

	if options := a.view.ClassOptions(); len(options) > 0 {
		fmt.Fprintln(a.out, "Classes:")
		for _, opt := range options {
			fmt.Fprintf(a.out, "  %d  %s\n", opt.ID, opt.Name)
		}
	}
	currentClass := ""
	if current.ClassID != nil {
		currentClass = strconv.Itoa(*current.ClassID)
	}
	classRaw, err := ReadDefault(a.reader, "Class id (blank for none)", currentClass, a.out)
	if err != nil {
		return in, err
	}
	var classID *int
	if classRaw != "" {
		id, err := ParseID(classRaw)
		if err != nil {
			a.notify.Notify(LevelError, "invalid class id")
		} else {
			classID = &id
		}
	}

	in = models.StudentInput{
		Name:      name,
		BirthDate: birth,
		Email:     email,
		Status:    models.StudentStatus(strings.ToLower(statusRaw)),
		ClassID:   classID,
	}
	return in, nil
}

func (a *App) submitAccount(ctx context.Context) error {
	var current models.Account
	editID, editing := a.edit.EditingID()
	if editing {
		acc, err := a.gw.GetAccount(ctx, editID)
		if err != nil {
			a.report(ctx, err)
			return errFormRejected
		}
		current = acc
	}

	in, err := a.promptAccountInput(current, editing)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		a.notify.Notify(LevelError, err.Error())
		return errFormRejected
	}

	if editing {
		if _, err := a.gw.UpdateAccount(ctx, editID, in); err != nil {
			a.report(ctx, err)
			return errFormRejected
		}
		a.notify.Notify(LevelSuccess, "account updated")
	} else {
		if _, err := a.gw.CreateAccount(ctx, in); err != nil {
			a.report(ctx, err)
			return errFormRejected
		}
		a.notify.Notify(LevelSuccess, "account created")
	}
	return a.reload(ctx, models.KindAccounts)
}

func (a *App) promptAccountInput(current models.Account, editing bool) (models.AccountInput, error) {
	var in models.AccountInput

	name, err := ReadDefault(a.reader, "Name", current.Name, a.out)
	if err != nil {
		return in, err
	}
	email, err := ReadDefault(a.reader, "Email", current.Email, a.out)
	if err != nil {
		return in, err
	}
	role, err := ReadDefault(a.reader, "Role (diretor/coordenador/secretario/professor)", string(current.Role), a.out)
	if err != nil {
		return in, err
	}

	active := true
	if editing {
		active, err = Confirm(a.reader, "Active?", a.out)
		if err != nil {
			return in, err
		}
	}

	in = models.AccountInput{
		Name:   name,
		Email:  email,
		Role:   models.Role(strings.ToLower(role)),
		Active: active,
	}
	return in, nil
}

// Delete removes a record after confirmation. For students the wording
// follows the record's current status: deleting an active student only
// deactivates it, deleting an inactive one removes it for good.
func (a *App) Delete(ctx context.Context, kind, rawID string) error {
	k, err := parseKind(kind)
	if err != nil {
		a.notify.Notify(LevelError, err.Error())
		return nil
	}
	id, err := ParseID(rawID)
	if err != nil {
		a.notify.Notify(LevelError, "invalid record id")
		return nil
	}

	switch k {
	case models.KindStudents:
		return a.deleteStudent(ctx, id)
	case models.KindClasses:
		ok, err := Confirm(a.reader, fmt.Sprintf("Delete class %d?", id), a.out)
		if err != nil || !ok {
			return err
		}
		msg, err := a.gw.DeleteClass(ctx, id)
		if err != nil {
			a.report(ctx, err)
			return nil
		}
		a.notify.Notify(LevelSuccess, msg.Message)
		return a.reload(ctx, models.KindClasses)
	case models.KindAccounts:
		ok, err := Confirm(a.reader, fmt.Sprintf("Delete account %d?", id), a.out)
		if err != nil || !ok {
			return err
		}
		msg, err := a.gw.DeleteAccount(ctx, id)
		if err != nil {
			a.report(ctx, err)
			return nil
		}
		a.notify.Notify(LevelSuccess, msg.Message)
		return a.reload(ctx, models.KindAccounts)
	}
	return nil
}

func (a *App) deleteStudent(ctx context.Context, id int) error {
	s, err := a.gw.GetStudent(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return nil
	}

	prompt := fmt.Sprintf("Student %q is inactive and will be permanently removed. Continue?", s.Name)
	if s.Status == models.StatusActive {
		prompt = fmt.Sprintf("Student %q is active and will be marked inactive. Continue?", s.Name)
	}
	ok, err := Confirm(a.reader, prompt, a.out)
	if err != nil || !ok {
		return err
	}

	msg, err := a.gw.DeleteStudent(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return nil
	}
	a.notify.Notify(LevelSuccess, msg.Message)
	if err := a.reload(ctx, models.KindStudents); err != nil {
		return err
	}
	return a.reload(ctx, models.KindClasses)
}

// readDefaultInt keeps asking until the answer is numeric or blank, so a
// typo gets named immediately instead of surfacing as a later validation
// message on an empty field.
func readDefaultInt(reader *bufio.Reader, prompt string, current int, w io.Writer) (int, error) {
	shown := ""
	if current != 0 {
		shown = strconv.Itoa(current)
	}
	for {
		raw, err := ReadDefault(reader, prompt, shown, w)
		if err != nil {
			return 0, err
		}
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintf(w, "%q is not a number\n", raw)
			continue
		}
		return n, nil
	}
}
