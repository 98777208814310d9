package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mbarros/escolactl/internal/filter"
	"github.com/mbarros/escolactl/internal/models"
)

// Filter prompts for the three student criteria and applies them to the
// current view. Blank answers leave a dimension unconstrained.
func (a *App) Filter(ctx context.Context) error {
	if err := a.ensureLoaded(ctx, models.KindStudents); err != nil {
		a.report(ctx, err)
		return nil
	}

	options := a.view.ClassOptions()
	if len(options) > 0 {
		fmt.Fprintln(a.out, "Classes:")
		for _, opt := range options {
			fmt.Fprintf(a.out, "  %d  %s\n", opt.ID, opt.Name)
		}
	}

	var c filter.Criteria

	raw, err := ReadLine(a.reader, "Class id (blank for any)", a.out)
	if err != nil {
		return err
	}
	if raw != "" {
		id, err := ParseID(raw)
		if err != nil {
			a.notify.Notify(LevelError, "invalid class id")
			return nil
		}
		c.ClassID = &id
	}

	status, err := ReadLine(a.reader, "Status (ativo/inativo/suspenso/transferido, blank for any)", a.out)
	if err != nil {
		return err
	}
	if status != "" {
		st := models.StudentStatus(strings.ToLower(status))
		if !st.Valid() {
			a.notify.Notify(LevelError, "unknown status")
			return nil
		}
		c.Status = st
	}

	text, err := ReadLine(a.reader, "Search text (blank for none)", a.out)
	if err != nil {
		return err
	}
	c.FreeText = text

	a.view.SetCriteria(c)
	return a.Students(ctx)
}

// Search applies a free-text filter in one step, keeping the other
// criteria untouched.
func (a *App) Search(ctx context.Context, text string) error {
	if err := a.ensureLoaded(ctx, models.KindStudents); err != nil {
		a.report(ctx, err)
		return nil
	}

	c := a.view.Criteria()
	c.FreeText = strings.TrimSpace(text)
	a.view.SetCriteria(c)
	return a.Students(ctx)
}

// ClearFilter resets every criterion.
func (a *App) ClearFilter(ctx context.Context) error {
	a.view.SetCriteria(filter.Criteria{})
	a.notify.Notify(LevelInfo, "filter cleared")
	return nil
}
