package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/mbarros/escolactl/internal/models"
)

func (a *App) tabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

// Classes prints the class table with the derived occupancy column.
func (a *App) Classes(ctx context.Context) error {
	if err := a.ensureLoaded(ctx, models.KindClasses); err != nil {
		a.report(ctx, err)
		return nil
	}

	w := a.tabWriter()
	fmt.Fprintln(w, "ID\tNAME\tPERIOD\tYEAR\tCAPACITY\tENROLLED\tOCCUPANCY")
	for _, occ := range a.view.Summary().Occupancy {
		cg := occ.Class
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d%% (%s)\n",
			cg.ID, cg.Name, cg.Period.Label(), cg.AcademicYear,
			cg.Capacity, cg.EnrolledCount, occ.Percent, occ.Bucket)
	}
	return w.Flush()
}

// Students prints the student table through the current filter criteria.
func (a *App) Students(ctx context.Context) error {
	if err := a.ensureLoaded(ctx, models.KindStudents); err != nil {
		a.report(ctx, err)
		return nil
	}

	classNames := a.cache.ClassNames()
	rows := a.view.Rows()

	w := a.tabWriter()
	fmt.Fprintln(w, "ID\tNAME\tBIRTH\tCLASS\tSTATUS")
	for _, s := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			s.ID, s.Name, s.BirthDate, resolveClassName(s, classNames), s.Status.Label())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	criteria := a.view.Criteria()
	if criteria.Empty() {
		fmt.Fprintf(a.out, "%d student(s)\n", len(rows))
	} else {
		fmt.Fprintf(a.out, "%d student(s) matching the current filter\n", len(rows))
	}
	return nil
}

func resolveClassName(s models.Student, classNames map[int]string) string {
	if s.ClassID != nil {
		if name, ok := classNames[*s.ClassID]; ok {
			return name
		}
	}
	if s.ClassName != "" {
		return s.ClassName
	}
	return "Sem turma"
}

// Accounts prints the operator accounts table.
func (a *App) Accounts(ctx context.Context) error {
	if err := a.ensureLoaded(ctx, models.KindAccounts); err != nil {
		a.report(ctx, err)
		return nil
	}

	w := a.tabWriter()
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIVE\tCREATED")
	for _, acc := range a.cache.Accounts() {
		active := "no"
		if acc.Active {
			active = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			acc.ID, acc.Name, acc.Email, acc.Role.Label(), active,
			acc.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// Stats prints the locally derived counters plus the service aggregates
// when the statistics fetch succeeded.
func (a *App) Stats(ctx context.Context) error {
	sum := a.view.Summary()

	fmt.Fprintf(a.out, "Students: %d total, %d active\n", sum.TotalStudents, sum.ActiveStudents)
	fmt.Fprintf(a.out, "Classes:  %d\n", sum.TotalClasses)

	a.mu.Lock()
	stats, loaded := a.stats, a.statsLoaded
	a.mu.Unlock()
	if loaded {
		fmt.Fprintf(a.out, "Server:   %d students (%d active, %d inactive), %d classes (%d active), %d active accounts\n",
			stats.TotalStudents, stats.ActiveStudents, stats.InactiveStudents,
			stats.TotalClasses, stats.ActiveClasses, stats.ActiveAccounts)
		for _, pc := range stats.StudentsPerClass {
			fmt.Fprintf(a.out, "  %s: %s\n", pc.ClassName, strconv.Itoa(pc.Count))
		}
	}

	if len(sum.Occupancy) > 0 {
		w := a.tabWriter()
		fmt.Fprintln(w, "CLASS\tOCCUPANCY")
		for _, occ := range sum.Occupancy {
			fmt.Fprintf(w, "%s\t%d%% (%s)\n", occ.Class.Name, occ.Percent, occ.Bucket)
		}
		return w.Flush()
	}
	return nil
}

// Me prints the authenticated profile.
func (a *App) Me(ctx context.Context) error {
	p, ok := a.cache.Profile()
	if !ok {
		profile, err := a.gw.Me(ctx)
		if err != nil {
			a.report(ctx, err)
			return nil
		}
		a.cache.SetProfile(profile)
		p = profile
	}

	fmt.Fprintf(a.out, "[%s] %s <%s>\n", models.Initial(p.Name), p.Name, p.Email)
	fmt.Fprintf(a.out, "Role: %s\n", p.Role.Label())
	return nil
}
