package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mbarros/escolactl/internal/cache"
	"github.com/mbarros/escolactl/internal/config"
	"github.com/mbarros/escolactl/internal/editsession"
	"github.com/mbarros/escolactl/internal/gateway"
	"github.com/mbarros/escolactl/internal/logging"
	"github.com/mbarros/escolactl/internal/models"
	"github.com/mbarros/escolactl/internal/session"
	"github.com/mbarros/escolactl/internal/view"
)

// Mode tracks server reachability as seen by the health watcher.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Gateway is the remote surface the app depends on. *gateway.Client
// satisfies it; tests provide a fake.
type Gateway interface {
	Login(ctx context.Context, email, password string) (gateway.TokenResponse, error)
	Register(ctx context.Context, in models.RegisterInput) (gateway.Message, error)
	Me(ctx context.Context) (models.Profile, error)
	Health(ctx context.Context) error

	ListClasses(ctx context.Context) ([]models.ClassGroup, error)
	GetClass(ctx context.Context, id int) (models.ClassGroup, error)
	CreateClass(ctx context.Context, in models.ClassInput) (models.ClassGroup, error)
	UpdateClass(ctx context.Context, id int, in models.ClassInput) (models.ClassGroup, error)
	DeleteClass(ctx context.Context, id int) (gateway.Message, error)

	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id int) (models.Student, error)
	CreateStudent(ctx context.Context, in models.StudentInput) (models.Student, error)
	UpdateStudent(ctx context.Context, id int, in models.StudentInput) (models.Student, error)
	DeleteStudent(ctx context.Context, id int) (gateway.Message, error)

	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetAccount(ctx context.Context, id int) (models.Account, error)
	CreateAccount(ctx context.Context, in models.AccountInput) (models.Account, error)
	UpdateAccount(ctx context.Context, id int, in models.AccountInput) (models.Account, error)
	DeleteAccount(ctx context.Context, id int) (gateway.Message, error)

	Statistics(ctx context.Context) (models.Statistics, error)
}

// App wires the client core together and exposes the operator actions the
// REPL dispatches to.
type App struct {
	cfg    *config.Config
	gw     Gateway
	sess   *session.Store
	cache  *cache.Cache
	view   *view.Synchronizer
	edit   *editsession.Session
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
	notify Notifier

	mu          sync.Mutex
	stats       models.Statistics
	statsLoaded bool
	mode        Mode
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	sess := session.NewStore(cfg.TokenFile)
	gw := gateway.New(cfg.ServerBaseURL, cfg.RequestTimeout, sess, log)
	return newApp(cfg, gw, sess, log, os.Stdin, os.Stdout)
}

// newApp is the dependency-injected constructor used by tests.
func newApp(cfg *config.Config, gw Gateway, sess *session.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	c := cache.New()
	syncer := view.NewSynchronizer(c)
	c.SetOnChange(syncer.Refresh)

	return &App{
		cfg:    cfg,
		gw:     gw,
		sess:   sess,
		cache:  c,
		view:   syncer,
		edit:   editsession.New(),
		reader: bufio.NewReader(in),
		out:    out,
		log:    log,
		notify: writerNotifier{w: out},
	}
}

// SetNotifier replaces the notification hook. The presentation layer may
// install its own toast-style dispatcher.
func (a *App) SetNotifier(n Notifier) {
	a.notify = n
}

func (a *App) Run(ctx context.Context) {
	a.notify.Notify(LevelInfo, "Welcome to escolactl (type 'help' for commands)")

	if a.isLoggedIn() {
		// remembered credential: resume the session without a login prompt
		if err := a.resume(ctx); err != nil {
			a.report(ctx, err)
		}
	}

	go a.startHealthWatcher(ctx, a.cfg.HealthCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.sess.Authenticated()
}

func (a *App) status() string {
	s := ""
	if p, ok := a.cache.Profile(); ok {
		s = p.Name
	}
	a.mu.Lock()
	mode := a.mode
	a.mu.Unlock()
	if mode != "" {
		if s != "" {
			s += " "
		}
		s += string(mode)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

// resume reloads the profile and the collections for an already-stored
// credential, e.g. after a restart with "stay signed in".
func (a *App) resume(ctx context.Context) error {
	profile, err := a.gw.Me(ctx)
	if err != nil {
		return err
	}
	a.cache.SetProfile(profile)
	a.loadAll(ctx)
	return nil
}

// loadAll fans out the four initial fetches and joins them. A failed fetch
// is logged and skipped; the others still populate the cache.
func (a *App) loadAll(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		if list, err := a.gw.ListClasses(ctx); err != nil {
			a.log.Warn(ctx, "initial load failed", "kind", models.KindClasses, "err", err)
		} else {
			a.cache.SetClasses(list)
		}
	}()
	go func() {
		defer wg.Done()
		if list, err := a.gw.ListStudents(ctx); err != nil {
			a.log.Warn(ctx, "initial load failed", "kind", models.KindStudents, "err", err)
		} else {
			a.cache.SetStudents(list)
		}
	}()
	go func() {
		defer wg.Done()
		if list, err := a.gw.ListAccounts(ctx); err != nil {
			a.log.Warn(ctx, "initial load failed", "kind", models.KindAccounts, "err", err)
		} else {
			a.cache.SetAccounts(list)
		}
	}()
	go func() {
		defer wg.Done()
		a.refreshStats(ctx)
	}()

	wg.Wait()
}

// refreshStats re-fetches the server aggregate. Failures are logged and
// skipped; the derived counters still work without it.
func (a *App) refreshStats(ctx context.Context) {
	stats, err := a.gw.Statistics(ctx)
	if err != nil {
		a.log.Warn(ctx, "statistics fetch failed", "err", err)
		return
	}
	a.mu.Lock()
	a.stats, a.statsLoaded = stats, true
	a.mu.Unlock()
}

// reload refreshes one collection after a mutation: invalidate first so a
// failed re-fetch leaves the kind marked "not loaded" rather than stale.
// The server aggregate is re-fetched too, since every mutation moves it.
func (a *App) reload(ctx context.Context, kind models.EntityKind) error {
	a.cache.Invalidate(kind)
	switch kind {
	case models.KindClasses:
		list, err := a.gw.ListClasses(ctx)
		if err != nil {
			return err
		}
		a.cache.SetClasses(list)
	case models.KindStudents:
		list, err := a.gw.ListStudents(ctx)
		if err != nil {
			return err
		}
		a.cache.SetStudents(list)
	case models.KindAccounts:
		list, err := a.gw.ListAccounts(ctx)
		if err != nil {
			return err
		}
		a.cache.SetAccounts(list)
	}
	a.refreshStats(ctx)
	return nil
}

// ensureLoaded fetches a collection on first use so list commands work
// before an explicit refresh.
func (a *App) ensureLoaded(ctx context.Context, kind models.EntityKind) error {
	if a.cache.Loaded(kind) {
		return nil
	}
	return a.reload(ctx, kind)
}

// Refresh re-runs the full initial load.
func (a *App) Refresh(ctx context.Context) error {
	a.loadAll(ctx)
	a.notify.Notify(LevelSuccess, "data refreshed")
	return nil
}

// report translates an action error into a notification. A 401 already
// cleared the credential inside the gateway; here the cached data and any
// open form are dropped so the client is fully logged out.
func (a *App) report(ctx context.Context, err error) {
	a.log.Error(ctx, "action failed", "err", err)
	switch {
	case errors.Is(err, gateway.ErrUnauthenticated):
		a.cache.Reset()
		a.edit.Close()
		// Status zero means the gateway refused locally for lack of a
		// credential; the server never rejected anything.
		var gerr *gateway.Error
		if errors.As(err, &gerr) && gerr.Status == 0 {
			a.notify.Notify(LevelError, "not logged in, please login first")
		} else {
			a.notify.Notify(LevelError, "session expired, please login again")
		}
	case errors.Is(err, gateway.ErrUnreachable):
		a.notify.Notify(LevelError, "server unreachable, try again later")
	default:
		var gerr *gateway.Error
		if errors.As(err, &gerr) && gerr.Detail != "" {
			a.notify.Notify(LevelError, gerr.Detail)
			return
		}
		a.notify.Notify(LevelError, err.Error())
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// startHealthWatcher probes the service until ctx is done, flipping the
// online/offline indicator shown in the prompt.
func (a *App) startHealthWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.gw.Health(probeCtx)
			cancel()
			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}
		case <-ctx.Done():
			return
		}
	}
}
