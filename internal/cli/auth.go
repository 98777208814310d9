package cli

import (
	"context"
	"errors"

	"github.com/mbarros/escolactl/internal/gateway"
	"github.com/mbarros/escolactl/internal/models"
	"github.com/mbarros/escolactl/internal/session"
	"github.com/mbarros/escolactl/internal/validate"
)

// Login prompts for credentials, validates them locally, authenticates
// against the service and runs the initial data load. The credential is
// stored session-scoped unless the operator asks to stay signed in.
func (a *App) Login(ctx context.Context) error {
	email, err := ReadLine(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := ReadPassword(a.out)
	if err != nil {
		return err
	}
	remember, err := Confirm(a.reader, "Stay signed in?", a.out)
	if err != nil {
		return err
	}

	in := models.LoginInput{Email: email, Password: password, Remember: remember}
	if err := validate.Struct(in); err != nil {
		a.notify.Notify(LevelError, err.Error())
		return nil
	}

	tok, err := a.gw.Login(ctx, in.Email, in.Password)
	if err != nil {
		a.reportLogin(ctx, err)
		return nil
	}

	persistence := session.ScopeSession
	if remember {
		persistence = session.ScopeRemembered
	}
	cred := session.Credential{Token: tok.AccessToken, TokenType: tok.TokenType, Persistence: persistence}
	if err := a.sess.Save(cred); err != nil {
		return err
	}

	profile, err := a.gw.Me(ctx)
	if err != nil {
		a.report(ctx, err)
		return nil
	}
	a.cache.SetProfile(profile)
	a.loadAll(ctx)

	a.notify.Notify(LevelSuccess, "Logged in as "+profile.Name)
	return nil
}

// reportLogin maps gateway failures onto the login-specific wording:
// a 401 here means wrong credentials, not an expired session.
func (a *App) reportLogin(ctx context.Context, err error) {
	switch {
	case errors.Is(err, gateway.ErrUnauthenticated):
		a.notify.Notify(LevelError, "invalid email or password")
	case errors.Is(err, gateway.ErrUnreachable):
		a.notify.Notify(LevelError, "server unreachable, try again later")
	default:
		a.report(ctx, err)
		return
	}
	a.log.Warn(ctx, "login failed", "err", err)
}

// Register creates an operator account. New registrations default to the
// secretary role and need approval server-side before they can sign in.
func (a *App) Register(ctx context.Context) error {
	name, err := ReadLine(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := ReadLine(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := ReadPassword(a.out)
	if err != nil {
		return err
	}
	confirm, err := ReadLine(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}

	in := models.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Confirm:  confirm,
		Role:     models.RoleSecretary,
	}
	if err := validate.Struct(in); err != nil {
		a.notify.Notify(LevelError, err.Error())
		return nil
	}

	if _, err := a.gw.Register(ctx, in); err != nil {
		a.report(ctx, err)
		return nil
	}
	a.notify.Notify(LevelSuccess, "Registered. An administrator must approve the account before login.")
	return nil
}

// Logout clears the credential from both storage scopes and drops all
// cached data.
func (a *App) Logout(ctx context.Context) error {
	a.sess.Clear()
	a.cache.Reset()
	a.edit.Close()
	a.mu.Lock()
	a.stats, a.statsLoaded = models.Statistics{}, false
	a.mu.Unlock()
	a.notify.Notify(LevelSuccess, "Logged out")
	return nil
}
