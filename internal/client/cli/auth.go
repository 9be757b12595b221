package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for name, email, password and role, creates the account
// and keeps the returned session.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := getSimpleText(a.reader, "Enter role (user or admin, empty for user)", a.out)
	if err != nil {
		return err
	}

	s, err := a.authService.Signup(ctx, name, email, password, role)
	if err != nil {
		return err
	}
	a.session = s
	fmt.Fprintf(a.out, "Signed up as %s (%s)\n", s.Email, s.Role)
	return nil
}

// Login prompts for credentials and keeps the returned session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.session = s
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", s.Email, s.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.loadSession(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI shows the profile behind the current token.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>, role %s, member since %s\n", u.Name, u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
	return nil
}
