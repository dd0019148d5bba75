package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userconsole/internal/services"
)

// defaultEmail is prefilled on the login prompt.
const defaultEmail = "eve.holt@reqres.in"

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. A rejected login is
// reported to the user and is not an error of the command. After a
// successful login the first page is shown.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, fmt.Sprintf("Enter email [%s]", defaultEmail), a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = defaultEmail
	}

	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	password := string(pw)

	if err := a.auth.Login(ctx, email, password); err != nil {
		a.logger.Info(ctx, "login unsuccessful", "email", email, "error", err)
		fmt.Fprintln(a.out, services.LoginMessage(err, password))
		return nil
	}

	a.userName = email
	fmt.Fprintln(a.out, "Login successful")
	return a.List(ctx)
}

// Logout drops the token. Cached users stay in the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
