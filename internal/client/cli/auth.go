package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/knothost/siteapi/internal/client/api"
	"github.com/knothost/siteapi/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in")

func (a *App) Signup(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.api.Signup(ctx, api.SignupRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(password),
	})
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

// Login keeps the returned session token for later commands.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return a.report(err)
	}

	a.token = token
	a.email = email
	if a.store != nil {
		if err := a.store.Save(ctx, email, token); err != nil {
			fmt.Fprintf(a.out, "Warning: session not saved: %v\n", err)
		}
	}
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return errNotLoggedIn
	}

	p, err := a.api.Me(ctx, a.token)
	if err != nil {
		return a.report(err)
	}

	a.email = p.Email
	fmt.Fprintf(a.out, "%s %s <%s>\n", p.FirstName, p.LastName, p.Email)
	return nil
}

func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	msg, err := a.api.Forgot(ctx, email)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) CheckEmail(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	exists, err := a.api.CheckEmail(ctx, email)
	if err != nil {
		return a.report(err)
	}

	if exists {
		fmt.Fprintln(a.out, "Email is registered")
	} else {
		fmt.Fprintln(a.out, "Email is not registered")
	}
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Reset(ctx, email, string(password)); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Password updated")
	return nil
}

// Logout drops the session token locally. Tokens are not revoked server-side.
func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	a.email = ""
	if a.store != nil {
		if err := a.store.Clear(ctx); err != nil {
			return a.report(err)
		}
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
