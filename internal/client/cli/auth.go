package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/psychicstar/internal/common"
)

// Signup prompts for email, name and password and creates an unverified
// account. The password is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	email, err := a.readLine("Enter email")
	if err != nil {
		return err
	}
	name, err := a.readLine(fmt.Sprintf("Enter your name (empty for %q)", common.DefaultUserName))
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	a.touch()

	if err := a.ctrl.Signup(ctx, email, password, name); err != nil {
		return err
	}
	a.printNextStep()
	return nil
}

// Login prompts for credentials. An unverified account moves to the
// verification step with a fresh code.
func (a *App) Login(ctx context.Context) error {
	email, err := a.readLine("Enter email")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	a.touch()

	err = a.ctrl.Login(ctx, email, password)
	a.printNextStep()
	return err
}

func (a *App) Verify(ctx context.Context, args []string) error {
	code := strings.Join(args, "")
	if code == "" {
		var err error
		if code, err = a.readLine("Enter the 6-digit code"); err != nil {
			return err
		}
	}

	if err := a.ctrl.Verify(ctx, code); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Your email is verified.")
	a.printNextStep()
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	if err := a.ctrl.ResendCode(ctx); err != nil {
		return err
	}
	a.printNextStep()
	return nil
}

func (a *App) Cancel(context.Context) error {
	return a.ctrl.CancelVerification()
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.ctrl.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "You have left the Collective. Until next time.")
	return nil
}
