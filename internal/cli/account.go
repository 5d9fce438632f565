package cli

import (
	"context"
	"errors"
	"os"

	"github.com/salespro-app/salespro/internal/common"
)

// Login authenticates against the local account. When the app runs inside
// Telegram the host identity already signed the user in and the command is a
// no-op.
func (a *App) Login(ctx context.Context) error {
	if _, ok := a.host.Identity(); ok {
		_, _ = printlnFn("Already signed in via Telegram as", a.profile.Name)
		return nil
	}

	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, username, password); err != nil {
		if errors.Is(err, common.ErrLocalDataNotAvailable) {
			_, _ = printlnFn("No local account found. Use register first.")
			return nil
		}
		return err
	}

	if a.profile.Name == "" {
		a.profile.Name = username
	}
	a.profile.IsAuthenticated = true
	a.syncer.Save(ctx, a.profile)
	_, _ = printlnFn("Signed in as", username)
	return nil
}

// Register creates (or replaces) the local account and signs the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, username, password); err != nil {
		return err
	}

	a.profile.Name = username
	a.profile.IsAuthenticated = true
	a.syncer.Save(ctx, a.profile)
	_, _ = printlnFn("Account created. Signed in as", username)
	return nil
}

// Logout resets local progress to a fresh default record. The remote copy is
// left untouched and will be re-merged on the next Telegram session.
func (a *App) Logout(ctx context.Context) error {
	a.profile = a.syncer.Logout(ctx)
	_, _ = printlnFn("Signed out. Local progress reset.")
	return nil
}
