package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/campuskit/presence/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for an email and password and authenticates.
// On success the session is persisted and the prompt picks up the user.
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.userName = user.Email
	if err := a.attendance.Refresh(ctx); err != nil {
		// Profile loaded lazily later; login itself succeeded.
		a.log.Warn(ctx, "failed to preload subjects", "error", err)
	}

	printlnFn("Logged in as", user.Email)
	return nil
}

// Logout clears the persisted session and the in-memory identity.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	a.userName = ""
	printlnFn("Logged out")
	return nil
}

// Me fetches and prints the current profile.
func (a *App) Me(ctx context.Context) error {
	user, err := a.auth.Me(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	role := "student"
	if user.IsPrivileged {
		role = "staff"
	}
	printlnFn(fmt.Sprintf("#%d %s <%s> [%s]", user.ID, user.Name, user.Email, role))
	if user.Batch != nil {
		printlnFn("Batch:", user.Batch.Code)
	}
	return nil
}
