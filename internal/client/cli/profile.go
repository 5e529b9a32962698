package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/campuskit/presence/internal/client/models"
)

// Profile updates the current profile. Empty answers leave fields unchanged;
// a picture path, when given, is uploaded as the profile picture.
func (a *App) Profile(ctx context.Context) error {
	update := models.ProfileUpdate{}

	name, err := getSimpleText(a.reader, "Name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if name != "" {
		update.Name = &name
	}

	email, err := getSimpleText(a.reader, "Email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if email != "" {
		update.Email = &email
	}

	phone, err := getSimpleText(a.reader, "Phone (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if phone != "" {
		update.Phone = &phone
	}

	picturePath, err := getSimpleText(a.reader, "Profile picture path (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if picturePath != "" {
		data, err := os.ReadFile(picturePath)
		if err != nil {
			printlnFn("Error:", err.Error())
			return err
		}
		update.Picture = &models.CapturedImage{Name: filepath.Base(picturePath), Data: data}
	}

	user, err := a.apiClient.UpdateProfile(ctx, update)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	a.userName = user.Email
	printlnFn(fmt.Sprintf("Profile updated: %s <%s>", user.Name, user.Email))
	return nil
}
