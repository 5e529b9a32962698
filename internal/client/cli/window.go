package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/campuskit/presence/internal/client/models"
)

// OpenWindow creates or re-opens an attendance window for a batch+subject
// pair. Server-side this is a privileged operation; unprivileged callers get
// the usual permission error back.
func (a *App) OpenWindow(ctx context.Context) error {
	batch, err := GetInt(a.reader, "Target batch id", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	subject, err := GetInt(a.reader, "Target subject id", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	duration, err := GetInt(a.reader, "Duration in seconds (0 for server default)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	active := true
	w, err := a.apiClient.UpsertWindow(ctx, models.WindowUpsert{
		TargetBatch:   batch,
		TargetSubject: subject,
		Duration:      int(duration),
		IsActive:      &active,
	})
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Window %d open for %ds", w.ID, w.Duration))
	return nil
}
