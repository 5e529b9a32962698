// Package cli is the interactive terminal front end of the Presence client.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/campuskit/presence/internal/client/api"
	"github.com/campuskit/presence/internal/client/camera"
	"github.com/campuskit/presence/internal/client/config"
	"github.com/campuskit/presence/internal/client/services"
	"github.com/campuskit/presence/internal/client/session"
	"github.com/campuskit/presence/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config     *config.Config
	auth       services.AuthService
	attendance services.AttendanceService
	apiClient  api.API
	log        logging.Logger
	reader     *bufio.Reader
	userName   string
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := session.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewSQLiteStore(db)
	apiClient := api.New(c.ServerEndpointAddr, c.RequestTimeout, store, log)

	device := camera.NewExecDevice(c.CaptureCommand, log)
	controller := camera.NewController(device, log)

	return &App{
		config:     c,
		auth:       services.NewAuthService(apiClient, store),
		attendance: services.NewAttendanceService(apiClient, controller, log),
		apiClient:  apiClient,
		log:        log,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.attendance.CancelCapture()

	// A restored session keeps the prompt informative across restarts.
	if u := a.auth.CurrentUser(ctx); u != nil {
		a.userName = u.Email
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return "(not logged in)"
	}
	return "(" + a.userName + ")"
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}
