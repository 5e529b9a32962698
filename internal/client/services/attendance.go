package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuskit/presence/internal/client/api"
	"github.com/campuskit/presence/internal/client/camera"
	"github.com/campuskit/presence/internal/client/models"
	"github.com/campuskit/presence/internal/logging"
)

var (
	ErrNoSubjectSelected = errors.New("no subject selected")
	ErrNoActiveWindow    = errors.New("no active attendance window")
	ErrSubjectNotInBatch = errors.New("subject does not belong to your batch")
	ErrNoBatch           = errors.New("current user has no batch")
)

// AttendanceService orchestrates the user-facing sequence: select a subject,
// optionally report location, check the window, capture, submit. It is the
// only component holding cross-cutting state (profile, subjects, selection,
// current window); the executor and the capture controller stay independent.
type AttendanceService interface {
	// Refresh loads the profile and the subject list for the caller's batch.
	Refresh(ctx context.Context) error
	Subjects() []models.Subject
	SelectSubject(id int64) error
	Selected() *models.Subject

	// CheckWindow fetches the current window for the selected subject. On any
	// failure the previously held window is cleared so stale "active" state
	// can never be acted upon.
	CheckWindow(ctx context.Context) (*models.AttendanceWindow, error)
	Window() *models.AttendanceWindow
	CanMark() bool

	// MarkAttendance opens the capture flow. It is a guarded no-op error
	// unless an active window is currently held.
	MarkAttendance(ctx context.Context) error
	Capture() (*models.CapturedImage, error)
	RetryCapture(ctx context.Context) error
	CancelCapture()
	CaptureState() (camera.State, string)

	// Submit sends the image against the window id held since check time.
	// On success the capture flow closes; on failure it stays open so the
	// user can retry without re-acquiring the camera.
	Submit(ctx context.Context, img *models.CapturedImage) (*models.AttendanceResult, error)

	// ReportLocation is an independent side action; its failure does not
	// block the rest of the workflow.
	ReportLocation(ctx context.Context, latitude, longitude float64) error
}

type attendanceService struct {
	api    api.API
	camera *camera.Controller
	log    logging.Logger

	me       *models.User
	subjects []models.Subject
	selected *models.Subject
	window   *models.AttendanceWindow
}

func NewAttendanceService(a api.API, cam *camera.Controller, log logging.Logger) AttendanceService {
	return &attendanceService{api: a, camera: cam, log: log}
}

// Refresh fetches the profile and subjects, keeping only subjects of the
// caller's batch. A user without a batch sees every subject (privileged
// callers have no batch of their own).
func (s *attendanceService) Refresh(ctx context.Context) error {
	me, err := s.api.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	subjects, err := s.api.Subjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}

	s.me = me
	if me.Batch != nil {
		mine := make([]models.Subject, 0, len(subjects))
		for _, subj := range subjects {
			if subj.Batch == me.Batch.ID {
				mine = append(mine, subj)
			}
		}
		subjects = mine
	}
	s.subjects = subjects

	// Selection survives a refresh only if the subject is still visible.
	if s.selected != nil {
		id := s.selected.ID
		s.selected = nil
		_ = s.SelectSubject(id)
	}
	return nil
}

func (s *attendanceService) Subjects() []models.Subject {
	return s.subjects
}

func (s *attendanceService) SelectSubject(id int64) error {
	for i := range s.subjects {
		if s.subjects[i].ID == id {
			s.selected = &s.subjects[i]
			return nil
		}
	}
	return ErrSubjectNotInBatch
}

func (s *attendanceService) Selected() *models.Subject {
	return s.selected
}

func (s *attendanceService) CheckWindow(ctx context.Context) (*models.AttendanceWindow, error) {
	if s.selected == nil {
		return nil, ErrNoSubjectSelected
	}
	if s.me == nil || s.me.Batch == nil {
		return nil, ErrNoBatch
	}

	w, err := s.api.Window(ctx, s.me.Batch.ID, s.selected.ID)
	if err != nil {
		s.window = nil
		return nil, fmt.Errorf("window check failed: %w", err)
	}
	if w == nil {
		s.window = nil
		return nil, nil
	}

	s.window = w
	s.log.Info(ctx, "window checked", "window", w.ID, "active", w.IsActive, "duration", w.Duration)
	return w, nil
}

func (s *attendanceService) Window() *models.AttendanceWindow {
	return s.window
}

func (s *attendanceService) CanMark() bool {
	return s.window != nil && s.window.IsActive
}

func (s *attendanceService) MarkAttendance(ctx context.Context) error {
	if !s.CanMark() {
		return ErrNoActiveWindow
	}
	return s.camera.Open(ctx)
}

func (s *attendanceService) Capture() (*models.CapturedImage, error) {
	return s.camera.Capture()
}

func (s *attendanceService) RetryCapture(ctx context.Context) error {
	return s.camera.Retry(ctx)
}

func (s *attendanceService) CancelCapture() {
	s.camera.Close()
}

func (s *attendanceService) CaptureState() (camera.State, string) {
	return s.camera.State()
}

// Submit posts against the window id held since check time, even if the
// window's active status changed meanwhile; the server is the authority on
// validity at submit time.
func (s *attendanceService) Submit(ctx context.Context, img *models.CapturedImage) (*models.AttendanceResult, error) {
	if s.window == nil {
		return nil, ErrNoActiveWindow
	}

	s.camera.SetUploading(true)
	result, err := s.api.MarkAttendance(ctx, s.window.ID, img, 0)
	if err != nil {
		// Keep the capture session open: the user retries without
		// re-acquiring the camera.
		s.camera.SetUploading(false)
		return nil, fmt.Errorf("attendance submission failed: %w", err)
	}

	s.camera.Close()
	s.log.Info(ctx, "attendance marked", "window", s.window.ID)
	return result, nil
}

func (s *attendanceService) ReportLocation(ctx context.Context, latitude, longitude float64) error {
	if err := s.api.UpdateLocation(ctx, latitude, longitude); err != nil {
		return fmt.Errorf("location update failed: %w", err)
	}
	return nil
}
