package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/campuskit/presence/internal/client/camera"
)

// CheckWindow lets the user pick one of their subjects and queries the
// current attendance window for it.
func (a *App) CheckWindow(ctx context.Context) error {
	if err := a.attendance.Refresh(ctx); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	subjects := a.attendance.Subjects()
	if len(subjects) == 0 {
		printlnFn("No subjects available for your batch")
		return nil
	}

	for _, s := range subjects {
		printlnFn(fmt.Sprintf("  %d: %s (%s)", s.ID, s.Name, s.Code))
	}
	id, err := GetInt(a.reader, "Subject id", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if err := a.attendance.SelectSubject(id); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	w, err := a.attendance.CheckWindow(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if w == nil {
		printlnFn("No attendance window defined for this subject")
		return nil
	}
	if w.IsActive {
		printlnFn(fmt.Sprintf("Window %d is OPEN (%ds), type 'mark' to record attendance", w.ID, w.Duration))
	} else {
		printlnFn(fmt.Sprintf("Window %d is closed", w.ID))
	}
	return nil
}

// Mark drives the capture flow: open the camera, wait until it is genuinely
// frame-ready, let the user capture (or retry after a device error), submit
// the photo against the held window, and close the camera on success. A
// failed submit keeps the camera open so the user retries without
// re-acquiring it.
func (a *App) Mark(ctx context.Context) error {
	if !a.attendance.CanMark() {
		printlnFn("No active window held, run 'check' first")
		return nil
	}

	printlnFn("Starting camera...")
	if err := a.attendance.MarkAttendance(ctx); err != nil {
		return a.captureErrorPrompt(ctx, err)
	}

	return a.captureLoop(ctx)
}

func (a *App) captureErrorPrompt(ctx context.Context, cause error) error {
	printlnFn("Camera error:", cause.Error())
	answer, err := getSimpleText(a.reader, "Type 'retry' to try again, anything else to cancel", os.Stdout)
	if err != nil || !strings.EqualFold(answer, "retry") {
		a.attendance.CancelCapture()
		return cause
	}
	if err := a.attendance.RetryCapture(ctx); err != nil {
		return a.captureErrorPrompt(ctx, err)
	}
	return a.captureLoop(ctx)
}

func (a *App) captureLoop(ctx context.Context) error {
	for {
		if state, reason := a.attendance.CaptureState(); state != camera.Ready {
			printlnFn("Camera not ready:", reason)
			a.attendance.CancelCapture()
			return nil
		}

		answer, err := getSimpleText(a.reader, "Camera ready. Type 'capture' to take the photo, 'cancel' to abort", os.Stdout)
		if err != nil {
			a.attendance.CancelCapture()
			return err
		}

		switch strings.ToLower(answer) {
		case "cancel":
			a.attendance.CancelCapture()
			printlnFn("Capture cancelled")
			return nil

		case "capture", "c":
			img, err := a.attendance.Capture()
			if err != nil {
				printlnFn("Capture failed:", err.Error())
				continue
			}
			printlnFn(fmt.Sprintf("Captured %dx%d frame, submitting...", img.Width, img.Height))

			result, err := a.attendance.Submit(ctx, img)
			if err != nil {
				printlnFn("Submit failed:", err.Error())
				printlnFn("The camera is still open, you may capture again")
				continue
			}

			if result != nil && result.Status != "" {
				printlnFn("Attendance marked:", result.Status)
			} else {
				printlnFn("Attendance marked successfully")
			}
			return nil

		default:
			printlnFn("Unknown answer:", answer)
		}
	}
}

// Location prompts for coordinates and reports them. This is an independent
// side action; failures do not affect the window or capture state.
func (a *App) Location(ctx context.Context) error {
	latitude, err := GetFloat(a.reader, "Latitude", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	longitude, err := GetFloat(a.reader, "Longitude", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	if err := a.attendance.ReportLocation(ctx, latitude, longitude); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Location updated")
	return nil
}
