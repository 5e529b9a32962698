package cli

import (
	"context"
	"fmt"
)

// Listing commands over the catalog endpoints. Errors are printed and
// returned; nothing here aborts the REPL.

func (a *App) Subjects(ctx context.Context) error {
	if err := a.attendance.Refresh(ctx); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	subjects := a.attendance.Subjects()
	if len(subjects) == 0 {
		printlnFn("No subjects")
		return nil
	}
	for _, s := range subjects {
		printlnFn(fmt.Sprintf("  %d: %s (%s) batch=%d", s.ID, s.Name, s.Code, s.Batch))
	}
	return nil
}

func (a *App) Batches(ctx context.Context) error {
	batches, err := a.apiClient.Batches(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, b := range batches {
		printlnFn(fmt.Sprintf("  %d: %s (%d-%d)", b.ID, b.Code, b.StartYear, b.EndYear))
	}
	return nil
}

func (a *App) Students(ctx context.Context) error {
	students, err := a.apiClient.Students(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, s := range students {
		printlnFn(fmt.Sprintf("  %d: %s <%s>", s.ID, s.Name, s.Email))
	}
	return nil
}

func (a *App) Courses(ctx context.Context) error {
	courses, err := a.apiClient.Courses(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, c := range courses {
		printlnFn(fmt.Sprintf("  %d: %s", c.ID, c.Code))
	}
	return nil
}

func (a *App) Universities(ctx context.Context) error {
	universities, err := a.apiClient.Universities(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, u := range universities {
		printlnFn(fmt.Sprintf("  %d: %s (%s)", u.ID, u.Name, u.Code))
	}
	return nil
}
