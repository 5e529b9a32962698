package api

import (
	"fmt"

	"github.com/campuskit/presence/internal/common"
)

// Error is a terminal failure of a single API call: the HTTP status plus the
// message normalized from whatever shape the server put in the body.
//
// An empty message renders as a generic "request failed with status N".
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// Is maps a surviving 401 onto common.ErrUnauthorized so callers can use
// errors.Is without inspecting status codes.
func (e *Error) Is(target error) bool {
	return target == common.ErrUnauthorized && e.Status == 401
}
