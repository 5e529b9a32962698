package models

// AttendanceWindow is a server-defined time span during which attendance may
// be recorded for a batch+subject pair. It is fetched fresh on every check
// and never cached across workflow runs: a failed check clears it.
type AttendanceWindow struct {
	ID            int64 `json:"id"`
	IsActive      bool  `json:"is_active"`
	Duration      int   `json:"duration"`
	TargetBatch   int64 `json:"target_batch,omitempty"`
	TargetSubject int64 `json:"target_subject,omitempty"`
}

// WindowUpsert is the payload for creating or re-opening a window (privileged).
type WindowUpsert struct {
	TargetBatch   int64 `json:"target_batch"`
	TargetSubject int64 `json:"target_subject"`
	Duration      int   `json:"duration,omitempty"`
	IsActive      *bool `json:"is_active,omitempty"`
}

// AttendanceResult is the verification outcome returned by the record endpoint.
type AttendanceResult struct {
	ID       int64  `json:"id"`
	Status   string `json:"status,omitempty"`
	Verified bool   `json:"verified,omitempty"`
}

// CapturedImage is a single still frame captured from the device stream,
// already encoded. It is produced once per capture action and consumed
// exactly once by the submit call.
type CapturedImage struct {
	Name   string
	Data   []byte
	Width  int
	Height int
}
