package models

// BatchRef is the batch membership embedded in a user profile.
type BatchRef struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

// User is the remote user profile. IsPrivileged mirrors the server's
// "is_staff" flag and gates staff operations (window upsert, marking
// attendance on behalf of a student).
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	IsPrivileged   bool      `json:"is_staff"`
	Batch          *BatchRef `json:"batch,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
}

// ProfileUpdate carries the multipart fields of a profile PATCH. Nil pointers
// mean "leave unchanged"; Picture, when set, is uploaded as a file part.
type ProfileUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Picture *CapturedImage
}
