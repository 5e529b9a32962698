// Package models holds the client-side domain types: the persisted session,
// the user profile, the college catalog entities, and the attendance types.
package models

// Session is the persisted authentication state: the token pair issued at
// login plus a snapshot of the authenticated user. Tokens are opaque strings;
// the client never inspects them for expiry: an expired access token is
// discovered reactively via a rejected request.
type Session struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	User         *User  `json:"user"`
}
