package models

type University struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Address string `json:"address,omitempty"`
}

type Course struct {
	ID         int64  `json:"id"`
	University int64  `json:"university"`
	Code       string `json:"code,omitempty"`
}

type Batch struct {
	ID        int64  `json:"id"`
	Course    int64  `json:"course"`
	Code      string `json:"code,omitempty"`
	StartYear int    `json:"start_year,omitempty"`
	EndYear   int    `json:"end_year,omitempty"`
}

type Subject struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Batch   int64  `json:"batch"`
	Faculty int64  `json:"faculty,omitempty"`
}

// NewUser is the payload for creating a user (admin only).
type NewUser struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Batch    int64  `json:"batch,omitempty"`
}
