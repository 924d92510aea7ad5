package domain

import "time"

// User represents an authenticated user of the application.
type User struct {
	ID                string
	GoogleID          string
	Email             string
	Name              string
	ProfilePictureURL string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate validates the user
func (u *User) Validate() error {
	if u.GoogleID == "" {
		return NewInvalidInputError("google ID is required")
	}
	if u.Email == "" {
		return NewInvalidInputError("email is required")
	}
	return nil
}
