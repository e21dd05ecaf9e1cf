package domain

import "time"

// User is the single account record managed by the service. Token is nil
// while the user is signed out; it holds an opaque session identifier once
// signin has issued one. Passwords are stored as plain strings to keep the
// original API behavior intact, including byte-exact credential matching.
type User struct {
	ID                   int64
	Username             string
	FirstName            string
	LastName             string
	Password             string
	PasswordConfirmation string
	Token                *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
