// Package validation enforces the field-level rules applied to a user
// record before it is persisted. Every rule runs independently so a single
// pass collects all violations instead of stopping at the first one.
package validation

import (
	"fmt"
	"regexp"

	"github.com/andreihelo/simple-login-api/internal/domain"
)

// Field names as they appear in request and response payloads. Violation
// maps are keyed by these values.
const (
	FieldUsername             = "username"
	FieldFirstName            = "first_name"
	FieldLastName             = "last_name"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
)

const (
	MinUsernameLength = 6
	MaxUsernameLength = 15
	MinPasswordLength = 6
)

// Violation messages. MsgUsernameFormat is carried over verbatim from the
// original API; the rest follow the same register.
const (
	MsgUsernameFormat    = "Username should include only downcase letters, numbers, underscore and hyphens"
	MsgUsernameTaken     = "Username is already taken"
	MsgConfirmationMatch = "Password and password confirmation doesn't match"
)

// usernamePattern is deliberately looser (3..15) than the length rule
// (6..15); the original applied both, so a short username collects a format
// miss or a length violation depending on which bound it breaks.
var usernamePattern = regexp.MustCompile(`^[a-z0-9_-]{3,15}$`)

// Violations maps a field name to the ordered list of messages collected
// for it. An empty map means the record is valid.
type Violations map[string][]string

// Add appends a message to the list for field.
func (v Violations) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Any reports whether at least one violation was collected.
func (v Violations) Any() bool {
	return len(v) > 0
}

// User validates the full field-set of a candidate record and returns every
// violation found. Username uniqueness is not checked here: it is enforced
// atomically by the store's unique index and surfaced through
// MsgUsernameTaken when the write reports a constraint violation.
func User(u domain.User) Violations {
	v := Violations{}

	if u.Username == "" {
		v.Add(FieldUsername, blank("Username"))
	} else {
		if !usernamePattern.MatchString(u.Username) {
			v.Add(FieldUsername, MsgUsernameFormat)
		}
		if n := len(u.Username); n < MinUsernameLength || n > MaxUsernameLength {
			v.Add(FieldUsername, between("Username", MinUsernameLength, MaxUsernameLength))
		}
	}

	if u.FirstName == "" {
		v.Add(FieldFirstName, blank("First name"))
	}
	if u.LastName == "" {
		v.Add(FieldLastName, blank("Last name"))
	}

	if u.Password == "" {
		v.Add(FieldPassword, blank("Password"))
	} else if len(u.Password) < MinPasswordLength {
		v.Add(FieldPassword, atLeast("Password", MinPasswordLength))
	}

	if u.PasswordConfirmation == "" {
		v.Add(FieldPasswordConfirmation, blank("Password confirmation"))
	} else if len(u.PasswordConfirmation) < MinPasswordLength {
		v.Add(FieldPasswordConfirmation, atLeast("Password confirmation", MinPasswordLength))
	}

	// Byte-exact comparison; case differences count as a mismatch.
	if u.Password != u.PasswordConfirmation {
		v.Add(FieldPassword, MsgConfirmationMatch)
	}

	return v
}

func blank(label string) string {
	return fmt.Sprintf("%s must not be blank", label)
}

func between(label string, min, max int) string {
	return fmt.Sprintf("%s must be between %d and %d characters long", label, min, max)
}

func atLeast(label string, min int) string {
	return fmt.Sprintf("%s must be at least %d characters long", label, min)
}
