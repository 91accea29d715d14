package domain

import "time"

// AuthorityUser is granted to every registered principal.
const AuthorityUser = "USER"

// Principal is a registered API user. Email is the login identifier.
type Principal struct {
	ID           int64
	Email        string
	PasswordHash string
	Authorities  []string
	CreatedAt    time.Time
}
