package auth

import "errors"

// ErrUserNotFound is returned by FindByEmail when no account matches.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the persistence boundary for canteen accounts.
// Service reads and writes users only through it.
type UserRepository interface {
	Save(user *User) error
	FindByEmail(email string) (*User, error)
}
