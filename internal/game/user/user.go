// Package user holds the lightweight player identity carried through lobbies
// and tables. Identity is the ID; two users may share a display name.
package user

import "github.com/google/uuid"

// User is an opaque identity with a display name.
type User struct {
	ID   uuid.UUID
	Name string
}

// New mints a user with a fresh random ID.
func New(name string) User {
	return User{ID: uuid.New(), Name: name}
}

// Equal reports whether u and other are the same identity.
func (u User) Equal(other User) bool {
	return u.ID == other.ID
}

func (u User) String() string {
	return u.Name
}
