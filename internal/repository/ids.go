package repository

import "github.com/google/uuid"

// NewID returns a fresh issue identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is an issue identifier in its canonical textual
// form. Anything else can never resolve to a stored issue.
func ValidID(id string) bool {
	u, err := uuid.Parse(id)
	return err == nil && u.String() == id
}
