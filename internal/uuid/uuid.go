// Package uuid wraps google/uuid so that IDs can be bound from
// gin URI and query parameters.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// UnmarshalParam implements gin's BindUnmarshaler. An empty
// parameter is bound to Nil.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}

// Ptr returns a pointer to the wrapped UUID, or nil for Nil.
//
// Optional references to other resources are stored as *uuid.UUID,
// this converts a bound parameter into that form.
func (u UUID) Ptr() *google_uuid.UUID {
	if u.UUID == google_uuid.Nil {
		return nil
	}

	id := u.UUID
	return &id
}
