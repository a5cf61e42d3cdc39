package uuid

import (
	uuid "github.com/gofrs/uuid/v5"
)

type UUID = uuid.UUID

var Nil = uuid.Nil

// New returns a time-ordered v7 id so insertion order and id order agree.
func New() UUID {
	return uuid.Must(uuid.NewV7())
}

func FromString(s string) (UUID, error) {
	return uuid.FromString(s)
}
