package entity

// Identifier wraps a raw value. Two identifiers are equal iff their wrapped
// values are equal; the value cannot be changed after construction.
type Identifier[T comparable] struct {
	value T
}

func NewIdentifier[T comparable](v T) Identifier[T] {
	return Identifier[T]{value: v}
}

func (i Identifier[T]) Value() T { return i.value }

func (i Identifier[T]) Equal(other Identifier[T]) bool { return i.value == other.value }

// Entity is anything with exactly one identity.
type Entity[ID comparable] interface {
	Identity() ID
}

// SameIdentity compares two entities by identity only. Every entity in this
// package defines equality this way.
func SameIdentity[ID comparable](a, b Entity[ID]) bool {
	return a.Identity() == b.Identity()
}

type AccountID struct{ Identifier[string] }

func NewAccountID(v string) AccountID { return AccountID{NewIdentifier(v)} }

type StatusID struct{ Identifier[string] }

func NewStatusID(v string) StatusID { return StatusID{NewIdentifier(v)} }

type MediaID struct{ Identifier[string] }

func NewMediaID(v string) MediaID { return MediaID{NewIdentifier(v)} }
