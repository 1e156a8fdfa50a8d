package entity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Username identifies an account. It is never validated on construction;
// callers invoke Validate before relying on it.
type Username struct{ Identifier[string] }

func NewUsername(v string) Username { return Username{NewIdentifier(v)} }

// Validate reports whether the username has at least one non-space rune.
func (u Username) Validate() bool {
	return strings.IndexFunc(u.Value(), func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}

func (u Username) String() string { return u.Value() }

const (
	PasswordSymbols   = `/*!@#$%^&*()"{}_[]|\?/<>,.`
	PasswordMinLength = 8
)

// Password holds a raw credential. String masks it so it never ends up in logs.
type Password struct {
	value string
}

func NewPassword(v string) Password { return Password{value: v} }

func (p Password) Value() string { return p.value }

func (p Password) String() string { return "********" }

// IsBlank reports whether the password is empty or whitespace only.
func (p Password) IsBlank() bool { return strings.TrimSpace(p.value) == "" }

// Validate applies the password policy: non-empty, at least one upper and one
// lower case letter, one symbol from PasswordSymbols and PasswordMinLength runes.
func (p Password) Validate() bool {
	return p.value != "" &&
		strings.IndexFunc(p.value, unicode.IsUpper) >= 0 &&
		strings.IndexFunc(p.value, unicode.IsLower) >= 0 &&
		strings.ContainsAny(p.value, PasswordSymbols) &&
		utf8.RuneCountInString(p.value) >= PasswordMinLength
}
