// Package identity holds the person directory and the identity-provider
// adapter. The custody core treats a person as an opaque reference plus a
// role; this package is where those references get resolved.
package identity

import (
	"time"

	id "custodia/pkg/domain"
)

// Person is the canonical person record. One schema, one name column — the
// directory does not adapt to legacy table layouts at runtime.
type Person struct {
	ID          id.UserID
	Name        string
	Email       string
	BadgeNumber string
	Role        id.Role
	CreatedAt   time.Time
}

// Lookup identifies a person by exactly one of several attributes, tried in
// order of reliability: email, then badge number, then display name.
type Lookup struct {
	Email string
	Badge string
	Name  string
}

// Empty reports whether the lookup carries no usable identifier.
func (l Lookup) Empty() bool {
	return l.Email == "" && l.Badge == "" && l.Name == ""
}
