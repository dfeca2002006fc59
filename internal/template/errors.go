package template

import (
	"errors"
	"fmt"
)

// Errors returned by formatting operations.
var (
	// ErrMissingSubstitution indicates a placeholder has no bound value.
	ErrMissingSubstitution = errors.New("missing substitution")

	// ErrReservedName indicates a variable shadows a reserved name.
	ErrReservedName = errors.New("reserved variable name")

	// ErrKeyCollision indicates two map keys formatted to the same key.
	ErrKeyCollision = errors.New("formatted keys collide")
)

// MissingSubstitutionError reports a placeholder identifier with no value.
type MissingSubstitutionError struct {
	Identifier string
}

// Error implements the error interface.
func (e *MissingSubstitutionError) Error() string {
	return fmt.Sprintf("no value for template variable %q", e.Identifier)
}

// Is implements error matching for MissingSubstitutionError.
func (e *MissingSubstitutionError) Is(target error) bool {
	return target == ErrMissingSubstitution
}

// ReservedNameError reports a user or type variable named after a
// reserved substitution.
type ReservedNameError struct {
	Name string
}

// Error implements the error interface.
func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("variable %q is reserved", e.Name)
}

// Is implements error matching for ReservedNameError.
func (e *ReservedNameError) Is(target error) bool {
	return target == ErrReservedName
}

// KeyCollisionError reports two distinct keys that format to the same key.
type KeyCollisionError struct {
	Key string
}

// Error implements the error interface.
func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("more than one key formats to %q", e.Key)
}

// Is implements error matching for KeyCollisionError.
func (e *KeyCollisionError) Is(target error) bool {
	return target == ErrKeyCollision
}
