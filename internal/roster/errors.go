package roster

import (
	"errors"
	"fmt"

	"vpet/internal/pet"
)

var (
	// ErrFull is returned by Create when the roster already holds MaxPets.
	ErrFull = errors.New("roster: full")
	// ErrEmptyName is returned by Create for a blank name.
	ErrEmptyName = errors.New("roster: empty name")
	// ErrNotFound is returned for an id that is not on the roster. Callers
	// ignore it: a removal timer may have fired first.
	ErrNotFound = errors.New("roster: pet not found")
	// ErrDead is returned for actions on a pet waiting to be removed.
	ErrDead = errors.New("roster: pet is dead")
	// ErrUnknownAction is returned for an action outside pet.AllActions.
	ErrUnknownAction = errors.New("roster: unknown action")
	// ErrCooldownActive matches every *CooldownError.
	ErrCooldownActive = errors.New("roster: cooldown active")
)

// CooldownError reports an action denied by the cooldown gate.
type CooldownError struct {
	PetID       string
	Action      pet.Action
	SecondsLeft int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("roster: %s on %s cooling down (%ds left)", e.Action, e.PetID, e.SecondsLeft)
}

// Is lets errors.Is(err, ErrCooldownActive) match.
func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
