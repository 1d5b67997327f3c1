// Package llm holds what every model backend shares: how a flat conversation maps
// onto chat roles.
package llm

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Role is the speaker of one conversation turn.
type Role int

const (
	RoleUser Role = iota
	RoleModel
)

func (r Role) String() string {
	if r == RoleModel {
		return "model"
	}
	return "user"
}

// ErrInvalidTurns is returned by backends for a conversation they cannot send.
var ErrInvalidTurns = errors.New("invalid conversation turns")

// RoleOf returns the speaker of the i-th turn. Turns alternate, starting with the
// user.
func RoleOf(i int) Role {
	if i%2 == 0 {
		return RoleUser
	}
	return RoleModel
}

// ValidateTurns checks that turns is non-empty and ends with a user turn.
func ValidateTurns(turns []string) error {
	if len(turns) == 0 {
		return goerr.Wrap(ErrInvalidTurns, "no turns")
	}
	if RoleOf(len(turns)-1) != RoleUser {
		return goerr.Wrap(ErrInvalidTurns, "last turn must be a user turn", goerr.V("turns", len(turns)))
	}
	return nil
}
