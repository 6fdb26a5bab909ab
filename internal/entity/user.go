package domain

import (
	"errors"
	"strings"
)

// Role is a closed enum. Raw role strings from the backend are
// normalized exactly once, at session load; nothing downstream compares
// role strings again.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts the legacy backend spellings ("USER", "ADMIN") in
// any case, plus the canonical ones.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "customer":
		return RoleCustomer, nil
	case "admin":
		return RoleAdmin, nil
	}
	return "", ErrUnknownRole
}

type User struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Role       Role
	IsVerified bool
}
