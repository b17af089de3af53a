package models

import (
	"errors"
	"fmt"
	"strings"
)

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleRecruiter UserRole = "recruiter"
	RoleAdmin     UserRole = "admin"
)

// AllRoles lists every role in display order.
var AllRoles = []UserRole{RoleStudent, RoleRecruiter, RoleAdmin}

var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts external input into a UserRole. Anything outside the
// closed set is rejected instead of falling back to a default.
func ParseRole(s string) (UserRole, error) {
	switch UserRole(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleRecruiter:
		return RoleRecruiter, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r UserRole) IsValid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r UserRole) String() string {
	return string(r)
}

// RoleCases must handle every role; adding a role to the set means adding a
// method here, which breaks every implementation until it is handled.
type RoleCases[T any] interface {
	Student() T
	Recruiter() T
	Admin() T
}

// DispatchRole selects the case matching r.
func DispatchRole[T any](r UserRole, cases RoleCases[T]) (T, error) {
	switch r {
	case RoleStudent:
		return cases.Student(), nil
	case RoleRecruiter:
		return cases.Recruiter(), nil
	case RoleAdmin:
		return cases.Admin(), nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %q", ErrUnknownRole, string(r))
}
