package domain

import (
	"fmt"
	"strings"
)

type Role uint8

const (
	RoleCustomer Role = iota + 1
	RoleEmployee
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleEmployee:
		return "employee"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleEmployee:
		return true
	default:
		return false
	}
}

func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "customer":
		return RoleCustomer, nil
	case "employee":
		return RoleEmployee, nil
	default:
		return 0, fmt.Errorf("unknown role %q", raw)
	}
}
