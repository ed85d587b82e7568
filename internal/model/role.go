package model

import (
	"encoding/json"
	"strings"
)

// RoleName is the closed set of platform roles. Authorization decisions
// switch on this type; anything the backend sends outside the set parses
// to RoleUnknown so callers can treat it as unauthorized instead of
// comparing free-form strings.
type RoleName string

const (
	RoleUnknown RoleName = ""
	RoleAdmin   RoleName = "admin"
	RoleDueno   RoleName = "dueño"
	RoleBarbero RoleName = "barbero"
	RoleCliente RoleName = "cliente"
)

// ParseRoleName maps a backend role string to the closed set.
func ParseRoleName(s string) RoleName {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "dueño", "dueno", "owner":
		return RoleDueno
	case "barbero":
		return RoleBarbero
	case "cliente":
		return RoleCliente
	default:
		return RoleUnknown
	}
}

// Known reports whether the role belongs to the closed set.
func (r RoleName) Known() bool {
	switch r {
	case RoleAdmin, RoleDueno, RoleBarbero, RoleCliente:
		return true
	}
	return false
}

func (r *RoleName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRoleName(s)
	return nil
}

// Role is the role record attached to a user.
type Role struct {
	ID     int      `json:"id"`
	Nombre RoleName `json:"nombre"`
}
