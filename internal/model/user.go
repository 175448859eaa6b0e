// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the closed enumerations shared by the store,
// services and handlers: user roles and content types.
package model

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role is the kind of account. A role is fixed at registration.
type Role string

// Supported roles.
const (
	RoleLecturer Role = "lecturer"
	RoleStudent  Role = "student"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleLecturer, RoleStudent}

var titleCaser = cases.Title(language.English)

// ParseRole converts a stored or submitted value into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleLecturer, RoleStudent:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Label returns the role name for display, e.g. "Lecturer".
func (r Role) Label() string {
	return titleCaser.String(string(r))
}

func (r Role) String() string {
	return string(r)
}
