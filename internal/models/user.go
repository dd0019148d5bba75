// Package models defines the user records, view state and persisted layouts
// shared by the transport, the cache and the console.
package models

import (
	"fmt"
	"strings"
)

// User is one record of the upstream user collection. ID is assigned by the
// upstream and never changes.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

// FullName is the "first last" concatenation used for search and sorting.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) String() string {
	return fmt.Sprintf("#%d %s <%s>", u.ID, u.FullName(), u.Email)
}

// UserPatch is a partial user. Nil fields are left untouched on merge.
type UserPatch struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

// IsEmpty reports whether the patch carries no fields.
func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil
}

// Apply returns u with the set fields of p merged in. ID and Avatar are
// never touched.
func (p UserPatch) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	return u
}

// Trimmed returns a copy of p with surrounding whitespace removed from every
// set field.
func (p UserPatch) Trimmed() UserPatch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	return UserPatch{FirstName: trim(p.FirstName), LastName: trim(p.LastName), Email: trim(p.Email)}
}

// UserList is one page of the upstream listing.
type UserList struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Data       []User `json:"data"`
}

// StringPtr is a small helper for building patches.
func StringPtr(s string) *string { return &s }
