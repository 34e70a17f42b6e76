// Package models defines the client-side DTOs for the CareerKey backend
// and the single ingestion boundary where heterogeneous backend shapes are
// normalized. Downstream consumers (guards, portal commands) only ever see
// the canonical forms defined here.
package models

import "encoding/json"

// User is an authenticated portal user. Roles always hold canonical
// ROLE_<NAME> tokens; raw backend role shapes never leave UnmarshalJSON.
type User struct {
	Name    string
	Email   string
	Enabled bool
	Roles   []string
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name    string   `json:"name"`
		Email   string   `json:"email"`
		Role    roleList `json:"role"`
		Roles   roleList `json:"roles"`
		Enable  *bool    `json:"enable"`
		Enabled *bool    `json:"enabled"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.Name = raw.Name
	u.Email = raw.Email

	// The backend record uses the singular `role` field; a plural `roles`
	// array is accepted as a fallback.
	u.Roles = raw.Role
	if len(u.Roles) == 0 {
		u.Roles = raw.Roles
	}

	// The backend record spells the flag `enable`.
	switch {
	case raw.Enable != nil:
		u.Enabled = *raw.Enable
	case raw.Enabled != nil:
		u.Enabled = *raw.Enabled
	}
	return nil
}

// HasAnyRole reports whether the user's role set intersects the allow-list.
func (u *User) HasAnyRole(allowed ...string) bool {
	if u == nil {
		return false
	}
	for _, want := range allowed {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
