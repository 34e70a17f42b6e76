package models

import (
	"encoding/json"
	"strings"

	"github.com/careerkey/portal/internal/common"
)

// NormalizeRole converts a raw backend role name into the canonical
// ROLE_<NAME> token: upper-cased, prefixed exactly once. An empty or
// whitespace-only name normalizes to "".
func NormalizeRole(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, common.RolePrefix) {
		return name
	}
	return common.RolePrefix + name
}

// roleList accepts the heterogeneous role shapes the backend is known to
// emit: a single value or an array, where each element is either a plain
// string or an object carrying a name, authority or roleName field. The
// backend DTO documents a singular `role` set, but a plural `roles` array
// has been observed too; both feed through here.
type roleList []string

func (r *roleList) UnmarshalJSON(data []byte) error {
	*r = nil

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		// Not an array: treat the whole value as a single role entry.
		items = []json.RawMessage{data}
	}

	for _, item := range items {
		name, err := roleName(item)
		if err != nil {
			return err
		}
		if token := NormalizeRole(name); token != "" {
			*r = append(*r, token)
		}
	}
	return nil
}

func roleName(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}

	var obj struct {
		Name      string `json:"name"`
		Authority string `json:"authority"`
		RoleName  string `json:"roleName"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", err
	}

	switch {
	case obj.Name != "":
		return obj.Name, nil
	case obj.Authority != "":
		return obj.Authority, nil
	default:
		return obj.RoleName, nil
	}
}
