package rbac

import (
	"encoding/json"
	"strings"
)

// Wildcard is the segment that matches every action within a category. A
// permission set containing the bare wildcard grants every permission.
const Wildcard = "*"

// Permission is a parsed capability identifier in category.action form.
// "pages.*" parses to {Category: "pages", Action: "*"} and the global
// wildcard "*" parses to {Category: "*"}.
type Permission struct {
	Category string
	Action   string
}

// ParsePermission splits a permission identifier on its first dot.
func ParsePermission(raw string) Permission {
	raw = strings.TrimSpace(raw)
	category, action, found := strings.Cut(raw, ".")
	if !found {
		return Permission{Category: category}
	}
	return Permission{Category: category, Action: action}
}

// String reassembles the identifier.
func (p Permission) String() string {
	if p.Action == "" {
		return p.Category
	}
	return p.Category + "." + p.Action
}

// IsGlobalWildcard reports whether the permission grants everything.
func (p Permission) IsGlobalWildcard() bool {
	return p.Category == Wildcard && p.Action == ""
}

// Set is a principal's granted permission set.
type Set struct {
	entries map[string]struct{}
}

// NewSet builds a Set from permission identifiers.
func NewSet(perms ...string) Set {
	entries := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		entries[p] = struct{}{}
	}
	return Set{entries: entries}
}

// ParseSet decodes a serialized JSON permission list. Malformed input yields
// the empty set: a role whose stored permissions cannot be parsed grants
// nothing rather than failing the request.
func ParseSet(serialized string) Set {
	if strings.TrimSpace(serialized) == "" {
		return NewSet()
	}
	var perms []string
	if err := json.Unmarshal([]byte(serialized), &perms); err != nil {
		return NewSet()
	}
	return NewSet(perms...)
}

// Contains reports whether the exact identifier is in the set.
func (s Set) Contains(perm string) bool {
	_, ok := s.entries[perm]
	return ok
}

// Len returns the number of granted permissions.
func (s Set) Len() int {
	return len(s.entries)
}

// List returns the granted identifiers in unspecified order.
func (s Set) List() []string {
	out := make([]string, 0, len(s.entries))
	for p := range s.entries {
		out = append(out, p)
	}
	return out
}
