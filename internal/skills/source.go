package skills

import (
	"errors"
	"strings"
)

// ErrNoSkills is returned when neither custom skills nor a known role were given.
var ErrNoSkills = errors.New("enter at least one skill or select a job role")

// Source names where a skill list came from.
type Source string

const (
	SourceRole   Source = "role"
	SourceCustom Source = "custom"
)

// Selection is a resolved, non-empty skill list.
type Selection struct {
	Source Source   `json:"source"`
	Role   string   `json:"role,omitempty"`
	Skills []string `json:"skills"`
}

// ParseCustom splits a comma-separated list into trimmed, lowercased tokens.
// Empty tokens are kept, so "go,,sql" yields three entries.
func ParseCustom(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// Resolve picks the skill list for a scan. Non-blank custom text takes
// precedence over the selected role.
func Resolve(catalog *Catalog, role, custom string) (Selection, error) {
	if strings.TrimSpace(custom) != "" {
		return Selection{Source: SourceCustom, Skills: ParseCustom(custom)}, nil
	}

	if role == "" || catalog == nil {
		return Selection{}, ErrNoSkills
	}
	list, ok := catalog.Lookup(role)
	if !ok || len(list) == 0 {
		return Selection{}, ErrNoSkills
	}
	return Selection{Source: SourceRole, Role: role, Skills: list}, nil
}
