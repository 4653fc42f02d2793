// Package skills provides the job-role skill catalog and custom skill list parsing.
package skills

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is a named job role and the skills it is scored against.
type Profile struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

// Catalog is an immutable, ordered set of profiles.
type Catalog struct {
	profiles []Profile
	index    map[string]int
}

var defaultProfiles = []Profile{
	{Name: "Frontend Developer", Skills: []string{"html", "css", "javascript", "react.js"}},
	{Name: "Backend Developer", Skills: []string{"node.js", "express", "mongodb", "sql"}},
	{Name: "Full Stack Developer", Skills: []string{"react.js", "node.js", "express", "sql", "java"}},
}

// DefaultCatalog returns the built-in job roles.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultProfiles...)
	if err != nil {
		panic(fmt.Sprintf("invalid default catalog: %v", err))
	}
	return c
}

// NewCatalog builds a catalog from the given profiles, preserving their order.
// Profiles are copied, so later changes to the arguments do not leak in.
// A blank skill would match every résumé, so it is rejected.
func NewCatalog(profiles ...Profile) (*Catalog, error) {
	if len(profiles) == 0 {
		return nil, errors.New("catalog has no profiles")
	}

	c := &Catalog{
		profiles: make([]Profile, 0, len(profiles)),
		index:    make(map[string]int, len(profiles)),
	}
	for _, p := range profiles {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, errors.New("profile name is empty")
		}
		if _, exists := c.index[name]; exists {
			return nil, fmt.Errorf("duplicate profile %q", name)
		}
		if len(p.Skills) == 0 {
			return nil, fmt.Errorf("profile %q has no skills", name)
		}
		for i, skill := range p.Skills {
			if strings.TrimSpace(skill) == "" {
				return nil, fmt.Errorf("profile %q has an empty skill at position %d", name, i+1)
			}
		}
		c.index[name] = len(c.profiles)
		c.profiles = append(c.profiles, Profile{Name: name, Skills: cloneStrings(p.Skills)})
	}
	return c, nil
}

type catalogFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadCatalog reads a YAML catalog of the form
//
//	profiles:
//	  - name: Data Engineer
//	    skills: [python, sql, airflow]
//
// Skills are trimmed and lowercased like the built-in lists.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	for i := range file.Profiles {
		skills := file.Profiles[i].Skills
		for j, s := range skills {
			skills[j] = strings.ToLower(strings.TrimSpace(s))
		}
	}

	c, err := NewCatalog(file.Profiles...)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}
	return c, nil
}

// Names returns the profile names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		names[i] = p.Name
	}
	return names
}

// Profiles returns a copy of every profile in catalog order.
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, len(c.profiles))
	for i, p := range c.profiles {
		out[i] = Profile{Name: p.Name, Skills: cloneStrings(p.Skills)}
	}
	return out
}

// Lookup returns a copy of the named profile's skills.
func (c *Catalog) Lookup(name string) ([]string, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return cloneStrings(c.profiles[i].Skills), true
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
