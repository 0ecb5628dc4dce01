/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package mafia deals hidden roles to players sharing one device and walks
// them through a private, strictly ordered reveal.
//
// The flow is: a RoleConfiguration is checked by the Validator, a valid one
// is turned into an Assignment by the Assigner, and the Assignment drives a
// Session through its reveal states.
package mafia

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Team groups roles by allegiance.
type Team string

const (
	TeamMafia    Team = "mafia"
	TeamSpecial  Team = "special"
	TeamVillager Team = "villager"
)

func (t Team) valid() bool {
	switch t {
	case TeamMafia, TeamSpecial, TeamVillager:
		return true
	default:
		return false
	}
}

// ColorScheme is the presentation palette for a role card.
type ColorScheme struct {
	Primary    string `yaml:"primary" json:"primary"`
	Background string `yaml:"background" json:"background"`
	Text       string `yaml:"text" json:"text"`
}

// Constraints bound how many of a role may be dealt.
type Constraints struct {
	Min     int `yaml:"min" json:"min"`
	Max     int `yaml:"max" json:"max"`
	Default int `yaml:"default" json:"default"`
}

// RoleDefinition describes one role. It holds no references, so every copy
// is independent of the registry.
type RoleDefinition struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Team        Team        `yaml:"team" json:"team"`
	ColorScheme ColorScheme `yaml:"color_scheme" json:"colorScheme"`
	Constraints Constraints `yaml:"constraints" json:"constraints"`
	Description string      `yaml:"description" json:"description"`
	Priority    int         `yaml:"priority" json:"priority"`
}

// IsDefault reports whether the role fills the slots no other role claims.
func (r RoleDefinition) IsDefault() bool {
	return r.Team == TeamVillager
}

func (r RoleDefinition) validate() error {
	switch {
	case strings.TrimSpace(r.ID) == "":
		return fmt.Errorf("role id is required")
	case strings.TrimSpace(r.Name) == "":
		return fmt.Errorf("role %s: name is required", r.ID)
	case !r.Team.valid():
		return fmt.Errorf("role %s: unknown team %q", r.ID, r.Team)
	case r.Constraints.Min < 0:
		return fmt.Errorf("role %s: min must be non-negative", r.ID)
	case r.Constraints.Min > r.Constraints.Max:
		return fmt.Errorf("role %s: min %d exceeds max %d", r.ID, r.Constraints.Min, r.Constraints.Max)
	case r.Constraints.Default < r.Constraints.Min || r.Constraints.Default > r.Constraints.Max:
		return fmt.Errorf("role %s: default %d outside [%d, %d]", r.ID, r.Constraints.Default, r.Constraints.Min, r.Constraints.Max)
	}
	return nil
}

// Registry is a read-only catalog of roles. It has no mutation methods;
// build a new one to change the catalog.
type Registry struct {
	byID    map[string]RoleDefinition
	ordered []RoleDefinition
	deflt   RoleDefinition
}

// NewRegistry checks the definitions and builds a registry from them.
// Exactly one villager-team role is required; it becomes the default role.
func NewRegistry(defs ...RoleDefinition) (*Registry, error) {
	r := &Registry{
		byID:    make(map[string]RoleDefinition, len(defs)),
		ordered: make([]RoleDefinition, 0, len(defs)),
	}

	defaults := 0
	for _, def := range defs {
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		if _, exists := r.byID[def.ID]; exists {
			return nil, fmt.Errorf("registry: duplicate role id %s", def.ID)
		}
		if def.IsDefault() {
			defaults++
			r.deflt = def
		}
		r.byID[def.ID] = def
		r.ordered = append(r.ordered, def)
	}

	if defaults != 1 {
		return nil, fmt.Errorf("registry: exactly one %s role is required, got %d", TeamVillager, defaults)
	}

	sort.SliceStable(r.ordered, func(i, j int) bool {
		if r.ordered[i].Priority != r.ordered[j].Priority {
			return r.ordered[i].Priority < r.ordered[j].Priority
		}
		return r.ordered[i].ID < r.ordered[j].ID
	})

	return r, nil
}

type catalogFile struct {
	Roles []RoleDefinition `yaml:"roles"`
}

// ParseRegistryYAML decodes a role catalog and builds a registry from it.
func ParseRegistryYAML(data []byte) (*Registry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("registry: catalog is empty")
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("registry: decode catalog: %w", err)
	}

	return NewRegistry(file.Roles...)
}

// Role returns the definition for id.
func (r *Registry) Role(id string) (RoleDefinition, error) {
	def, ok := r.byID[id]
	if !ok {
		return RoleDefinition{}, fmt.Errorf("%w: %s", ErrRoleNotFound, id)
	}
	return def, nil
}

// Roles returns every role in priority order.
func (r *Registry) Roles() []RoleDefinition {
	out := make([]RoleDefinition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// SpecialRoles returns every role except the default one, in ascending
// priority order. These are the roles a RoleConfiguration counts.
func (r *Registry) SpecialRoles() []RoleDefinition {
	out := make([]RoleDefinition, 0, len(r.ordered))
	for _, def := range r.ordered {
		if def.IsDefault() {
			continue
		}
		out = append(out, def)
	}
	return out
}

// DefaultRole returns the villager-team role.
func (r *Registry) DefaultRole() RoleDefinition {
	return r.deflt
}

// DefaultConfiguration returns each special role at its default count.
func (r *Registry) DefaultConfiguration() RoleConfiguration {
	cfg := make(RoleConfiguration)
	for _, def := range r.SpecialRoles() {
		cfg[def.ID] = def.Constraints.Default
	}
	return cfg
}

//go:embed roles.yaml
var catalog []byte

var defaultRegistry = mustParseRegistry(catalog)

func mustParseRegistry(data []byte) *Registry {
	r, err := ParseRegistryYAML(data)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the built-in role catalog.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// GetRole looks up id in the built-in catalog.
func GetRole(id string) (RoleDefinition, error) {
	return defaultRegistry.Role(id)
}

// GetSpecialRoles returns the built-in special roles by priority.
func GetSpecialRoles() []RoleDefinition {
	return defaultRegistry.SpecialRoles()
}

// Built-in role ids.
const (
	RoleMafia    = "MAFIA"
	RolePolice   = "POLICE"
	RoleDoctor   = "DOCTOR"
	RoleVillager = "VILLAGER"
)
