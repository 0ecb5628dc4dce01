/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mafia

import "sort"

// RoleConfiguration maps role id to the number of players dealt that role.
// The default role is never listed; its count is whatever is left over.
type RoleConfiguration map[string]int

// Clone returns an independent copy.
func (c RoleConfiguration) Clone() RoleConfiguration {
	out := make(RoleConfiguration, len(c))
	for id, n := range c {
		out[id] = n
	}
	return out
}

// Total sums every count.
func (c RoleConfiguration) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// ids returns the configured role ids, sorted.
func (c RoleConfiguration) ids() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Severity grades a validation result.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// ValidationResult is one finding from one rule.
type ValidationResult struct {
	IsValid  bool           `json:"isValid"`
	Severity Severity       `json:"severity"`
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
}

// AggregatedValidationState is the verdict for one configuration.
type AggregatedValidationState struct {
	IsValid              bool               `json:"isValid"`
	HasErrors            bool               `json:"hasErrors"`
	HasWarnings          bool               `json:"hasWarnings"`
	Errors               []ValidationResult `json:"errors"`
	Warnings             []ValidationResult `json:"warnings"`
	Infos                []ValidationResult `json:"infos"`
	VillagerCount        int                `json:"villagerCount"`
	RequiresConfirmation bool               `json:"requiresConfirmation"`
}

// Rule checks one aspect of a configuration. An empty result means the
// rule passed.
type Rule interface {
	Check(cfg RoleConfiguration, totalPlayers int, reg *Registry) []ValidationResult
}

// RuleFunc adapts a function to Rule.
type RuleFunc func(cfg RoleConfiguration, totalPlayers int, reg *Registry) []ValidationResult

func (f RuleFunc) Check(cfg RoleConfiguration, totalPlayers int, reg *Registry) []ValidationResult {
	return f(cfg, totalPlayers, reg)
}

const (
	// DefaultMinimumVillagers is the villager count below which a warning fires.
	DefaultMinimumVillagers = 1

	// DefaultMaxPlayers is the largest table the validator accepts.
	DefaultMaxPlayers = 50
)

type validatorOptions struct {
	minVillagers int
	maxPlayers   int
}

// Option tunes the built-in rules.
type Option func(*validatorOptions)

// WithMinimumVillagers sets the villager threshold used by MinimumVillagersRule.
func WithMinimumVillagers(n int) Option {
	return func(o *validatorOptions) {
		if n >= 0 {
			o.minVillagers = n
		}
	}
}

// WithMaxPlayers sets the upper bound used by PlayerCountRule.
func WithMaxPlayers(n int) Option {
	return func(o *validatorOptions) {
		if n > 0 {
			o.maxPlayers = n
		}
	}
}

// Validator applies an ordered list of rules against a registry.
type Validator struct {
	registry *Registry
	rules    []Rule
}

// BuiltinRules returns the standard rule list in evaluation order.
func BuiltinRules(opts ...Option) []Rule {
	o := validatorOptions{
		minVillagers: DefaultMinimumVillagers,
		maxPlayers:   DefaultMaxPlayers,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return []Rule{
		NegativeCountRule(),
		TotalRoleCountRule(),
		IndividualMinMaxRule(),
		MinimumVillagersRule(o.minVillagers),
		AllSpecialRolesRule(),
		UnknownRoleRule(),
		PlayerCountRule(o.maxPlayers),
		NoMafiaRule(),
		MafiaParityRule(),
	}
}

// NewValidator returns a validator running the built-in rules against reg.
func NewValidator(reg *Registry, opts ...Option) *Validator {
	if reg == nil {
		reg = defaultRegistry
	}
	return &Validator{
		registry: reg,
		rules:    BuiltinRules(opts...),
	}
}

// WithRules returns a copy of v with rules appended after the existing ones.
func (v *Validator) WithRules(rules ...Rule) *Validator {
	combined := make([]Rule, 0, len(v.rules)+len(rules))
	combined = append(combined, v.rules...)
	combined = append(combined, rules...)
	return &Validator{registry: v.registry, rules: combined}
}

// Registry returns the catalog the validator checks against.
func (v *Validator) Registry() *Registry {
	return v.registry
}

type dedupKey struct {
	severity Severity
	typ      string
}

// Validate runs every rule and aggregates the results. Errors are all kept;
// warnings and infos sharing a Type are reported once, first occurrence wins.
func (v *Validator) Validate(cfg RoleConfiguration, totalPlayers int) AggregatedValidationState {
	snapshot := cfg.Clone()

	state := AggregatedValidationState{
		Errors:        []ValidationResult{},
		Warnings:      []ValidationResult{},
		Infos:         []ValidationResult{},
		VillagerCount: totalPlayers - snapshot.Total(),
	}

	seen := make(map[dedupKey]bool)
	for _, rule := range v.rules {
		for _, result := range rule.Check(snapshot, totalPlayers, v.registry) {
			if result.Severity == SeverityError {
				state.Errors = append(state.Errors, result)
				continue
			}

			key := dedupKey{severity: result.Severity, typ: result.Type}
			if seen[key] {
				continue
			}
			seen[key] = true

			if result.Severity == SeverityWarning {
				state.Warnings = append(state.Warnings, result)
			} else {
				state.Infos = append(state.Infos, result)
			}
		}
	}

	state.HasErrors = len(state.Errors) > 0
	state.HasWarnings = len(state.Warnings) > 0
	state.IsValid = !state.HasErrors
	state.RequiresConfirmation = state.IsValid && state.HasWarnings

	return state
}

var defaultValidator = NewValidator(defaultRegistry)

// ValidateRoleConfiguration checks cfg against the built-in catalog and rules.
func ValidateRoleConfiguration(cfg RoleConfiguration, totalPlayers int) AggregatedValidationState {
	return defaultValidator.Validate(cfg, totalPlayers)
}
