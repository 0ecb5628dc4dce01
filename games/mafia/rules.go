/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mafia

import "fmt"

// Result types reported by the built-in rules.
const (
	TypeNegativeCount  = "NEGATIVE_COUNT"
	TypeTotalRoleCount = "TOTAL_ROLE_COUNT"
	TypeRoleOutOfRange = "ROLE_COUNT_OUT_OF_RANGE"
	TypeOverAllocated  = "OVER_ALLOCATED"
	TypeNoVillagers    = "NO_VILLAGERS"
	TypeLowVillagers   = "LOW_VILLAGERS"
	TypeUnknownRole    = "UNKNOWN_ROLE"
	TypePlayerCount    = "PLAYER_COUNT"
	TypeNoMafia        = "NO_MAFIA"
	TypeMafiaParity    = "MAFIA_PARITY"
)

func finding(severity Severity, typ, message string, details map[string]any) ValidationResult {
	return ValidationResult{
		IsValid:  false,
		Severity: severity,
		Type:     typ,
		Message:  message,
		Details:  details,
	}
}

func roleName(reg *Registry, id string) string {
	if def, err := reg.Role(id); err == nil {
		return def.Name
	}
	return id
}

// NegativeCountRule rejects any count below zero.
func NegativeCountRule() Rule {
	return RuleFunc(func(cfg RoleConfiguration, _ int, reg *Registry) []ValidationResult {
		var out []ValidationResult
		for _, id := range cfg.ids() {
			n := cfg[id]
			if n >= 0 {
				continue
			}
			out = append(out, finding(SeverityError, TypeNegativeCount,
				fmt.Sprintf("%s count cannot be negative (currently %d)", roleName(reg, id), n),
				map[string]any{"role": id, "value": n}))
		}
		return out
	})
}

// TotalRoleCountRule rejects configurations that deal more roles than there
// are players.
func TotalRoleCountRule() Rule {
	return RuleFunc(func(cfg RoleConfiguration, totalPlayers int, _ *Registry) []ValidationResult {
		sum := cfg.Total()
		if sum <= totalPlayers {
			return nil
		}
		overflow := sum - totalPlayers
		return []ValidationResult{finding(SeverityError, TypeTotalRoleCount,
			fmt.Sprintf("%d roles assigned for %d players: %d too many, reduce role counts by at least %d",
				sum, totalPlayers, overflow, overflow),
			map[string]any{"total": sum, "players": totalPlayers, "overflow": overflow})}
	})
}

// IndividualMinMaxRule reports every special role whose count is outside its
// constraints. Negative counts are left to NegativeCountRule.
func IndividualMinMaxRule() Rule {
	return RuleFunc(func(cfg RoleConfiguration, _ int, reg *Registry) []ValidationResult {
		var out []ValidationResult
		for _, def := range reg.SpecialRoles() {
			n := cfg[def.ID]
			if n < 0 {
				continue
			}
			c := def.Constraints
			if n >= c.Min && n <= c.Max {
				continue
			}
			out = append(out, finding(SeverityError, TypeRoleOutOfRange,
				fmt.Sprintf("%s count must be between %d and %d (currently %d)", def.Name, c.Min, c.Max, n),
				map[string]any{"role": def.ID, "value": n, "min": c.Min, "max": c.Max}))
		}
		return out
	})
}

// MinimumVillagersRule checks the leftover villager count. Over-allocation is
// an error; zero villagers, or fewer than threshold, is a warning.
func MinimumVillagersRule(threshold int) Rule {
	return RuleFunc(func(cfg RoleConfiguration, totalPlayers int, reg *Registry) []ValidationResult {
		villagers := totalPlayers - cfg.Total()
		name := reg.DefaultRole().Name
		details := map[string]any{"villagers": villagers, "threshold": threshold}

		switch {
		case villagers < 0:
			return []ValidationResult{finding(SeverityError, TypeOverAllocated,
				fmt.Sprintf("roles are over-allocated by %d, no %s slots remain", -villagers, name),
				details)}
		case villagers == 0:
			return []ValidationResult{finding(SeverityWarning, TypeNoVillagers,
				fmt.Sprintf("no players will be dealt %s", name),
				details)}
		case villagers < threshold:
			return []ValidationResult{finding(SeverityWarning, TypeLowVillagers,
				fmt.Sprintf("only %d %s, at least %d recommended", villagers, name, threshold),
				details)}
		}
		return nil
	})
}

// AllSpecialRolesRule warns when every player is dealt a special role.
func AllSpecialRolesRule() Rule {
	return RuleFunc(func(cfg RoleConfiguration, totalPlayers int, _ *Registry) []ValidationResult {
		if totalPlayers-cfg.Total() != 0 {
			return nil
		}
		return []ValidationResult{finding(SeverityWarning, TypeNoVillagers,
			"every player is dealt a special role",
			map[string]any{"villagers": 0})}
	})
}

// UnknownRoleRule rejects non-zero counts for roles the registry does not
// deal explicitly, which includes the default role.
func UnknownRoleRule() Rule {
	return RuleFunc(func(cfg RoleConfiguration, _ int, reg *Registry) []ValidationResult {
		var out []ValidationResult
		for _, id := range cfg.ids() {
			if cfg[id] == 0 {
				continue
			}
			def, err := reg.Role(id)
			switch {
			case err != nil:
				out = append(out, finding(SeverityError, TypeUnknownRole,
					fmt.Sprintf("unknown role %q", id),
					map[string]any{"role": id}))
			case def.IsDefault():
				out = append(out, finding(SeverityError, TypeUnknownRole,
					fmt.Sprintf("%s count is derived from the player count and cannot be set", def.Name),
					map[string]any{"role": id}))
			}
		}
		return out
	})
}

// PlayerCountRule bounds the table size.
func PlayerCountRule(maxPlayers int) Rule {
	return RuleFunc(func(_ RoleConfiguration, totalPlayers int, _ *Registry) []ValidationResult {
		if totalPlayers >= 1 && totalPlayers <= maxPlayers {
			return nil
		}
		return []ValidationResult{finding(SeverityError, TypePlayerCount,
			fmt.Sprintf("player count must be between 1 and %d (currently %d)", maxPlayers, totalPlayers),
			map[string]any{"players": totalPlayers, "max": maxPlayers})}
	})
}

func teamCount(cfg RoleConfiguration, reg *Registry, team Team) int {
	n := 0
	for _, def := range reg.SpecialRoles() {
		if def.Team == team && cfg[def.ID] > 0 {
			n += cfg[def.ID]
		}
	}
	return n
}

// NoMafiaRule warns when nobody is dealt a mafia-team role.
func NoMafiaRule() Rule {
	return RuleFunc(func(cfg RoleConfiguration, _ int, reg *Registry) []ValidationResult {
		if teamCount(cfg, reg, TeamMafia) > 0 {
			return nil
		}
		return []ValidationResult{finding(SeverityWarning, TypeNoMafia,
			"no Mafia will be dealt, the game has no opposing team",
			nil)}
	})
}

// MafiaParityRule notes when the mafia start with at least as many players
// as everyone else.
func MafiaParityRule() Rule {
	return RuleFunc(func(cfg RoleConfiguration, totalPlayers int, reg *Registry) []ValidationResult {
		mafia := teamCount(cfg, reg, TeamMafia)
		if mafia == 0 || mafia < totalPlayers-mafia {
			return nil
		}
		return []ValidationResult{finding(SeverityInfo, TypeMafiaParity,
			fmt.Sprintf("%d Mafia against %d other players, the Mafia start at parity", mafia, totalPlayers-mafia),
			map[string]any{"mafia": mafia, "others": totalPlayers - mafia})}
	})
}
