/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mafia

import (
	"reflect"
	"strings"
	"testing"
)

func hasType(results []ValidationResult, typ string) bool {
	return countType(results, typ) > 0
}

func countType(results []ValidationResult, typ string) int {
	n := 0
	for _, r := range results {
		if r.Type == typ {
			n++
		}
	}
	return n
}

func TestValidateAcceptsOrdinaryTable(t *testing.T) {
	state := ValidateRoleConfiguration(RoleConfiguration{RoleMafia: 2, RolePolice: 1, RoleDoctor: 1}, 10)
	if !state.IsValid || state.HasErrors {
		t.Fatalf("expected valid configuration, got errors %+v", state.Errors)
	}
	if state.HasWarnings || state.RequiresConfirmation {
		t.Fatalf("expected no warnings, got %+v", state.Warnings)
	}
	if state.VillagerCount != 6 {
		t.Fatalf("expected 6 villagers, got %d", state.VillagerCount)
	}
}

// TestValidateNoMafia covers a table with zero mafia.
func TestValidateNoMafia(t *testing.T) {
	state := ValidateRoleConfiguration(RoleConfiguration{RoleMafia: 0}, 5)
	if !state.IsValid {
		t.Fatalf("expected valid configuration, got errors %+v", state.Errors)
	}
	if !hasType(state.Warnings, TypeNoMafia) {
		t.Fatalf("expected %s warning, got %+v", TypeNoMafia, state.Warnings)
	}
	if !state.RequiresConfirmation {
		t.Fatal("expected confirmation to be required")
	}
	if state.VillagerCount != 5 {
		t.Fatalf("expected 5 villagers, got %d", state.VillagerCount)
	}
}

// TestValidateAllMafia covers mafia filling every seat: a warning, not an error.
func TestValidateAllMafia(t *testing.T) {
	state := ValidateRoleConfiguration(RoleConfiguration{RoleMafia: 5}, 5)
	if !state.IsValid || len(state.Errors) != 0 {
		t.Fatalf("expected valid configuration, got errors %+v", state.Errors)
	}
	if state.VillagerCount != 0 {
		t.Fatalf("expected 0 villagers, got %d", state.VillagerCount)
	}
	if !state.HasWarnings || !state.RequiresConfirmation {
		t.Fatal("expected a warning requiring confirmation")
	}
	if n := countType(state.Warnings, TypeNoVillagers); n != 1 {
		t.Fatalf("expected exactly one %s warning, got %d", TypeNoVillagers, n)
	}
	if !hasType(state.Infos, TypeMafiaParity) {
		t.Fatalf("expected %s info, got %+v", TypeMafiaParity, state.Infos)
	}
}

func TestValidateWarningsAreUnique(t *testing.T) {
	v := NewValidator(nil).WithRules(NoMafiaRule(), AllSpecialRolesRule())
	state := v.Validate(RoleConfiguration{RolePolice: 2, RoleDoctor: 2}, 4)

	seen := map[string]bool{}
	for _, w := range state.Warnings {
		if seen[w.Type] {
			t.Fatalf("warning %s reported twice: %+v", w.Type, state.Warnings)
		}
		seen[w.Type] = true
	}
	if !seen[TypeNoVillagers] || !seen[TypeNoMafia] {
		t.Fatalf("expected no-villager and no-mafia warnings, got %+v", state.Warnings)
	}
	if state.Warnings[0].Message != "no players will be dealt Villager" {
		t.Fatalf("expected first-occurrence message to win, got %q", state.Warnings[0].Message)
	}
}

func TestValidateTotalOverflow(t *testing.T) {
	state := ValidateRoleConfiguration(RoleConfiguration{RoleMafia: 4, RolePolice: 1, RoleDoctor: 1}, 5)
	if state.IsValid || !state.HasErrors {
		t.Fatal("expected invalid configuration")
	}
	if state.RequiresConfirmation {
		t.Fatal("invalid configurations must not ask for confirmation")
	}
	if !hasType(state.Errors, TypeTotalRoleCount) {
		t.Fatalf("expected %s error, got %+v", TypeTotalRoleCount, state.Errors)
	}
	if !hasType(state.Errors, TypeOverAllocated) {
		t.Fatalf("expected %s error, got %+v", TypeOverAllocated, state.Errors)
	}
	if state.Errors[0].Type != TypeTotalRoleCount {
		t.Fatalf("expected total count error first, got %s", state.Errors[0].Type)
	}
	if msg := state.Errors[0].Message; !strings.Contains(msg, "1 too many") || !strings.Contains(msg, "at least 1") {
		t.Fatalf("expected overflow in message, got %q", msg)
	}
}

func TestValidateNegativeCount(t *testing.T) {
	state := ValidateRoleConfiguration(RoleConfiguration{RoleMafia: 1, RolePolice: -2}, 5)
	if state.IsValid {
		t.Fatal("expected invalid configuration")
	}
	if len(state.Errors) != 1 || state.Errors[0].Type != TypeNegativeCount {
		t.Fatalf("expected a single negative count error, got %+v", state.Errors)
	}
	if msg := state.Errors[0].Message; !strings.Contains(msg, "Police") || !strings.Contains(msg, "-2") {
		t.Fatalf("expected role and value in message, got %q", msg)
	}
}

func TestValidateReportsEveryRoleOutOfRange(t *testing.T) {
	state := ValidateRoleConfiguration(RoleConfiguration{RoleMafia: 11, RolePolice: 3, RoleDoctor: 3}, 50)
	if state.IsValid {
		t.Fatal("expected invalid configuration")
	}
	if n := countType(state.Errors, TypeRoleOutOfRange); n != 3 {
		t.Fatalf("expected 3 range errors, got %d: %+v", n, state.Errors)
	}
}

func TestValidateUnknownRoles(t *testing.T) {
	tests := []struct {
		name  string
		cfg   RoleConfiguration
		valid bool
	}{
		{name: "unknown id", cfg: RoleConfiguration{RoleMafia: 1, "WEREWOLF": 1}},
		{name: "villager counted", cfg: RoleConfiguration{RoleMafia: 1, RoleVillager: 2}},
		{name: "zero unknown ignored", cfg: RoleConfiguration{RoleMafia: 1, "WEREWOLF": 0}, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := ValidateRoleConfiguration(tt.cfg, 6)
			if state.IsValid != tt.valid {
				t.Fatalf("expected valid=%v, got %+v", tt.valid, state.Errors)
			}
			if !tt.valid && !hasType(state.Errors, TypeUnknownRole) {
				t.Fatalf("expected %s error, got %+v", TypeUnknownRole, state.Errors)
			}
		})
	}
}

func TestValidatePlayerCountBounds(t *testing.T) {
	for _, players := range []int{0, -3, DefaultMaxPlayers + 1} {
		state := ValidateRoleConfiguration(RoleConfiguration{}, players)
		if !hasType(state.Errors, TypePlayerCount) {
			t.Fatalf("players=%d: expected %s error, got %+v", players, TypePlayerCount, state.Errors)
		}
	}

	state := NewValidator(nil, WithMaxPlayers(8)).Validate(RoleConfiguration{RoleMafia: 1}, 9)
	if !hasType(state.Errors, TypePlayerCount) {
		t.Fatalf("expected custom max to apply, got %+v", state.Errors)
	}
}

func TestValidateMinimumVillagerThreshold(t *testing.T) {
	cfg := RoleConfiguration{RoleMafia: 2}

	state := NewValidator(nil, WithMinimumVillagers(3)).Validate(cfg, 4)
	if !state.IsValid || !hasType(state.Warnings, TypeLowVillagers) {
		t.Fatalf("expected %s warning, got %+v", TypeLowVillagers, state.Warnings)
	}

	state = NewValidator(nil).Validate(cfg, 4)
	if hasType(state.Warnings, TypeLowVillagers) {
		t.Fatalf("default threshold should not warn with 2 villagers, got %+v", state.Warnings)
	}
}

func TestValidatorRunsAppendedRules(t *testing.T) {
	calls := 0
	custom := RuleFunc(func(cfg RoleConfiguration, totalPlayers int, reg *Registry) []ValidationResult {
		calls++
		if totalPlayers%2 == 0 {
			return nil
		}
		return []ValidationResult{{Severity: SeverityInfo, Type: "ODD_TABLE", Message: "odd table"}}
	})

	base := NewValidator(nil)
	v := base.WithRules(custom)

	state := v.Validate(RoleConfiguration{RoleMafia: 1}, 7)
	if calls != 1 {
		t.Fatalf("expected custom rule to run once, ran %d times", calls)
	}
	if len(state.Infos) != 1 || state.Infos[0].Type != "ODD_TABLE" {
		t.Fatalf("expected custom info, got %+v", state.Infos)
	}
	if state.RequiresConfirmation {
		t.Fatal("infos must not require confirmation")
	}

	base.Validate(RoleConfiguration{RoleMafia: 1}, 7)
	if calls != 1 {
		t.Fatal("WithRules must not change the original validator")
	}
}

func TestValidateIsPure(t *testing.T) {
	cfg := RoleConfiguration{RoleMafia: 3, RoleDoctor: 1}
	before := cfg.Clone()

	first := ValidateRoleConfiguration(cfg, 6)
	second := ValidateRoleConfiguration(cfg, 6)

	if !reflect.DeepEqual(cfg, before) {
		t.Fatalf("configuration was modified: %v", cfg)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated validation differed:\n%+v\n%+v", first, second)
	}
}

// TestValidateWithinBoundsIsValid sweeps every in-range configuration up to
// the maximum table size.
func TestValidateWithinBoundsIsValid(t *testing.T) {
	for players := 1; players <= DefaultMaxPlayers; players++ {
		for mafia := 0; mafia <= 10; mafia++ {
			for police := 0; police <= 2; police++ {
				for doctor := 0; doctor <= 2; doctor++ {
					cfg := RoleConfiguration{RoleMafia: mafia, RolePolice: police, RoleDoctor: doctor}
					state := ValidateRoleConfiguration(cfg, players)

					if cfg.Total() <= players {
						if !state.IsValid {
							t.Fatalf("players=%d cfg=%v: expected valid, got %+v", players, cfg, state.Errors)
						}
						continue
					}
					if state.IsValid || !hasType(state.Errors, TypeTotalRoleCount) {
						t.Fatalf("players=%d cfg=%v: expected %s error, got %+v", players, cfg, TypeTotalRoleCount, state.Errors)
					}
				}
			}
		}
	}
}
