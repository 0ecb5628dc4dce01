/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Seednode/mafia/games/mafia"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRoles(w io.Writer, roles []mafia.RoleDefinition) {
	for _, r := range roles {
		c := r.Constraints
		fmt.Fprintf(w, "%-10s %-10s %-8s %d..%d (default %d)\n", r.ID, r.Name, r.Team, c.Min, c.Max, c.Default)
		if r.Description != "" {
			fmt.Fprintf(w, "           %s\n", r.Description)
		}
	}
}

func printResults(w io.Writer, label string, results []mafia.ValidationResult) {
	for _, r := range results {
		fmt.Fprintf(w, "%s: %s [%s]\n", label, r.Message, r.Type)
	}
}

func printValidation(w io.Writer, state mafia.AggregatedValidationState) {
	printResults(w, "error", state.Errors)
	printResults(w, "warning", state.Warnings)
	printResults(w, "info", state.Infos)

	switch {
	case !state.IsValid:
		fmt.Fprintln(w, "Configuration is invalid.")
	case state.RequiresConfirmation:
		fmt.Fprintf(w, "Configuration is valid with warnings (%d villagers). Confirmation required.\n", state.VillagerCount)
	default:
		fmt.Fprintf(w, "Configuration is valid (%d villagers).\n", state.VillagerCount)
	}
}

func summarize(a *mafia.Assignment) string {
	h := a.Histogram()
	parts := make([]string, 0, len(h))
	for _, def := range mafia.DefaultRegistry().Roles() {
		if n := h[def.ID]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, def.Name))
		}
	}
	return strings.Join(parts, ", ")
}

func printAssignment(w io.Writer, a *mafia.Assignment) {
	fmt.Fprintf(w, "Assignment %s: %s\n", a.ID, summarize(a))
	for _, p := range a.Players {
		fmt.Fprintf(w, "%3d. %-20s %s\n", p.Index+1, p.Name, p.Role.Name)
	}
}
