/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"

	"github.com/Seednode/mafia/games/mafia"
	"github.com/spf13/cobra"
)

func newRolesCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the roles that can be dealt.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := mafia.DefaultRegistry().Roles()
			if cfg.json {
				return writeJSON(cmd.OutOrStdout(), roles)
			}
			printRoles(cmd.OutOrStdout(), roles)
			return nil
		},
	}
}

func newValidateCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a role configuration against a table size.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			total := cfg.totalPlayers()
			if total == 0 {
				return ErrNoPlayers
			}

			roles := cfg.roleConfiguration()
			state := cfg.validator().Validate(roles, total)

			logf(cfg, "VALIDATE: %v for %d players, %d errors, %d warnings",
				roles, total, len(state.Errors), len(state.Warnings))

			if cfg.json {
				if err := writeJSON(cmd.OutOrStdout(), state); err != nil {
					return err
				}
			} else {
				printValidation(cmd.OutOrStdout(), state)
			}

			if !state.IsValid {
				return ErrInvalidConfiguration
			}
			return nil
		},
	}

	tableFlags(cfg, cmd.Flags())

	return cmd
}

func newDealCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Deal roles once and print the full table.",
		Long:  "Deal roles once and print every player's role. Intended for a moderator; use play to pass one device around.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(cfg.names) == 0 {
				return fmt.Errorf("%w: --names is required", ErrNoPlayers)
			}

			roles := cfg.roleConfiguration()
			a, err := cfg.session().Allocate(roles, cfg.totalPlayers(), cfg.names, cfg.yes)
			switch {
			case errors.Is(err, mafia.ErrConfirmationRequired):
				return fmt.Errorf("%w (rerun with --yes to accept)", err)
			case err != nil:
				return err
			}

			logf(cfg, "DEAL: assignment %s, %d mafia, %d villagers", a.ID, a.MafiaCount, a.VillagerCount)

			if cfg.json {
				return writeJSON(cmd.OutOrStdout(), a)
			}
			printAssignment(cmd.OutOrStdout(), a)
			return nil
		},
	}

	dealFlags(cfg, cmd.Flags())

	return cmd
}

func newPlayCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Deal roles and pass the device around so each player sees only their own.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cfg, newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()))
		},
	}

	dealFlags(cfg, cmd.Flags())

	return cmd
}
