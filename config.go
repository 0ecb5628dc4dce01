/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Seednode/mafia/games/mafia"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	configFile   string
	json         bool
	maxPlayers   int
	minVillagers int
	names        []string
	players      int
	roles        map[string]int
	verbose      bool
	version      bool
	yes          bool
}

func (c *Config) validate() error {
	if c.maxPlayers < 1 {
		return fmt.Errorf("invalid max players (must be at least 1): %d", c.maxPlayers)
	}
	if c.minVillagers < 0 {
		return fmt.Errorf("invalid minimum villagers (must be non-negative): %d", c.minVillagers)
	}
	if c.players < 0 || c.players > c.maxPlayers {
		return fmt.Errorf("invalid player count (must be between 0-%d inclusive, 0 counts --names): %d", c.maxPlayers, c.players)
	}
	for i, name := range c.names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("player name %d is blank", i+1)
		}
	}
	if c.players > 0 && len(c.names) > 0 && c.players != len(c.names) {
		return fmt.Errorf("--players is %d but %d names were given", c.players, len(c.names))
	}
	return nil
}

// totalPlayers is --players, or the number of names when only those are given.
func (c *Config) totalPlayers() int {
	if c.players == 0 {
		return len(c.names)
	}
	return c.players
}

// roleConfiguration returns --role counts with ids upper-cased, or the
// catalog defaults when none were given.
func (c *Config) roleConfiguration() mafia.RoleConfiguration {
	if len(c.roles) == 0 {
		return mafia.DefaultRegistry().DefaultConfiguration()
	}
	cfg := make(mafia.RoleConfiguration, len(c.roles))
	for id, n := range c.roles {
		cfg[strings.ToUpper(strings.TrimSpace(id))] += n
	}
	return cfg
}

func (c *Config) validator() *mafia.Validator {
	return mafia.NewValidator(mafia.DefaultRegistry(),
		mafia.WithMinimumVillagers(c.minVillagers),
		mafia.WithMaxPlayers(c.maxPlayers),
	)
}

func (c *Config) session() *mafia.Session {
	return mafia.NewSession(mafia.NewAssigner(c.validator(), mafia.CryptoSource{}))
}

// flagValue renders a viper value in the form pflag's Set expects.
func flagValue(value any) string {
	switch v := value.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, fmt.Sprint(e))
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(v, ",")
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v[k]))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// applyViper fills every flag the user did not set from the environment or
// the config file.
func applyViper(v *viper.Viper, cfg *Config, fs *pflag.FlagSet) error {
	if cfg.configFile != "" {
		v.SetConfigFile(cfg.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfg.configFile, err)
		}
	}

	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			if err := fs.Set(f.Name, flagValue(v.Get(f.Name))); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
			}
		}
	})

	return errors.Join(errs...)
}

func normalizeFlags(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
}

func tableFlags(cfg *Config, fs *pflag.FlagSet) {
	normalizeFlags(fs)

	fs.IntVarP(&cfg.players, "players", "n", 0, "number of players, defaults to the number of names (env: MAFIA_PLAYERS)")
	fs.StringToIntVarP(&cfg.roles, "role", "r", nil, "role counts as ID=COUNT, e.g. MAFIA=2,POLICE=1 (env: MAFIA_ROLE)")
}

func dealFlags(cfg *Config, fs *pflag.FlagSet) {
	tableFlags(cfg, fs)

	fs.StringSliceVar(&cfg.names, "names", nil, "comma-separated player names in reveal order (env: MAFIA_NAMES)")
	fs.BoolVarP(&cfg.yes, "yes", "y", false, "accept configuration warnings without asking (env: MAFIA_YES)")
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MAFIA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "mafia",
		Short:         "Deal hidden Mafia roles and pass one device around to reveal them.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyViper(v, cfg, cmd.Flags()); err != nil {
				return err
			}
			return cfg.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	fs := cmd.PersistentFlags()
	normalizeFlags(fs)

	fs.StringVarP(&cfg.configFile, "config", "c", "", "path to a config file (yaml, toml or json) (env: MAFIA_CONFIG)")
	fs.BoolVar(&cfg.json, "json", false, "print results as json (env: MAFIA_JSON)")
	fs.IntVar(&cfg.maxPlayers, "max-players", mafia.DefaultMaxPlayers, "largest table allowed (env: MAFIA_MAX_PLAYERS)")
	fs.IntVar(&cfg.minVillagers, "min-villagers", mafia.DefaultMinimumVillagers, "warn below this many villagers (env: MAFIA_MIN_VILLAGERS)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: MAFIA_VERBOSE)")
	cmd.Flags().BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: MAFIA_VERSION)")

	if err := v.BindEnv("config"); err == nil && cfg.configFile == "" {
		cfg.configFile = v.GetString("config")
	}

	cmd.AddCommand(
		newRolesCmd(cfg),
		newValidateCmd(cfg),
		newDealCmd(cfg),
		newPlayCmd(cfg),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("mafia v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
