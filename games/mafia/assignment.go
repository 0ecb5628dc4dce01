/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mafia

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Player is one seat at the table. Index is the reveal order.
type Player struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Role     RoleDefinition `json:"role"`
	Index    int            `json:"index"`
	Revealed bool           `json:"revealed"`
}

// Assignment is one shuffled deal of roles to players.
type Assignment struct {
	ID            string    `json:"id"`
	Players       []Player  `json:"players"`
	CreatedAt     time.Time `json:"createdAt"`
	MafiaCount    int       `json:"mafiaCount"`
	VillagerCount int       `json:"villagerCount"`
}

// Clone returns a copy that shares nothing with a.
func (a *Assignment) Clone() *Assignment {
	if a == nil {
		return nil
	}
	out := *a
	out.Players = make([]Player, len(a.Players))
	copy(out.Players, a.Players)
	return &out
}

// Histogram counts players per role id.
func (a *Assignment) Histogram() map[string]int {
	h := make(map[string]int)
	for _, p := range a.Players {
		h[p.Role.ID]++
	}
	return h
}

// Assigner deals roles for valid configurations.
type Assigner struct {
	validator *Validator
	random    RandomSource
	now       func() time.Time
}

// NewAssigner returns an assigner that re-checks configurations with v and
// shuffles with src. Nil arguments select the defaults.
func NewAssigner(v *Validator, src RandomSource) *Assigner {
	if v == nil {
		v = defaultValidator
	}
	if src == nil {
		src = CryptoSource{}
	}
	return &Assigner{
		validator: v,
		random:    src,
		now:       time.Now,
	}
}

// Assign deals cfg to names. It re-runs validation and refuses any
// configuration with errors. Warnings are not checked here; confirming them
// is the caller's job.
func (a *Assigner) Assign(cfg RoleConfiguration, totalPlayers int, names []string) (*Assignment, error) {
	snapshot := cfg.Clone()

	state := a.validator.Validate(snapshot, totalPlayers)
	if state.HasErrors {
		return nil, &InvalidConfigurationError{Errors: state.Errors}
	}

	if len(names) != totalPlayers {
		return nil, fmt.Errorf("%w: got %d names for %d players", ErrInput, len(names), totalPlayers)
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: name %d is blank", ErrInput, i+1)
		}
	}

	reg := a.validator.Registry()

	roles := make([]RoleDefinition, 0, totalPlayers)
	mafia := 0
	for _, def := range reg.SpecialRoles() {
		for range snapshot[def.ID] {
			roles = append(roles, def)
		}
		if def.Team == TeamMafia {
			mafia += snapshot[def.ID]
		}
	}
	villagers := totalPlayers - len(roles)
	for range villagers {
		roles = append(roles, reg.DefaultRole())
	}

	Shuffle(roles, a.random)

	players := make([]Player, totalPlayers)
	for i, name := range names {
		players[i] = Player{
			ID:    uuid.NewString(),
			Name:  name,
			Role:  roles[i],
			Index: i,
		}
	}

	return &Assignment{
		ID:            uuid.NewString(),
		Players:       players,
		CreatedAt:     a.now(),
		MafiaCount:    mafia,
		VillagerCount: villagers,
	}, nil
}

var defaultAssigner = NewAssigner(defaultValidator, CryptoSource{})

// AssignRoles deals cfg to names using the built-in catalog and crypto/rand.
func AssignRoles(cfg RoleConfiguration, totalPlayers int, names []string) (*Assignment, error) {
	return defaultAssigner.Assign(cfg, totalPlayers, names)
}
