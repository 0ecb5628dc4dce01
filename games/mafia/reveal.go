/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mafia

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Phase is the reveal dialog state.
type Phase string

const (
	PhaseWaiting        Phase = "WAITING"
	PhaseOpenUnrevealed Phase = "OPEN_UNREVEALED"
	PhaseOpenRevealed   Phase = "OPEN_REVEALED"
)

// RevealState is a snapshot of reveal progress.
type RevealState struct {
	CurrentPlayerIndex    int  `json:"currentPlayerIndex"`
	OpenDialogPlayerIndex *int `json:"openDialogPlayerIndex"`
	IsProcessing          bool `json:"isProcessing"`
}

// Session owns the active assignment and walks its players through the
// reveal one at a time. Every mutating method takes the same in-flight
// guard, so a duplicate call racing an earlier one is rejected with ErrBusy
// and a repeated call after it finds the state already moved on.
type Session struct {
	processing atomic.Bool

	mu         sync.Mutex
	assigner   *Assigner
	assignment *Assignment
	current    int
	open       int
}

// NewSession returns an empty session. A nil assigner uses the built-in
// catalog and crypto/rand.
func NewSession(assigner *Assigner) *Session {
	if assigner == nil {
		assigner = defaultAssigner
	}
	return &Session{
		assigner: assigner,
		open:     -1,
	}
}

func (s *Session) begin() error {
	if !s.processing.CompareAndSwap(false, true) {
		return ErrBusy
	}
	s.mu.Lock()
	return nil
}

func (s *Session) end() {
	s.mu.Unlock()
	s.processing.Store(false)
}

func (s *Session) install(a *Assignment) {
	s.assignment = a
	s.current = 0
	s.open = -1
}

// Validate checks cfg with the session's validator without changing state.
func (s *Session) Validate(cfg RoleConfiguration, totalPlayers int) AggregatedValidationState {
	return s.assigner.validator.Validate(cfg, totalPlayers)
}

// Allocate validates cfg, requires confirmed when the configuration carries
// warnings, deals a fresh assignment and starts its reveal. Any previous
// assignment is discarded.
func (s *Session) Allocate(cfg RoleConfiguration, totalPlayers int, names []string, confirmed bool) (*Assignment, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	state := s.assigner.validator.Validate(cfg, totalPlayers)
	if state.HasErrors {
		return nil, &InvalidConfigurationError{Errors: state.Errors}
	}
	if state.RequiresConfirmation && !confirmed {
		return nil, fmt.Errorf("%w: %d warnings", ErrConfirmationRequired, len(state.Warnings))
	}

	a, err := s.assigner.Assign(cfg, totalPlayers, names)
	if err != nil {
		return nil, err
	}

	s.install(a)

	return a.Clone(), nil
}

// Start installs a copy of a and resets reveal progress.
func (s *Session) Start(a *Assignment) error {
	if a == nil {
		return ErrNoAssignment
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	c := a.Clone()
	for i := range c.Players {
		if c.Players[i].Index != i {
			return fmt.Errorf("%w: player %q at position %d has index %d", ErrInput, c.Players[i].Name, i, c.Players[i].Index)
		}
		c.Players[i].Revealed = false
	}
	s.install(c)

	return nil
}

// OpenReveal opens the dialog for the player at index. Only the next
// unrevealed player may be opened, and only when no dialog is open.
func (s *Session) OpenReveal(index int) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	switch {
	case s.assignment == nil:
		return ErrNoAssignment
	case s.open >= 0:
		return ErrAlreadyOpen
	case index < 0 || index >= len(s.assignment.Players):
		return fmt.Errorf("%w: no player %d of %d", ErrOutOfOrderReveal, index, len(s.assignment.Players))
	case s.assignment.Players[index].Revealed:
		return ErrAlreadyRevealed
	case index != s.current:
		return fmt.Errorf("%w: want %d, got %d", ErrOutOfOrderReveal, s.current, index)
	}

	s.open = index

	return nil
}

// ConfirmReveal shows the open player's role.
func (s *Session) ConfirmReveal() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if s.assignment == nil {
		return ErrNoAssignment
	}
	if s.open < 0 {
		return ErrNotOpen
	}

	p := &s.assignment.Players[s.open]
	if p.Revealed {
		return ErrAlreadyRevealed
	}
	p.Revealed = true

	return nil
}

// CloseDialog closes a revealed dialog and moves on to the next player.
func (s *Session) CloseDialog() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if s.assignment == nil {
		return ErrNoAssignment
	}
	if s.open < 0 {
		return ErrNotOpen
	}
	if !s.assignment.Players[s.open].Revealed {
		return ErrNotRevealed
	}

	s.open = -1
	s.current++

	return nil
}

// Reset discards the assignment and all reveal progress.
func (s *Session) Reset() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.install(nil)

	return nil
}

// State returns the current reveal progress.
func (s *Session) State() RevealState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := RevealState{
		CurrentPlayerIndex: s.current,
		IsProcessing:       s.processing.Load(),
	}
	if s.open >= 0 {
		open := s.open
		state.OpenDialogPlayerIndex = &open
	}
	return state
}

// Phase reports where the dialog is in its open/reveal/close cycle.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.assignment == nil || s.open < 0:
		return PhaseWaiting
	case s.assignment.Players[s.open].Revealed:
		return PhaseOpenRevealed
	default:
		return PhaseOpenUnrevealed
	}
}

// Assignment returns a copy of the active assignment, or nil.
func (s *Session) Assignment() *Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.assignment.Clone()
}

// CurrentPlayer returns the next player to reveal.
func (s *Session) CurrentPlayer() (Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.assignment == nil || s.current >= len(s.assignment.Players) {
		return Player{}, false
	}
	return s.assignment.Players[s.current], true
}

// Complete reports whether every player has seen their role.
func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.assignment != nil && s.current >= len(s.assignment.Players)
}
