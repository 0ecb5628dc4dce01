/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Seednode/mafia/games/mafia"
)

const (
	commandReset  = "reset"
	commandRedeal = "redeal"
)

// prompter reads one answer per line. It is the only input the play loop
// has, so every prompt is a point where the device changes hands.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) ask(format string, args ...any) (string, error) {
	fmt.Fprintf(p.out, format, args...)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// collectNames asks for each player's name until a non-blank one is given.
func collectNames(p *prompter, total int) ([]string, error) {
	names := make([]string, 0, total)
	for len(names) < total {
		name, err := p.ask("Name of player %d: ", len(names)+1)
		if err != nil {
			return nil, err
		}
		if name == "" {
			p.say("Names cannot be blank.")
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func confirmWarnings(p *prompter, state mafia.AggregatedValidationState) (bool, error) {
	for _, w := range state.Warnings {
		p.say("warning: %s", w.Message)
	}
	answer, err := p.ask("Deal anyway? [y/N]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// revealAll walks every player through open, reveal and close. It returns
// true when someone asked to reset partway through.
func revealAll(cfg *Config, p *prompter, s *mafia.Session) (bool, error) {
	for !s.Complete() {
		player, _ := s.CurrentPlayer()

		answer, err := p.ask("\nPass the device to %s and press Enter (or type %q): ", player.Name, commandReset)
		if err != nil {
			return false, err
		}
		if answer == commandReset {
			return true, nil
		}

		if err := s.OpenReveal(player.Index); err != nil {
			logf(cfg, "REVEAL: open %d ignored: %v", player.Index, err)
			continue
		}

		if _, err := p.ask("%s, make sure nobody else can see the screen, then press Enter: ", player.Name); err != nil {
			return false, err
		}
		if err := s.ConfirmReveal(); err != nil {
			logf(cfg, "REVEAL: confirm %d ignored: %v", player.Index, err)
		}

		p.say("You are: %s", player.Role.Name)
		if player.Role.Description != "" {
			p.say("%s", player.Role.Description)
		}

		if _, err := p.ask("Press Enter to hide your role: "); err != nil {
			return false, err
		}
		if err := s.CloseDialog(); err != nil {
			logf(cfg, "REVEAL: close %d ignored: %v", player.Index, err)
		}

		p.say("%s", strings.Repeat("-", 40))
		logf(cfg, "REVEAL: player %d of %d done", player.Index+1, len(s.Assignment().Players))
	}
	return false, nil
}

func runPlay(cfg *Config, p *prompter) error {
	total := cfg.totalPlayers()
	if total == 0 {
		return ErrNoPlayers
	}

	names := cfg.names
	if len(names) == 0 {
		var err error
		if names, err = collectNames(p, total); err != nil {
			return err
		}
	}

	roles := cfg.roleConfiguration()
	s := cfg.session()

	state := s.Validate(roles, total)
	if !state.IsValid {
		printValidation(p.out, state)
		return ErrInvalidConfiguration
	}

	confirmed := cfg.yes
	if state.RequiresConfirmation && !confirmed {
		ok, err := confirmWarnings(p, state)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
		confirmed = true
	}

	for {
		a, err := s.Allocate(roles, total, names, confirmed)
		if err != nil {
			return err
		}

		logf(cfg, "PLAY: assignment %s dealt to %d players", a.ID, len(a.Players))
		p.say("Roles dealt: %s.", summarize(a))

		restart, err := revealAll(cfg, p, s)
		if err != nil {
			return err
		}

		if !restart {
			answer, err := p.ask("\nEveryone has seen their role. Type %q to deal again, or press Enter to finish: ", commandRedeal)
			if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
				return err
			}
			if answer != commandRedeal {
				return nil
			}
		}

		if err := s.Reset(); err != nil {
			return err
		}
		logf(cfg, "PLAY: session reset")
	}
}
