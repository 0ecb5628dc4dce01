/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"log"
	"time"
)

const logDate string = `2006-01-02T15:04:05.000-07:00`

var (
	ErrInvalidConfiguration = errors.New("role configuration is invalid")
	ErrNoPlayers            = errors.New("player count or names are required")
	ErrAborted              = errors.New("aborted")
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}
