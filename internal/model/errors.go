package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomExists       = errors.New("room already exists")
	ErrRoomFull         = errors.New("room is full")
	ErrAlreadyInRoom    = errors.New("player is already in room")
	ErrNotInRoom        = errors.New("player is not in room")
	ErrNotHost          = errors.New("player is not the host")
	ErrInvalidState     = errors.New("action not valid for current room status")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrInvalidSettings  = errors.New("invalid settings")

	// Concurrency errors
	ErrVersionConflict = errors.New("room version conflict")
	ErrConflict        = errors.New("transition retries exhausted")

	// Turn submission errors
	ErrNotYourTurn     = errors.New("not this player's turn")
	ErrPatternMismatch = errors.New("word does not match the pattern")
	ErrWordTooShort    = errors.New("word is too short")
	ErrInvalidWord     = errors.New("word is not in the lexicon")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Lexicon errors
	ErrLexiconNotLoaded = errors.New("lexicon not loaded")

	// Transient wraps store/bus I/O failures that are safe to retry
	ErrTransient = errors.New("transient backend error")
)
