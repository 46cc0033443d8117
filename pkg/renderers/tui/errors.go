package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrQuit is returned by Session.Next when the user picks Quit.
	ErrQuit = errors.New("tui: quit")
)
