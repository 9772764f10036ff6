package tools

import "errors"

var (
	// ErrEmptyCommand is returned when a tool is configured with no
	// command to run.
	ErrEmptyCommand = errors.New("tools: empty command")

	// ErrToolLaunch is returned when an external collaborator cannot be
	// started at all (missing binary, permission failure). A tool that
	// starts and exits non-zero is not a launch error.
	ErrToolLaunch = errors.New("tools: failed to launch tool")

	// ErrMalformedToolReport is returned when the cleanup mutator runs but
	// its report output cannot be parsed.
	ErrMalformedToolReport = errors.New("tools: malformed tool report")
)
