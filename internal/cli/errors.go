// Package cli implements the command-line interface.
package cli

import "errors"

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Corpus errors
	ErrCorpusNotFound     = "CORPUS_NOT_FOUND"
	ErrCorpusNotSpecified = "CORPUS_NOT_SPECIFIED"
	ErrConfigInvalid      = "CONFIG_INVALID"

	// Page errors
	ErrPageNotFound = "PAGE_NOT_FOUND"
	ErrPageExists   = "PAGE_EXISTS"
	ErrNameNotFound = "NAME_NOT_FOUND"
	ErrNameInvalid  = "NAME_INVALID"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Build errors
	ErrMergeConflict = "MERGE_CONFLICT"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"
)

// Warning codes for non-fatal issues.
const (
	WarnPageSkipped = "PAGE_SKIPPED"
)

// errSilent signals a failure that has already been reported (as a JSON
// envelope or a printed report); Execute exits non-zero without printing
// anything further.
var errSilent = errors.New("already reported")
