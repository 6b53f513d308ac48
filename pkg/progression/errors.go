package progression

import "errors"

var (
	// ErrInvalidInput indicates a negative or malformed experience/stat delta.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCategory indicates a skill category outside the fixed enumeration.
	ErrUnknownCategory = errors.New("unknown skill category")

	// ErrUnknownStat indicates a lifetime counter outside the fixed enumeration.
	ErrUnknownStat = errors.New("unknown stat counter")
)
