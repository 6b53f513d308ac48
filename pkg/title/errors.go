package title

import "errors"

var (
	// ErrInvalidSelection indicates an attempt to activate a title that is not earned.
	ErrInvalidSelection = errors.New("title not earned")

	// ErrUnknownConditionType indicates a condition type with no registered factory.
	ErrUnknownConditionType = errors.New("unknown condition type")

	// ErrInvalidCondition indicates a condition whose parameters cannot be used.
	ErrInvalidCondition = errors.New("invalid condition configuration")

	// ErrUnknownPolicy indicates an active-title policy name that is not recognised.
	ErrUnknownPolicy = errors.New("unknown active title policy")
)
