package storage

import "errors"

// Expected business outcomes. Handlers match these with errors.Is and turn
// them into specific replies; anything else is a storage failure.
var (
	ErrNotFound       = errors.New("record not found")
	ErrCategoryExists = errors.New("category already exists")
	ErrGoalExists     = errors.New("goal already exists")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrInvalidKind    = errors.New("unknown transaction kind")
	ErrGoalCompleted  = errors.New("goal already completed")
)
