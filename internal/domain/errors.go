package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Catalog errors
	ErrMsgItemNotFound    = "item not found"
	ErrMsgInvalidCategory = "invalid category"

	// Shop errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgAlreadyOwned      = "item already owned"
	ErrMsgNotOwned          = "item not owned"

	// Wallet errors
	ErrMsgInvalidAmount = "amount must be positive"

	// Challenge errors
	ErrMsgChallengeNotFound   = "challenge not found"
	ErrMsgChallengeIncomplete = "challenge not completed"
	ErrMsgAlreadyClaimed      = "reward already claimed"

	// Game session errors
	ErrMsgSessionNotFound = "session not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Persistence errors
	ErrMsgPersistenceUnavailable = "persistence unavailable"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Catalog errors
	ErrItemNotFound    = errors.New(ErrMsgItemNotFound)
	ErrInvalidCategory = errors.New(ErrMsgInvalidCategory)

	// Shop errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrAlreadyOwned      = errors.New(ErrMsgAlreadyOwned)
	ErrNotOwned          = errors.New(ErrMsgNotOwned)

	// Wallet errors
	ErrInvalidAmount = errors.New(ErrMsgInvalidAmount)

	// Challenge errors
	ErrChallengeNotFound   = errors.New(ErrMsgChallengeNotFound)
	ErrChallengeIncomplete = errors.New(ErrMsgChallengeIncomplete)
	ErrAlreadyClaimed      = errors.New(ErrMsgAlreadyClaimed)

	// Game session errors
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Persistence errors. Wrapped around driver errors when the store
	// cannot be reached, so callers can distinguish outages from rule
	// violations.
	ErrPersistenceUnavailable = errors.New(ErrMsgPersistenceUnavailable)
)
