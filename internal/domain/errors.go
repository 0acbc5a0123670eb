package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgNotAuthenticated = "not authenticated"

	ErrMsgProfileNotFound = "profile not found"
	ErrMsgItemNotFound    = "item not found"
	ErrMsgQuestNotFound   = "quest not found"
	ErrMsgSetNotFound     = "cosmetic set not found"

	ErrMsgInsufficientEntrobucks = "insufficient entrobucks"
	ErrMsgAlreadyOwned           = "item already owned"
	ErrMsgNotOwned               = "item not owned"
	ErrMsgNotEquippable          = "item is not equippable"
	ErrMsgNotAModifier           = "item is not a usable modifier"

	ErrMsgQuestCompleted      = "quest already completed"
	ErrMsgCompletionInFlight  = "completion already in flight"
	ErrMsgSetAlreadyClaimed   = "set bonus already claimed"
	ErrMsgSetIncomplete       = "cosmetic set is incomplete"
	ErrMsgSnapshotLoadFailed  = "state load failed"
	ErrMsgInvalidInput        = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Auth: silently short-circuits mutating operations, never surfaced as a fault
	ErrNotAuthenticated = errors.New(ErrMsgNotAuthenticated)

	// Lookup errors
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)
	ErrItemNotFound    = errors.New(ErrMsgItemNotFound)
	ErrQuestNotFound   = errors.New(ErrMsgQuestNotFound)
	ErrSetNotFound     = errors.New(ErrMsgSetNotFound)

	// Business-rule rejections: expected, returned as typed results, never panics
	ErrInsufficientEntrobucks = errors.New(ErrMsgInsufficientEntrobucks)
	ErrAlreadyOwned           = errors.New(ErrMsgAlreadyOwned)
	ErrNotOwned               = errors.New(ErrMsgNotOwned)
	ErrNotEquippable          = errors.New(ErrMsgNotEquippable)
	ErrNotAModifier           = errors.New(ErrMsgNotAModifier)

	// Quest lifecycle
	ErrQuestCompleted     = errors.New(ErrMsgQuestCompleted)
	ErrCompletionInFlight = errors.New(ErrMsgCompletionInFlight)

	// Cosmetic sets
	ErrSetAlreadyClaimed = errors.New(ErrMsgSetAlreadyClaimed)
	ErrSetIncomplete     = errors.New(ErrMsgSetIncomplete)

	// Snapshot loading
	ErrSnapshotLoadFailed = errors.New(ErrMsgSnapshotLoadFailed)

	// Validation
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
