package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Quest errors
	ErrMsgQuestNotFound  = "quest not found"
	ErrMsgLevelLocked    = "quest is level locked"
	ErrMsgEmptyQuestText = "quest text is empty"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgItemNotFound      = "item not found"
	ErrMsgNoBoxes           = "no boxes to open"

	// Daily gift errors
	ErrMsgAlreadyClaimed = "daily gift already claimed"

	// Profile errors
	ErrMsgProfileNotFound = "profile not found"
	ErrMsgInvalidPin      = "pin must be exactly 4 digits"
	ErrMsgPinMismatch     = "pin does not match"

	// Storage errors
	ErrMsgDocumentNotFound = "document not found"
	ErrMsgStorageFailure   = "storage failure"

	// Reward pool errors
	ErrMsgEmptyPool           = "reward pool is empty"
	ErrMsgInvalidProbability  = "invalid reward probability"
	ErrMsgUnknownRarity       = "unknown rarity"
	ErrMsgUnknownMinigameMode = "unknown minigame mode"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Quest errors
	ErrQuestNotFound  = errors.New(ErrMsgQuestNotFound)
	ErrLevelLocked    = errors.New(ErrMsgLevelLocked)
	ErrEmptyQuestText = errors.New(ErrMsgEmptyQuestText)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrNoBoxes           = errors.New(ErrMsgNoBoxes)

	// Daily gift errors
	ErrAlreadyClaimed = errors.New(ErrMsgAlreadyClaimed)

	// Profile errors
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)
	ErrInvalidPin      = errors.New(ErrMsgInvalidPin)
	ErrPinMismatch     = errors.New(ErrMsgPinMismatch)

	// Storage errors
	ErrDocumentNotFound = errors.New(ErrMsgDocumentNotFound)
	ErrStorageFailure   = errors.New(ErrMsgStorageFailure)

	// Reward pool errors
	ErrEmptyPool           = errors.New(ErrMsgEmptyPool)
	ErrInvalidProbability  = errors.New(ErrMsgInvalidProbability)
	ErrUnknownRarity       = errors.New(ErrMsgUnknownRarity)
	ErrUnknownMinigameMode = errors.New(ErrMsgUnknownMinigameMode)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// LevelLockedError carries the level a quest requires
type LevelLockedError struct {
	Required int
	Current  int
}

func (e *LevelLockedError) Error() string {
	return fmt.Sprintf("%s: level %d required, current level %d", ErrMsgLevelLocked, e.Required, e.Current)
}

// Is allows errors.Is(err, ErrLevelLocked)
func (e *LevelLockedError) Is(target error) bool {
	return target == ErrLevelLocked
}

// InsufficientFundsError carries the price and the balance at the time of purchase
type InsufficientFundsError struct {
	Cost    int
	Balance int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: cost %d, balance %d", ErrMsgInsufficientFunds, e.Cost, e.Balance)
}

// Is allows errors.Is(err, ErrInsufficientFunds)
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
