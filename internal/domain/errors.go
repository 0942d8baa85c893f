package domain

import "errors"

// Common errors
var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid id")
)

// Editing-session precondition errors. These are rejected locally, before any
// persistence call is issued.
var (
	ErrNoUserSelected    = errors.New("no client selected")
	ErrNoWorkoutSelected = errors.New("no workout selected")
	ErrNoDraggedExercise = errors.New("no exercise is being dragged")
	ErrNoPendingDelete   = errors.New("no delete awaiting confirmation")
	ErrWorkoutOwnership  = errors.New("workout does not belong to the selected client")
)

// ErrStaleContext marks a fetch or confirmation that resolved after its
// selection context was replaced. Discarded silently, never shown to the coach.
var ErrStaleContext = errors.New("stale selection context")
