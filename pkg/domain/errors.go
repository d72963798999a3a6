package domain

import "errors"

// ErrDocumentNotFound is returned when a document ID cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrStateNotFound is returned by editing commands that reference an unknown state.
var ErrStateNotFound = errors.New("state not found")

// ErrTransitionNotFound is returned by editing commands that reference an unknown transition.
var ErrTransitionNotFound = errors.New("transition not found")

// ErrInvalidDocument is returned when a document's records are inconsistent,
// for example two states sharing an editor key.
var ErrInvalidDocument = errors.New("invalid document")
