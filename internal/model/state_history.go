package model

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("no model state to restore")

// OutOfRangeError is returned by undo or redo when the cursor is at an end.
type OutOfRangeError struct {
	Op     string
	Cursor int
	Len    int
}

func (e *OutOfRangeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s (state %d of %d)", e.Op, ErrOutOfRange.Error(), e.Cursor+1, e.Len)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// ModelState is a checkpoint: a private copy of the address book and the
// filter that was active when it was taken. It is never mutated.
type ModelState struct {
	book      *AddressBook
	predicate Predicate
}

// NewModelState copies book so later edits to it do not leak into the state.
func NewModelState(book *AddressBook, predicate Predicate) ModelState {
	if predicate == nil {
		predicate = ShowAll
	}
	return ModelState{book: book.Snapshot(), predicate: predicate}
}

// AddressBook returns a copy of the saved address book.
func (s ModelState) AddressBook() *AddressBook { return s.book.Snapshot() }

// Predicate returns the saved filter.
func (s ModelState) Predicate() Predicate { return s.predicate }

// StateHistory is the list of checkpoints plus a cursor on the current one.
// It always holds at least the initial state and 0 <= cursor < len(states).
type StateHistory struct {
	states []ModelState
	cursor int
}

// NewStateHistory starts a history at initial.
func NewStateHistory(initial ModelState) *StateHistory {
	return &StateHistory{states: []ModelState{initial}}
}

// Commit drops every state after the cursor, appends state and moves onto it.
func (h *StateHistory) Commit(state ModelState) {
	clear(h.states[h.cursor+1:])
	h.states = append(h.states[:h.cursor+1], state)
	h.cursor++
}

// Undo moves the cursor back and returns the state to restore.
func (h *StateHistory) Undo() (ModelState, error) {
	if !h.CanUndo() {
		return ModelState{}, &OutOfRangeError{Op: "undo", Cursor: h.cursor, Len: len(h.states)}
	}
	h.cursor--
	return h.states[h.cursor], nil
}

// Redo moves the cursor forward and returns the state to restore.
func (h *StateHistory) Redo() (ModelState, error) {
	if !h.CanRedo() {
		return ModelState{}, &OutOfRangeError{Op: "redo", Cursor: h.cursor, Len: len(h.states)}
	}
	h.cursor++
	return h.states[h.cursor], nil
}

func (h *StateHistory) CanUndo() bool { return h.cursor > 0 }

func (h *StateHistory) CanRedo() bool { return h.cursor < len(h.states)-1 }

// Len is the number of stored states.
func (h *StateHistory) Len() int { return len(h.states) }

// Cursor is the index of the current state.
func (h *StateHistory) Cursor() int { return h.cursor }

// Current returns the state under the cursor.
func (h *StateHistory) Current() ModelState { return h.states[h.cursor] }
