package model

import "slices"

// CommandHistory stores raw command inputs. It is unbounded and keeps duplicates.
type CommandHistory struct {
	inputs []string // oldest first
}

// NewCommandHistory returns an empty history.
func NewCommandHistory() *CommandHistory { return &CommandHistory{} }

// Record adds input as the most recent entry.
func (h *CommandHistory) Record(input string) {
	h.inputs = append(h.inputs, input)
}

// All returns the inputs, most recent first.
func (h *CommandHistory) All() []string {
	out := slices.Clone(h.inputs)
	slices.Reverse(out)
	return out
}

// Len reports the number of recorded inputs.
func (h *CommandHistory) Len() int { return len(h.inputs) }
