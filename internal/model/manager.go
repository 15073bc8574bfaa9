// Package model holds the in-memory address book and everything that
// derives from it: the filtered and sorted view the front end displays,
// the raw command history, and the checkpoints behind undo and redo.
//
// Manager is the only entry point. It is not safe for concurrent use; the
// front end calls it from a single goroutine and observers are notified
// synchronously on that goroutine.
package model

import (
	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/pkg/logger"
	"github.com/doeshing/addrbook/internal/ports"
)

// Manager owns the address book, its view, the command history, the
// checkpoint history and the user preferences.
type Manager struct {
	book   *AddressBook
	prefs  domain.UserPrefs
	view   *PersonView
	inputs *CommandHistory
	states *StateHistory
	hub    *observerHub
	logger ports.Logger
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger routes model logging to l.
func WithLogger(l ports.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager builds a manager over a copy of snapshot. The initial
// checkpoint is the loaded content with no filter.
func NewManager(snapshot domain.AddressBookSnapshot, prefs domain.UserPrefs, opts ...Option) (*Manager, error) {
	book, err := NewAddressBookFromSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	hub := &observerHub{}
	m := &Manager{
		book:   book,
		prefs:  prefs,
		view:   newPersonView(book, hub),
		inputs: NewCommandHistory(),
		hub:    hub,
		logger: logger.Nop{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.states = NewStateHistory(NewModelState(book, ShowAll))
	m.logger.Debug("model initialised", map[string]interface{}{
		"persons": book.Len(),
		"pinned":  len(snapshot.Pinned),
	})
	return m, nil
}

// Subscribe registers o for change notifications and returns its cancel func.
func (m *Manager) Subscribe(o Observer) func() {
	return m.hub.subscribe(o)
}

//=========== User prefs ==================================================

func (m *Manager) UserPrefs() domain.UserPrefs { return m.prefs }

func (m *Manager) SetUserPrefs(prefs domain.UserPrefs) { m.prefs = prefs }

func (m *Manager) GuiSettings() domain.GuiSettings { return m.prefs.GuiSettings }

func (m *Manager) SetGuiSettings(settings domain.GuiSettings) { m.prefs.GuiSettings = settings }

func (m *Manager) AddressBookFilePath() string { return m.prefs.AddressBookFilePath }

func (m *Manager) SetAddressBookFilePath(path string) { m.prefs.AddressBookFilePath = path }

//=========== Address book ================================================

// ResetAddressBookData replaces the content with snapshot. Checkpoints are
// left alone; the caller commits if the reset should be undoable.
func (m *Manager) ResetAddressBookData(snapshot domain.AddressBookSnapshot) error {
	book, err := NewAddressBookFromSnapshot(snapshot)
	if err != nil {
		return err
	}
	m.book.ResetFrom(book)
	m.hub.notify(ChangeReset)
	return nil
}

// Snapshot exports the current content for the storage adapter.
func (m *Manager) Snapshot() domain.AddressBookSnapshot {
	return m.book.ToSnapshot()
}

// AddressBook returns an independent copy of the current content.
func (m *Manager) AddressBook() *AddressBook {
	return m.book.Snapshot()
}

// HasPerson reports whether a person with the same identity exists.
func (m *Manager) HasPerson(p domain.Person) bool {
	return m.book.Has(p)
}

// AddPerson adds p and clears any active filter so p is visible.
func (m *Manager) AddPerson(p domain.Person) error {
	if err := m.book.Add(p); err != nil {
		return err
	}
	m.view.setPredicate(ShowAll)
	m.hub.notify(ChangePersons)
	return nil
}

// DeletePerson removes the person identity-equal to p.
func (m *Manager) DeletePerson(p domain.Person) error {
	if err := m.book.Remove(p); err != nil {
		return err
	}
	m.hub.notify(ChangePersons)
	return nil
}

// SetPerson replaces target with edited.
func (m *Manager) SetPerson(target, edited domain.Person) error {
	if err := m.book.Replace(target, edited); err != nil {
		return err
	}
	m.hub.notify(ChangePersons)
	return nil
}

func (m *Manager) PinPerson(p domain.Person) error {
	if err := m.book.Pin(p); err != nil {
		return err
	}
	m.hub.notify(ChangePersons)
	return nil
}

func (m *Manager) UnpinPerson(p domain.Person) error {
	if err := m.book.Unpin(p); err != nil {
		return err
	}
	m.hub.notify(ChangePersons)
	return nil
}

//=========== View ========================================================

// FilteredPersons returns the live filtered and sorted view.
func (m *Manager) FilteredPersons() *PersonView {
	return m.view
}

// UpdateFilter replaces the view's predicate; nil means ShowAll.
func (m *Manager) UpdateFilter(predicate Predicate) {
	m.view.setPredicate(predicate)
	m.hub.notify(ChangeFilter)
}

// UpdateSort sorts the view by the given field prefixes. On error the
// previous order is kept.
func (m *Manager) UpdateSort(prefixes ...string) error {
	keys, err := ParseSortKeys(prefixes...)
	if err != nil {
		return err
	}
	m.view.keys = keys
	m.hub.notify(ChangeSort)
	return nil
}

//=========== Command history =============================================

func (m *Manager) AddPastCommandInput(input string) {
	m.inputs.Record(input)
	m.hub.notify(ChangeHistory)
}

// CommandHistory returns past inputs, most recent first.
func (m *Manager) CommandHistory() []string {
	return m.inputs.All()
}

//=========== Checkpoints =================================================

// Commit saves the current content and filter as a new checkpoint,
// discarding anything that could have been redone.
func (m *Manager) Commit() {
	m.states.Commit(NewModelState(m.book, m.view.predicate))
	m.logger.Debug("committed model state", map[string]interface{}{
		"state":  m.states.Cursor(),
		"states": m.states.Len(),
	})
	m.hub.notify(ChangeCommit)
}

// Undo restores the previous checkpoint.
func (m *Manager) Undo() error {
	state, err := m.states.Undo()
	if err != nil {
		return err
	}
	m.restore(state)
	m.logger.Debug("undid model state", map[string]interface{}{"state": m.states.Cursor()})
	m.hub.notify(ChangeUndo)
	return nil
}

// Redo restores the checkpoint that was last undone.
func (m *Manager) Redo() error {
	state, err := m.states.Redo()
	if err != nil {
		return err
	}
	m.restore(state)
	m.logger.Debug("redid model state", map[string]interface{}{"state": m.states.Cursor()})
	m.hub.notify(ChangeRedo)
	return nil
}

func (m *Manager) CanUndo() bool { return m.states.CanUndo() }

func (m *Manager) CanRedo() bool { return m.states.CanRedo() }

// StateCount returns the number of checkpoints and the current position.
func (m *Manager) StateCount() (states, cursor int) {
	return m.states.Len(), m.states.Cursor()
}

func (m *Manager) restore(state ModelState) {
	m.book.ResetFrom(state.book)
	m.view.setPredicate(state.predicate)
}
