package model

import (
	"fmt"
	"slices"

	"github.com/doeshing/addrbook/internal/domain"
)

// AddressBook is the ordered collection of persons. No two persons in it
// share an identity key, and every pinned key refers to a person in it.
type AddressBook struct {
	persons []domain.Person
	pinned  map[string]struct{}
}

// NewAddressBook returns an empty address book.
func NewAddressBook() *AddressBook {
	return &AddressBook{pinned: make(map[string]struct{})}
}

// NewAddressBookFromSnapshot rebuilds an address book, rejecting duplicate
// persons and pins that name nobody.
func NewAddressBookFromSnapshot(snapshot domain.AddressBookSnapshot) (*AddressBook, error) {
	ab := NewAddressBook()
	for _, p := range snapshot.Persons {
		if err := ab.Add(p); err != nil {
			return nil, err
		}
	}
	for _, name := range snapshot.Pinned {
		i := ab.indexOfKey(domain.IdentityKey(name))
		if i < 0 {
			return nil, fmt.Errorf("pin %q: %w", name, domain.ErrPersonNotFound)
		}
		ab.pinned[ab.persons[i].Key()] = struct{}{}
	}
	return ab, nil
}

func (ab *AddressBook) indexOfKey(key string) int {
	return slices.IndexFunc(ab.persons, func(p domain.Person) bool {
		return p.Key() == key
	})
}

// Has reports whether a person with the same identity exists.
func (ab *AddressBook) Has(p domain.Person) bool {
	return ab.indexOfKey(p.Key()) >= 0
}

// Add appends p.
func (ab *AddressBook) Add(p domain.Person) error {
	if ab.Has(p) {
		return fmt.Errorf("add %s: %w", p.Name(), domain.ErrDuplicatePerson)
	}
	ab.persons = append(ab.persons, p)
	return nil
}

// Remove deletes the person identity-equal to p, together with its pin.
func (ab *AddressBook) Remove(p domain.Person) error {
	i := ab.indexOfKey(p.Key())
	if i < 0 {
		return fmt.Errorf("remove %s: %w", p.Name(), domain.ErrPersonNotFound)
	}
	ab.persons = slices.Delete(ab.persons, i, i+1)
	delete(ab.pinned, p.Key())
	return nil
}

// Replace swaps target for replacement in place. The replacement may keep
// the target's identity but must not take the identity of anyone else.
// A pinned target stays pinned under its new identity.
func (ab *AddressBook) Replace(target, replacement domain.Person) error {
	i := ab.indexOfKey(target.Key())
	if i < 0 {
		return fmt.Errorf("replace %s: %w", target.Name(), domain.ErrPersonNotFound)
	}
	if j := ab.indexOfKey(replacement.Key()); j >= 0 && j != i {
		return fmt.Errorf("replace %s with %s: %w", target.Name(), replacement.Name(), domain.ErrDuplicatePerson)
	}
	oldKey := ab.persons[i].Key()
	ab.persons[i] = replacement
	if _, ok := ab.pinned[oldKey]; ok && oldKey != replacement.Key() {
		delete(ab.pinned, oldKey)
		ab.pinned[replacement.Key()] = struct{}{}
	}
	return nil
}

// Pin marks the person identity-equal to p. Pinning twice is a no-op.
func (ab *AddressBook) Pin(p domain.Person) error {
	if !ab.Has(p) {
		return fmt.Errorf("pin %s: %w", p.Name(), domain.ErrPersonNotFound)
	}
	ab.pinned[p.Key()] = struct{}{}
	return nil
}

// Unpin clears the mark set by Pin.
func (ab *AddressBook) Unpin(p domain.Person) error {
	if !ab.Has(p) {
		return fmt.Errorf("unpin %s: %w", p.Name(), domain.ErrPersonNotFound)
	}
	delete(ab.pinned, p.Key())
	return nil
}

// IsPinned reports whether p is pinned.
func (ab *AddressBook) IsPinned(p domain.Person) bool {
	_, ok := ab.pinned[p.Key()]
	return ok
}

// ResetFrom replaces the whole content with a copy of other.
func (ab *AddressBook) ResetFrom(other *AddressBook) {
	ab.persons = slices.Clone(other.persons)
	ab.pinned = make(map[string]struct{}, len(other.pinned))
	for key := range other.pinned {
		ab.pinned[key] = struct{}{}
	}
}

// Snapshot returns an independent copy. Persons are immutable values, so
// copying the slice and the pinned set is a deep copy.
func (ab *AddressBook) Snapshot() *AddressBook {
	cp := NewAddressBook()
	cp.ResetFrom(ab)
	return cp
}

// Persons returns the persons in insertion order.
func (ab *AddressBook) Persons() []domain.Person {
	return slices.Clone(ab.persons)
}

// Len returns the number of persons.
func (ab *AddressBook) Len() int {
	return len(ab.persons)
}

// Equal compares content and pins.
func (ab *AddressBook) Equal(other *AddressBook) bool {
	if other == nil || len(ab.persons) != len(other.persons) || len(ab.pinned) != len(other.pinned) {
		return false
	}
	for i := range ab.persons {
		if !ab.persons[i].Equal(other.persons[i]) {
			return false
		}
	}
	for key := range ab.pinned {
		if _, ok := other.pinned[key]; !ok {
			return false
		}
	}
	return true
}

// ToSnapshot exports the content for a storage adapter.
func (ab *AddressBook) ToSnapshot() domain.AddressBookSnapshot {
	snapshot := domain.AddressBookSnapshot{Persons: ab.Persons()}
	for _, p := range ab.persons {
		if ab.IsPinned(p) {
			snapshot.Pinned = append(snapshot.Pinned, p.Name())
		}
	}
	return snapshot
}
