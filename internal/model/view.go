package model

import (
	"slices"

	"github.com/doeshing/addrbook/internal/domain"
)

// Predicate selects the persons a view shows.
type Predicate func(domain.Person) bool

// ShowAll accepts every person.
var ShowAll Predicate = func(domain.Person) bool { return true }

// PersonView is a read-only live view over an address book: the filter
// stage followed by the sort stage. It holds no cached result, so every
// read reflects the current content.
type PersonView struct {
	book      *AddressBook
	predicate Predicate
	keys      []SortKey
	hub       *observerHub
}

func newPersonView(book *AddressBook, hub *observerHub) *PersonView {
	return &PersonView{book: book, predicate: ShowAll, hub: hub}
}

// Items returns the filtered and sorted persons.
func (v *PersonView) Items() []domain.Person {
	items := make([]domain.Person, 0, v.book.Len())
	for _, p := range v.book.persons {
		if v.predicate(p) {
			items = append(items, p)
		}
	}
	slices.SortStableFunc(items, comparator(v.keys, v.book.IsPinned))
	return items
}

// Len returns the number of visible persons.
func (v *PersonView) Len() int {
	n := 0
	for _, p := range v.book.persons {
		if v.predicate(p) {
			n++
		}
	}
	return n
}

// At returns the person at a zero-based position in the view.
func (v *PersonView) At(i int) (domain.Person, bool) {
	items := v.Items()
	if i < 0 || i >= len(items) {
		return domain.Person{}, false
	}
	return items[i], true
}

// IsPinned reports whether p is shown in the pinned group.
func (v *PersonView) IsPinned(p domain.Person) bool {
	return v.book.IsPinned(p)
}

// SortKeys returns the active sort keys; empty means insertion order.
func (v *PersonView) SortKeys() []SortKey {
	return slices.Clone(v.keys)
}

// Subscribe registers o for change notifications and returns its cancel func.
func (v *PersonView) Subscribe(o Observer) func() {
	return v.hub.subscribe(o)
}

func (v *PersonView) setPredicate(p Predicate) {
	if p == nil {
		p = ShowAll
	}
	v.predicate = p
}
