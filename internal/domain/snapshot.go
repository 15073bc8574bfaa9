package domain

// AddressBookSnapshot is the storage-facing form of an address book: the
// persons in display order and the names of those that are pinned.
type AddressBookSnapshot struct {
	Persons []Person
	Pinned  []string
}

// IsPinned reports whether the snapshot marks p as pinned.
func (s AddressBookSnapshot) IsPinned(p Person) bool {
	for _, name := range s.Pinned {
		if IdentityKey(name) == p.Key() {
			return true
		}
	}
	return false
}
