package storage

import (
	"fmt"

	"github.com/doeshing/addrbook/internal/domain"
)

// storedPerson is the on-disk shape of a person.
type storedPerson struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Tags    []string `json:"tags,omitempty"`
	Pinned  bool     `json:"pinned,omitempty"`
}

type storedAddressBook struct {
	Persons []storedPerson `json:"persons"`
}

func fromSnapshot(snapshot domain.AddressBookSnapshot) storedAddressBook {
	book := storedAddressBook{Persons: make([]storedPerson, 0, len(snapshot.Persons))}
	for _, p := range snapshot.Persons {
		book.Persons = append(book.Persons, storedPerson{
			Name:    p.Name(),
			Phone:   p.Phone(),
			Email:   p.Email(),
			Address: p.Address(),
			Tags:    p.Tags(),
			Pinned:  snapshot.IsPinned(p),
		})
	}
	return book
}

// toSnapshot validates every stored person. Duplicates are left for the
// model to reject when it builds its address book.
func (b storedAddressBook) toSnapshot() (domain.AddressBookSnapshot, error) {
	var snapshot domain.AddressBookSnapshot
	for i, sp := range b.Persons {
		p, err := domain.NewPerson(sp.Name, sp.Phone, sp.Email, sp.Address, sp.Tags)
		if err != nil {
			return domain.AddressBookSnapshot{}, fmt.Errorf("person %d: %w", i+1, err)
		}
		snapshot.Persons = append(snapshot.Persons, p)
		if sp.Pinned {
			snapshot.Pinned = append(snapshot.Pinned, p.Name())
		}
	}
	return snapshot, nil
}
