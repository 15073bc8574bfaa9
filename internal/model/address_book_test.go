package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/addrbook/internal/domain"
)

func TestAddressBookAddThenHas(t *testing.T) {
	ab := NewAddressBook()
	alice := person(t, "Alice Pauline")

	require.NoError(t, ab.Add(alice))
	assert.True(t, ab.Has(alice))

	err := ab.Add(person(t, "alice   pauline", withPhone("999")))
	assert.ErrorIs(t, err, domain.ErrDuplicatePerson)
	assert.Equal(t, 1, ab.Len())
}

func TestAddressBookRemove(t *testing.T) {
	ab := NewAddressBook()
	alice, bob := person(t, "Alice"), person(t, "Bob")
	require.NoError(t, ab.Add(alice))

	err := ab.Remove(bob)
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)
	assert.Equal(t, 1, ab.Len())

	require.NoError(t, ab.Pin(alice))
	require.NoError(t, ab.Remove(alice))
	assert.False(t, ab.Has(alice))
	assert.Empty(t, ab.ToSnapshot().Pinned)
}

func TestAddressBookReplace(t *testing.T) {
	alice, bob, carl := person(t, "Alice"), person(t, "Bob"), person(t, "Carl")

	t.Run("keeps position", func(t *testing.T) {
		ab := NewAddressBook()
		for _, p := range []domain.Person{alice, bob, carl} {
			require.NoError(t, ab.Add(p))
		}
		dan := person(t, "Dan")
		require.NoError(t, ab.Replace(bob, dan))
		assert.Equal(t, []string{"Alice", "Dan", "Carl"}, names(ab.Persons()))
	})

	t.Run("same identity is allowed", func(t *testing.T) {
		ab := NewAddressBook()
		require.NoError(t, ab.Add(alice))
		edited := person(t, "Alice", withPhone("81234567"))
		require.NoError(t, ab.Replace(alice, edited))
		assert.Equal(t, "81234567", ab.Persons()[0].Phone())
	})

	t.Run("collision with another person", func(t *testing.T) {
		ab := NewAddressBook()
		require.NoError(t, ab.Add(alice))
		require.NoError(t, ab.Add(bob))
		err := ab.Replace(alice, person(t, "BOB"))
		assert.ErrorIs(t, err, domain.ErrDuplicatePerson)
		assert.Equal(t, []string{"Alice", "Bob"}, names(ab.Persons()))
	})

	t.Run("missing target", func(t *testing.T) {
		ab := NewAddressBook()
		err := ab.Replace(alice, bob)
		assert.ErrorIs(t, err, domain.ErrPersonNotFound)
	})

	t.Run("pin follows the record", func(t *testing.T) {
		ab := NewAddressBook()
		require.NoError(t, ab.Add(alice))
		require.NoError(t, ab.Pin(alice))
		require.NoError(t, ab.Replace(alice, carl))
		assert.True(t, ab.IsPinned(carl))
		assert.False(t, ab.IsPinned(alice))
	})
}

func TestAddressBookPinUnpin(t *testing.T) {
	ab := NewAddressBook()
	alice := person(t, "Alice")

	assert.ErrorIs(t, ab.Pin(alice), domain.ErrPersonNotFound)
	assert.ErrorIs(t, ab.Unpin(alice), domain.ErrPersonNotFound)

	require.NoError(t, ab.Add(alice))
	require.NoError(t, ab.Pin(alice))
	require.NoError(t, ab.Pin(alice))
	assert.True(t, ab.IsPinned(alice))

	require.NoError(t, ab.Unpin(alice))
	assert.False(t, ab.IsPinned(alice))
}

func TestAddressBookResetFromAndSnapshot(t *testing.T) {
	src := NewAddressBook()
	alice, bob := person(t, "Alice"), person(t, "Bob")
	require.NoError(t, src.Add(alice))
	require.NoError(t, src.Add(bob))
	require.NoError(t, src.Pin(bob))

	dst := NewAddressBook()
	require.NoError(t, dst.Add(person(t, "Zed")))
	dst.ResetFrom(src)

	snap := dst.Snapshot()
	assert.True(t, snap.Equal(src.Snapshot()))

	// copies are independent of each other and of the source
	require.NoError(t, src.Remove(alice))
	require.NoError(t, dst.Unpin(bob))
	assert.Equal(t, 2, snap.Len())
	assert.True(t, snap.IsPinned(bob))
	assert.True(t, dst.Has(alice))
}

func TestNewAddressBookFromSnapshot(t *testing.T) {
	alice := person(t, "Alice")

	ab, err := NewAddressBookFromSnapshot(domain.AddressBookSnapshot{
		Persons: []domain.Person{alice},
		Pinned:  []string{" ALICE "},
	})
	require.NoError(t, err)
	assert.True(t, ab.IsPinned(alice))
	assert.Equal(t, []string{"Alice"}, ab.ToSnapshot().Pinned)

	_, err = NewAddressBookFromSnapshot(domain.AddressBookSnapshot{Persons: []domain.Person{alice, alice}})
	assert.ErrorIs(t, err, domain.ErrDuplicatePerson)

	_, err = NewAddressBookFromSnapshot(domain.AddressBookSnapshot{Pinned: []string{"Nobody"}})
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)
}
