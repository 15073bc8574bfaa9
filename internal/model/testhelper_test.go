package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doeshing/addrbook/internal/domain"
)

func person(t *testing.T, name string, opts ...func(*personFields)) domain.Person {
	t.Helper()
	f := personFields{
		phone:   "94351253",
		email:   strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@example.com",
		address: "123, Jurong West Ave 6, #08-111",
	}
	for _, opt := range opts {
		opt(&f)
	}
	p, err := domain.NewPerson(name, f.phone, f.email, f.address, f.tags)
	require.NoError(t, err)
	return p
}

type personFields struct {
	phone   string
	email   string
	address string
	tags    []string
}

func withPhone(phone string) func(*personFields) {
	return func(f *personFields) { f.phone = phone }
}

func withTags(tags ...string) func(*personFields) {
	return func(f *personFields) { f.tags = tags }
}

func names(persons []domain.Person) []string {
	out := make([]string, 0, len(persons))
	for _, p := range persons {
		out = append(out, p.Name())
	}
	return out
}

func newTestManager(t *testing.T, persons ...domain.Person) *Manager {
	t.Helper()
	m, err := NewManager(domain.AddressBookSnapshot{Persons: persons}, domain.UserPrefs{})
	require.NoError(t, err)
	return m
}
