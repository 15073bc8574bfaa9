package model

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/doeshing/addrbook/internal/domain"
)

var ErrInvalidSortKey = errors.New("invalid sort key")

// InvalidSortKeyError carries the prefix that could not be parsed.
type InvalidSortKeyError struct {
	Prefix string
}

func (e *InvalidSortKeyError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %q (use n, p, e, a or t)", ErrInvalidSortKey.Error(), e.Prefix)
}

func (e *InvalidSortKeyError) Unwrap() error { return ErrInvalidSortKey }

// SortKey selects the person field a sort compares.
type SortKey int

const (
	SortByName SortKey = iota
	SortByPhone
	SortByEmail
	SortByAddress
	SortByTags
)

var sortKeyPrefixes = map[string]SortKey{
	"n": SortByName,
	"p": SortByPhone,
	"e": SortByEmail,
	"a": SortByAddress,
	"t": SortByTags,
}

func (k SortKey) String() string {
	switch k {
	case SortByName:
		return domain.FieldName
	case SortByPhone:
		return domain.FieldPhone
	case SortByEmail:
		return domain.FieldEmail
	case SortByAddress:
		return domain.FieldAddress
	case SortByTags:
		return domain.FieldTag
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// ParseSortKeys maps field prefixes ("n", "p", "e", "a", "t", optionally
// followed by "/") to sort keys, in order. No prefixes yields no keys.
func ParseSortKeys(prefixes ...string) ([]SortKey, error) {
	keys := make([]SortKey, 0, len(prefixes))
	for _, prefix := range prefixes {
		token := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(prefix)), "/")
		key, ok := sortKeyPrefixes[token]
		if !ok {
			return nil, &InvalidSortKeyError{Prefix: prefix}
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (k SortKey) compare(a, b domain.Person) int {
	switch k {
	case SortByName:
		return cmp.Compare(fold(a.Name()), fold(b.Name()))
	case SortByPhone:
		if c := cmp.Compare(len(a.Phone()), len(b.Phone())); c != 0 {
			return c
		}
		return cmp.Compare(a.Phone(), b.Phone())
	case SortByEmail:
		return cmp.Compare(fold(a.Email()), fold(b.Email()))
	case SortByAddress:
		return cmp.Compare(fold(a.Address()), fold(b.Address()))
	case SortByTags:
		return cmp.Compare(tagSortKey(a), tagSortKey(b))
	default:
		return 0
	}
}

func tagSortKey(p domain.Person) string {
	return fold(strings.Join(p.Tags(), ","))
}

// fold maps s to its Unicode case-folded form so "Ärger" and "ärger" tie.
// A Caser keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// comparator puts pinned persons first and then applies keys left to right.
// Ties fall through to 0 so a stable sort keeps insertion order.
func comparator(keys []SortKey, pinned func(domain.Person) bool) func(a, b domain.Person) int {
	return func(a, b domain.Person) int {
		pa, pb := pinned(a), pinned(b)
		if pa != pb {
			if pa {
				return -1
			}
			return 1
		}
		for _, k := range keys {
			if c := k.compare(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}
