package domain

import (
	"hash/fnv"
	"regexp"
	"slices"
	"strings"
)

// Field names used in validation errors and sort keys.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldAddress = "address"
	FieldTag     = "tag"
)

var (
	namePattern  = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} '\-./@,]*$`)
	phonePattern = regexp.MustCompile(`^[0-9]{3,}$`)
	emailPattern = regexp.MustCompile(
		`^[\p{L}\p{N}](?:[\p{L}\p{N}+_.\-]*[\p{L}\p{N}])?@` +
			`(?:[\p{L}\p{N}](?:[\p{L}\p{N}\-]*[\p{L}\p{N}])?\.)*` +
			`[\p{L}\p{N}][\p{L}\p{N}\-]*[\p{L}\p{N}]$`)
	tagPattern = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
)

// Person is an immutable contact entry. Construct it with NewPerson or
// EditPerson; the zero value is not a valid person.
type Person struct {
	name    string
	phone   string
	email   string
	address string
	tags    []string
}

// PersonEdit lists the fields to change in EditPerson. Nil fields are kept.
type PersonEdit struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Tags    *[]string
}

// NewPerson validates every field and returns the normalized person.
func NewPerson(name, phone, email, address string, tags []string) (Person, error) {
	normalized := NormalizeName(name)
	if !IsValidName(normalized) {
		return Person{}, invalidField(FieldName, name,
			"names should only contain letters, digits, spaces and ' - . / @ , and must not be blank")
	}
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return Person{}, invalidField(FieldPhone, phone, "phone numbers should only contain digits and be at least 3 digits long")
	}
	email = strings.TrimSpace(email)
	if !IsValidEmail(email) {
		return Person{}, invalidField(FieldEmail, email, "emails should be of the format local-part@domain")
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return Person{}, invalidField(FieldAddress, address, "addresses can take any value but must not be blank")
	}
	cleanTags, err := normalizeTags(tags)
	if err != nil {
		return Person{}, err
	}
	return Person{
		name:    normalized,
		phone:   phone,
		email:   email,
		address: address,
		tags:    cleanTags,
	}, nil
}

// EditPerson returns a copy of p with the fields in edit replaced and re-validated.
func EditPerson(p Person, edit PersonEdit) (Person, error) {
	name, phone, email, address, tags := p.name, p.phone, p.email, p.address, p.tags
	if edit.Name != nil {
		name = *edit.Name
	}
	if edit.Phone != nil {
		phone = *edit.Phone
	}
	if edit.Email != nil {
		email = *edit.Email
	}
	if edit.Address != nil {
		address = *edit.Address
	}
	if edit.Tags != nil {
		tags = *edit.Tags
	}
	return NewPerson(name, phone, email, address, tags)
}

// NormalizeName trims the name and collapses internal whitespace runs into single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// IsValidName reports whether an already normalized name is acceptable.
func IsValidName(name string) bool {
	return name != "" && namePattern.MatchString(name)
}

// IsValidEmail reports whether email is of the form local-part@domain.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func normalizeTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if !tagPattern.MatchString(tag) {
			return nil, invalidField(FieldTag, tag, "tag names should be alphanumeric")
		}
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (p Person) Name() string    { return p.name }
func (p Person) Phone() string   { return p.phone }
func (p Person) Email() string   { return p.email }
func (p Person) Address() string { return p.address }

// Tags returns a sorted copy of the person's tags.
func (p Person) Tags() []string {
	return slices.Clone(p.tags)
}

// HasTag reports whether the person carries tag, ignoring case.
func (p Person) HasTag(tag string) bool {
	for _, t := range p.tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Key is the identity key used for duplicate detection.
func (p Person) Key() string {
	return IdentityKey(p.name)
}

// IdentityKey maps a raw name to the key IsSamePerson compares.
func IdentityKey(name string) string {
	return strings.ToLower(NormalizeName(name))
}

// IsSamePerson is the weak identity check: same name, ignoring case and spacing.
func (p Person) IsSamePerson(other Person) bool {
	return p.Key() == other.Key()
}

// Equal compares every field.
func (p Person) Equal(other Person) bool {
	return p.name == other.name &&
		p.phone == other.phone &&
		p.email == other.email &&
		p.address == other.address &&
		slices.Equal(p.tags, other.tags)
}

// Hash is consistent with Equal.
func (p Person) Hash() uint64 {
	h := fnv.New64a()
	for _, field := range []string{p.name, p.phone, p.email, p.address} {
		_, _ = h.Write([]byte(field))
		_, _ = h.Write([]byte{0})
	}
	for _, tag := range p.tags {
		_, _ = h.Write([]byte(tag))
		_, _ = h.Write([]byte{1})
	}
	return h.Sum64()
}

func (p Person) String() string {
	var b strings.Builder
	b.WriteString(p.name)
	b.WriteString("; Phone: ")
	b.WriteString(p.phone)
	b.WriteString("; Email: ")
	b.WriteString(p.email)
	b.WriteString("; Address: ")
	b.WriteString(p.address)
	if len(p.tags) > 0 {
		b.WriteString("; Tags: ")
		b.WriteString(strings.Join(p.tags, ", "))
	}
	return b.String()
}
