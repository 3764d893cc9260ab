package domain

import "regexp"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,6}$`)

// Customer is a person known to the service. Nil pointer fields are absent
// and are stored as NULL.
type Customer struct {
	GUID        *string `json:"guid,omitempty"`
	Email       *string `json:"email,omitempty"`
	NamePrefix  *string `json:"namePrefix,omitempty"`
	NameSurname *string `json:"nameSurname,omitempty"` // first name
	NameMiddle  *string `json:"nameMiddle,omitempty"`
	NameFamily  *string `json:"nameFamily,omitempty"` // last name
	NameSuffix  *string `json:"nameSuffix,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// Validate reports whether the customer carries a usable email address.
// No other field takes part in validation.
func (c Customer) Validate() error {
	if c.Email == nil {
		return &ValidationError{Message: "customer email address must not be null"}
	}
	if !emailPattern.MatchString(*c.Email) {
		return &ValidationError{Message: "customer email address is not a valid email address"}
	}
	return nil
}

// Equal compares two customers semantically. The guid is compared
// permissively (an absent guid on either side matches anything) while every
// other field must be absent on both sides or equal on both sides.
func (c Customer) Equal(other Customer) bool {
	if !sameGUID(c.GUID, other.GUID) {
		return false
	}
	return sameField(c.Email, other.Email) &&
		sameField(c.NamePrefix, other.NamePrefix) &&
		sameField(c.NameSurname, other.NameSurname) &&
		sameField(c.NameMiddle, other.NameMiddle) &&
		sameField(c.NameFamily, other.NameFamily) &&
		sameField(c.NameSuffix, other.NameSuffix) &&
		sameField(c.PhoneNumber, other.PhoneNumber)
}

func sameGUID(a, b *string) bool {
	if a == nil || b == nil {
		return true
	}
	return *a == *b
}

func sameField(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// GUIDValue returns the guid or "" when absent.
func (c Customer) GUIDValue() string {
	if c.GUID == nil {
		return ""
	}
	return *c.GUID
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
