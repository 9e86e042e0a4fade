package kernel

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"dds/internal/pkg/errs"
)

// MaxEmailLength is the longest address accepted (RFC 5321 path limit).
const MaxEmailLength = 254

var errEmailFormat = errors.New("email is not a valid address")

// Email is a normalized e-mail address. Addresses are trimmed and lower-cased
// so that equality and uniqueness checks ignore case.
type Email struct {
	address string
}

// NewEmail validates and normalizes address. Display names ("Ana <ana@x.io>")
// are rejected: the value must be a bare mailbox.
func NewEmail(address string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(address))
	if normalized == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if len(normalized) > MaxEmailLength {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email",
			fmt.Errorf("email must have at most %d characters", MaxEmailLength))
	}

	parsed, err := mail.ParseAddress(normalized)
	if err != nil || parsed.Address != normalized {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", errEmailFormat)
	}

	return Email{address: normalized}, nil
}

// Address returns the normalized address.
func (e Email) Address() string {
	return e.address
}

func (e Email) String() string {
	return e.address
}

// IsEqual compares two addresses after normalization.
func (e Email) IsEqual(other Email) bool {
	return e.address == other.address
}

// Validate rejects the zero value.
func (e Email) Validate() error {
	if e.address == "" {
		return errs.NewValueIsRequiredError("email")
	}
	return nil
}
