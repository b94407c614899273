// Package sdk holds the chain-side primitives a program is written against:
// addresses, program-derived addresses, instructions and the invoke context.
package sdk

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// AddressLen is the byte length of an account address (an ed25519 public key).
const AddressLen = 32

// Address identifies an account on the ledger.
type Address [AddressLen]byte

// SystemProgramID owns every account that no program has claimed yet.
var SystemProgramID = Address{}

var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress decodes the base58 text form of an address.
func ParseAddress(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	if len(raw) != AddressLen {
		return Address{}, fmt.Errorf("%w: %q decodes to %d bytes", ErrInvalidAddress, s, len(raw))
	}
	var a Address
	copy(a[:], raw)
	return a, nil
}

// MustParseAddress is ParseAddress for constants; it panics on bad input.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string { return base58.Encode(a[:]) }

func (a Address) Bytes() []byte { return a[:] }

func (a Address) IsZero() bool { return a == Address{} }

func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
