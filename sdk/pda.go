package sdk

import (
	"errors"

	"github.com/decred/dcrd/dcrec/edwards/v2"
	"github.com/minio/sha256-simd"
)

const (
	// MaxSeeds bounds the number of seeds (bump included) of a derived address.
	MaxSeeds = 16
	// MaxSeedLen bounds the byte length of a single seed.
	MaxSeedLen = 32
)

const pdaMarker = "ProgramDerivedAddress"

var (
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
	ErrInvalidSeeds          = errors.New("provided seeds do not result in a valid address")
	ErrNoViableBump          = errors.New("unable to find a viable program address bump seed")
)

// IsOnCurve reports whether b decodes to a point on the ed25519 curve.
// Derived addresses must not be, so nobody holds a private key for them.
func IsOnCurve(b []byte) bool {
	if len(b) != AddressLen {
		return false
	}
	_, err := edwards.ParsePubKey(b)
	return err == nil
}

// CreateProgramAddress hashes seeds with the program id. The seeds must
// already carry the bump; the result is rejected when it lands on the curve.
func CreateProgramAddress(seeds [][]byte, programID Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Address{}, ErrMaxSeedLengthExceeded
	}
	h := sha256.New()
	for _, s := range seeds {
		if len(s) > MaxSeedLen {
			return Address{}, ErrMaxSeedLengthExceeded
		}
		h.Write(s)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	var out Address
	copy(out[:], h.Sum(nil))
	if IsOnCurve(out[:]) {
		return Address{}, ErrInvalidSeeds
	}
	return out, nil
}

// FindProgramAddress searches bumps from 255 downwards and returns the first
// off-curve address together with the bump that produced it.
func FindProgramAddress(seeds [][]byte, programID Address) (Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return Address{}, 0, ErrMaxSeedLengthExceeded
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bump := []byte{0}
	withBump[len(seeds)] = bump

	for b := 255; b >= 0; b-- {
		bump[0] = uint8(b)
		addr, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return addr, uint8(b), nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return Address{}, 0, err
		}
	}
	return Address{}, 0, ErrNoViableBump
}
