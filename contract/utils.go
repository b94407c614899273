package contract

import (
	"encoding/binary"
	"math/bits"

	"github.com/minio/sha256-simd"

	"okinoko-arena/sdk"
)

// ---------- Discriminators ----------

// discriminator is the 8-byte tag that prefixes account records
// ("account:<Name>") and instruction data ("global:<name>").
type discriminator [discriminatorLen]byte

func newDiscriminator(namespace, name string) discriminator {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d discriminator
	copy(d[:], sum[:discriminatorLen])
	return d
}

var (
	gameDiscriminator    = newDiscriminator("account", "Game")
	playerDiscriminator  = newDiscriminator("account", "Player")
	monsterDiscriminator = newDiscriminator("account", "Monster")
)

// ---------- Checked math ----------

func checkedAdd(a, b uint64, what string) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, abort(ErrNumericalOverflow, "%s overflows", what)
	}
	return sum, nil
}

// saturatingSub floors at zero.
func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// ---------- Binary reader/writer (little-endian, fixed width) ----------

// rd is a binary reader utility over a byte slice. The first short read
// sets err and every later read returns zero values.
type rd struct {
	b   []byte // raw buffer
	i   int    // current read index
	err error
}

func (r *rd) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.i+n > len(r.b) {
		r.err = abort(ErrInvalidArgument, "decode overflow at byte %d", r.i)
		return false
	}
	return true
}

func (r *rd) u8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.b[r.i]
	r.i++
	return v
}

// u64 reads a uint64 in little-endian format.
func (r *rd) u64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.b[r.i : r.i+8])
	r.i += 8
	return v
}

func (r *rd) address() sdk.Address {
	var a sdk.Address
	if !r.need(sdk.AddressLen) {
		return a
	}
	copy(a[:], r.b[r.i:r.i+sdk.AddressLen])
	r.i += sdk.AddressLen
	return a
}

func (r *rd) discriminator() discriminator {
	var d discriminator
	if !r.need(discriminatorLen) {
		return d
	}
	copy(d[:], r.b[r.i:r.i+discriminatorLen])
	r.i += discriminatorLen
	return d
}

// done fails when bytes are left over, so a truncated or padded record is
// never mistaken for a valid one.
func (r *rd) done() error {
	if r.err != nil {
		return r.err
	}
	if r.i != len(r.b) {
		return abort(ErrInvalidArgument, "%d trailing bytes", len(r.b)-r.i)
	}
	return nil
}

// wr appends fixed-width little-endian fields.
type wr struct {
	b []byte
}

func newWriter(size int) *wr { return &wr{b: make([]byte, 0, size)} }

func (w *wr) u8(v uint8) { w.b = append(w.b, v) }

func (w *wr) u64(v uint64) { w.b = binary.LittleEndian.AppendUint64(w.b, v) }

func (w *wr) address(a sdk.Address) { w.b = append(w.b, a[:]...) }

func (w *wr) discriminator(d discriminator) { w.b = append(w.b, d[:]...) }
