package ledger

// Rent prices account storage. An account must hold at least Minimum of its
// data length to exist.
type Rent struct {
	LamportsPerByte uint64
	AccountOverhead uint64
}

// DefaultRent is two years of rent at 3480 lamports per byte-year, with a
// 128 byte per-account overhead.
var DefaultRent = Rent{LamportsPerByte: 3480 * 2, AccountOverhead: 128}

// Minimum returns the rent-exempt balance for dataLen bytes.
func (r Rent) Minimum(dataLen int) uint64 {
	return (r.AccountOverhead + uint64(dataLen)) * r.LamportsPerByte
}
