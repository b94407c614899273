package sdk

// AccountMeta declares how an instruction touches one account.
type AccountMeta struct {
	Address    Address
	IsSigner   bool
	IsWritable bool
}

// Writable is shorthand for a writable, non-signing account.
func Writable(a Address) AccountMeta { return AccountMeta{Address: a, IsWritable: true} }

// Readonly is shorthand for a read-only, non-signing account.
func Readonly(a Address) AccountMeta { return AccountMeta{Address: a} }

// Signer is shorthand for a signing account; writable when it pays for something.
func Signer(a Address, writable bool) AccountMeta {
	return AccountMeta{Address: a, IsSigner: true, IsWritable: writable}
}

// Instruction is a single call into a program.
type Instruction struct {
	ProgramID Address
	Accounts  []AccountMeta
	Data      []byte
}

// Signers lists the addresses that must sign, without duplicates.
func (ix Instruction) Signers() []Address {
	var out []Address
	seen := make(map[Address]bool)
	for _, m := range ix.Accounts {
		if m.IsSigner && !seen[m.Address] {
			seen[m.Address] = true
			out = append(out, m.Address)
		}
	}
	return out
}

// WriteSet returns the accounts the instruction needs exclusive access to.
func (ix Instruction) WriteSet() map[Address]bool {
	out := make(map[Address]bool)
	for _, m := range ix.Accounts {
		if m.IsWritable {
			out[m.Address] = true
		}
	}
	return out
}

// ReadSet returns the accounts the instruction only reads.
func (ix Instruction) ReadSet() map[Address]bool {
	w := ix.WriteSet()
	out := make(map[Address]bool)
	for _, m := range ix.Accounts {
		if !w[m.Address] {
			out[m.Address] = true
		}
	}
	return out
}

// Conflicts reports whether a and b cannot run in the same unconfirmed
// window: one writes an account the other reads or writes.
func Conflicts(a, b Instruction) bool {
	aw, bw := a.WriteSet(), b.WriteSet()
	for addr := range aw {
		if bw[addr] {
			return true
		}
	}
	for addr := range a.ReadSet() {
		if bw[addr] {
			return true
		}
	}
	for addr := range b.ReadSet() {
		if aw[addr] {
			return true
		}
	}
	return false
}
