// Package ledger is a local, single-sequencer ledger that runs programs
// against an account store. Each transaction is loaded, executed against a
// staged copy of its accounts, checked against the account rules and
// committed all-or-nothing.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"okinoko-arena/sdk"
)

const tracerName = "okinoko-arena/internal/ledger"

// Program is executable code deployed at an address.
type Program interface {
	Process(ctx sdk.InvokeContext, data []byte) error
}

// InstructionNamer is implemented by programs that can label their
// instructions for logs and metrics.
type InstructionNamer interface {
	InstructionName(data []byte) string
}

// Transaction groups instructions that commit together. Signers are the
// identities the submitter vouches for; signature checking itself happens
// upstream of the ledger.
type Transaction struct {
	Instructions []sdk.Instruction
	Signers      []sdk.Address
}

// Receipt describes an executed transaction.
type Receipt struct {
	TxID    string
	Logs    []string
	Written []sdk.Address
}

// Runtime sequences transactions. Submit holds one lock for the full
// load-execute-commit cycle, which totally orders every transaction.
type Runtime struct {
	mu       sync.Mutex
	store    Store
	programs map[sdk.Address]Program
	rent     Rent
	logger   *zap.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	now      func() time.Time
}

// Option configures a Runtime.
type Option func(*Runtime)

func WithLogger(l *zap.Logger) Option { return func(r *Runtime) { r.logger = l } }

func WithRent(rent Rent) Option { return func(r *Runtime) { r.rent = rent } }

func WithMetrics(m *Metrics) Option { return func(r *Runtime) { r.metrics = m } }

func WithClock(now func() time.Time) Option { return func(r *Runtime) { r.now = now } }

// New creates a runtime over store.
func New(store Store, opts ...Option) *Runtime {
	r := &Runtime{
		store:    store,
		programs: make(map[sdk.Address]Program),
		rent:     DefaultRent,
		logger:   zap.NewNop(),
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = NewMetrics(prometheus.NewRegistry())
	}
	return r
}

// Deploy makes program callable at id.
func (r *Runtime) Deploy(id sdk.Address, program Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[id] = program
}

// Rent returns the rent schedule programs are charged with.
func (r *Runtime) Rent() Rent { return r.rent }

// Account reads committed state. A never-written address comes back empty
// with found == false.
func (r *Runtime) Account(ctx context.Context, addr sdk.Address) (Account, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, found, err := r.store.GetAccount(ctx, addr)
	if err != nil {
		return Account{}, false, fmt.Errorf("get account %s: %w", addr, err)
	}
	acc.Address = addr
	return acc, found, nil
}

// Credit mints lamports into addr. It seeds balances for local runs and
// tests and is not reachable from programs.
func (r *Runtime) Credit(ctx context.Context, addr sdk.Address, lamports uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, _, err := r.store.GetAccount(ctx, addr)
	if err != nil {
		return fmt.Errorf("get account %s: %w", addr, err)
	}
	acc.Address = addr
	if acc.Lamports > ^uint64(0)-lamports {
		return fmt.Errorf("%w: %s", ErrCreditOverflow, addr)
	}
	acc.Lamports += lamports
	if err := r.store.PutAccounts(ctx, []Account{acc}); err != nil {
		return fmt.Errorf("credit %s: %w", addr, err)
	}
	r.metrics.credited.Add(float64(lamports))
	r.logger.Debug("credited", zap.Stringer("address", addr), zap.Uint64("lamports", lamports))
	return nil
}

// Submit executes tx atomically. On any error nothing is written and the
// error of the failing instruction is returned wrapped, so errors.Is keeps
// matching the program's error kinds.
func (r *Runtime) Submit(ctx context.Context, tx Transaction) (Receipt, error) {
	ctx, span := r.tracer.Start(ctx, "ledger.Submit")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	start := r.now()
	receipt := Receipt{TxID: uuid.NewString()}
	span.SetAttributes(attribute.String("tx.id", receipt.TxID), attribute.Int("tx.instructions", len(tx.Instructions)))

	err := r.execute(ctx, tx, &receipt)
	r.metrics.transactions.WithLabelValues(result(err)).Inc()
	r.metrics.duration.Observe(r.now().Sub(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Warn("transaction failed", zap.String("tx", receipt.TxID), zap.Error(err))
		return receipt, err
	}
	r.logger.Debug("transaction committed",
		zap.String("tx", receipt.TxID),
		zap.Int("written", len(receipt.Written)),
		zap.Strings("logs", receipt.Logs))
	return receipt, nil
}

func (r *Runtime) execute(ctx context.Context, tx Transaction, receipt *Receipt) error {
	if len(tx.Instructions) == 0 {
		return ErrEmptyTransaction
	}
	signed := make(map[sdk.Address]bool, len(tx.Signers))
	for _, s := range tx.Signers {
		signed[s] = true
	}
	for i, ix := range tx.Instructions {
		for _, signer := range ix.Signers() {
			if !signed[signer] {
				return fmt.Errorf("instruction %d: %w: %s", i, ErrMissingSignature, signer)
			}
		}
		if _, ok := r.programs[ix.ProgramID]; !ok {
			return fmt.Errorf("instruction %d: %w: %s", i, ErrUnknownProgram, ix.ProgramID)
		}
	}

	staged := make(map[sdk.Address]Account)
	written := make(map[sdk.Address]bool)
	var order []sdk.Address

	for i, ix := range tx.Instructions {
		for _, meta := range ix.Accounts {
			if _, ok := staged[meta.Address]; ok {
				continue
			}
			acc, _, err := r.store.GetAccount(ctx, meta.Address)
			if err != nil {
				return fmt.Errorf("load %s: %w", meta.Address, err)
			}
			acc.Address = meta.Address
			staged[meta.Address] = acc
			order = append(order, meta.Address)
		}

		program := r.programs[ix.ProgramID]
		name := instructionName(program, ix.Data)
		infos, byKey := buildInfos(ix, staged)
		ic := &invokeContext{
			env: sdk.Env{
				TxID:      receipt.TxID,
				ProgramID: ix.ProgramID,
				BlockTime: r.now().Unix(),
			},
			accounts: infos,
			rent:     r.rent,
			logs:     &receipt.Logs,
			logger:   r.logger,
		}

		receipt.Logs = append(receipt.Logs, fmt.Sprintf("Program %s invoke [%s]", ix.ProgramID, name))
		_, ixSpan := r.tracer.Start(ctx, "ledger.Instruction", trace.WithAttributes(
			attribute.String("instruction", name),
			attribute.Int("index", i),
		))
		err := program.Process(ic, ix.Data)
		if err == nil {
			err = verifyInstruction(ix.ProgramID, r.rent, staged, byKey)
		}
		r.metrics.instructions.WithLabelValues(name, result(err)).Inc()
		if err != nil {
			ixSpan.RecordError(err)
			ixSpan.SetStatus(codes.Error, err.Error())
			ixSpan.End()
			receipt.Logs = append(receipt.Logs, fmt.Sprintf("Program %s failed: %v", ix.ProgramID, err))
			return fmt.Errorf("instruction %d (%s): %w", i, name, err)
		}
		ixSpan.End()
		receipt.Logs = append(receipt.Logs, fmt.Sprintf("Program %s success", ix.ProgramID))

		for addr, info := range byKey {
			after := Account{Address: addr, Owner: info.Owner, Lamports: info.Lamports, Data: info.Data}
			if !staged[addr].equal(after) {
				staged[addr] = after.clone()
				written[addr] = true
			}
		}
	}

	var changes []Account
	for _, addr := range order {
		if written[addr] {
			changes = append(changes, staged[addr])
			receipt.Written = append(receipt.Written, addr)
		}
	}
	if len(changes) == 0 {
		return nil
	}
	if err := r.store.PutAccounts(ctx, changes); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func instructionName(p Program, data []byte) string {
	if n, ok := p.(InstructionNamer); ok {
		return n.InstructionName(data)
	}
	return "unknown"
}
