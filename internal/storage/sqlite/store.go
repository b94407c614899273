// Package sqlite persists ledger accounts in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"

	"okinoko-arena/internal/ledger"
	"okinoko-arena/internal/storage/sqlite/migrations"
	"okinoko-arena/internal/storage/sqlitemigrate"
	"okinoko-arena/sdk"
)

// DefaultCacheSize is the number of decoded accounts kept in memory.
const DefaultCacheSize = 1024

// Store implements ledger.Store. Reads go through an LRU of decoded
// accounts which commits keep current.
type Store struct {
	sqlDB *sql.DB
	cache *lru.Cache[sdk.Address, ledger.Account]
}

var _ ledger.Store = (*Store)(nil)

// Open opens the database at path, applying pending migrations.
// cacheSize <= 0 selects DefaultCacheSize.
func Open(ctx context.Context, path string, cacheSize int) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	cache, err := lru.New[sdk.Address, ledger.Account](cacheSize)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("account cache: %w", err)
	}
	return &Store{sqlDB: sqlDB, cache: cache}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) GetAccount(ctx context.Context, addr sdk.Address) (ledger.Account, bool, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Account{}, false, err
	}
	if acc, ok := s.cache.Get(addr); ok {
		return cloneAccount(acc), true, nil
	}

	var (
		owner    string
		lamports int64
		data     []byte
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT owner, lamports, data FROM accounts WHERE address = ?`, addr.String(),
	).Scan(&owner, &lamports, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Account{Address: addr}, false, nil
	}
	if err != nil {
		return ledger.Account{}, false, fmt.Errorf("get account %s: %w", addr, err)
	}
	acc, err := scanAccount(addr, owner, lamports, data)
	if err != nil {
		return ledger.Account{}, false, err
	}
	s.cache.Add(addr, acc)
	return cloneAccount(acc), true, nil
}

// PutAccounts upserts accounts in one SQLite transaction.
func (s *Store) PutAccounts(ctx context.Context, accounts []ledger.Account) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	for _, acc := range accounts {
		data := acc.Data
		if data == nil {
			data = []byte{}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (address, owner, lamports, data, updated_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(address) DO UPDATE SET
			   owner = excluded.owner,
			   lamports = excluded.lamports,
			   data = excluded.data,
			   updated_at = excluded.updated_at`,
			acc.Address.String(), acc.Owner.String(), int64(acc.Lamports), data, now,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("put account %s: %w", acc.Address, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	for _, acc := range accounts {
		s.cache.Add(acc.Address, cloneAccount(acc))
	}
	return nil
}

// AccountsByOwner lists the accounts owned by owner, ordered by address.
func (s *Store) AccountsByOwner(ctx context.Context, owner sdk.Address) ([]ledger.Account, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT address, lamports, data FROM accounts WHERE owner = ? ORDER BY address`, owner.String())
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []ledger.Account
	for rows.Next() {
		var (
			address  string
			lamports int64
			data     []byte
		)
		if err := rows.Scan(&address, &lamports, &data); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		addr, err := sdk.ParseAddress(address)
		if err != nil {
			return nil, err
		}
		acc, err := scanAccount(addr, owner.String(), lamports, data)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, rows.Err()
}

// Lamports are stored as the int64 bit pattern of the u64 balance.
func scanAccount(addr sdk.Address, owner string, lamports int64, data []byte) (ledger.Account, error) {
	o, err := sdk.ParseAddress(owner)
	if err != nil {
		return ledger.Account{}, fmt.Errorf("%w: %s: %v", ledger.ErrCorruptAccount, addr, err)
	}
	acc := ledger.Account{Address: addr, Owner: o, Lamports: uint64(lamports)}
	if len(data) > 0 {
		acc.Data = append([]byte(nil), data...)
	}
	return acc, nil
}

func cloneAccount(a ledger.Account) ledger.Account {
	if a.Data != nil {
		a.Data = append([]byte(nil), a.Data...)
	}
	return a
}
