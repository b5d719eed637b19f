package holdings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"bondbuy/pkg/platform/sentinel"
)

// PostgresStore persists holdings in the holdings table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresStore) Save(ctx context.Context, holding Holding) error {
	query := `
		INSERT INTO holdings (
			id, wallet_address, bond_id, bond_name, units, invested_amount,
			purchase_date, apy, maturity_date, tx_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		holding.ID,
		holding.WalletAddress,
		holding.BondID,
		holding.BondName,
		holding.Units,
		holding.InvestedAmount,
		holding.PurchaseDate,
		holding.APY,
		holding.MaturityDate,
		holding.TxHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert holding: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByWallet(ctx context.Context, walletAddress string) ([]Holding, error) {
	query := `
		SELECT id, wallet_address, bond_id, bond_name, units, invested_amount,
			purchase_date, apy, maturity_date, tx_hash
		FROM holdings
		WHERE wallet_address = $1
		ORDER BY purchase_date DESC
	`
	rows, err := s.db.QueryContext(ctx, query, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	defer rows.Close()

	var out []Holding
	for rows.Next() {
		var h Holding
		if err := rows.Scan(
			&h.ID,
			&h.WalletAddress,
			&h.BondID,
			&h.BondName,
			&h.Units,
			&h.InvestedAmount,
			&h.PurchaseDate,
			&h.APY,
			&h.MaturityDate,
			&h.TxHash,
		); err != nil {
			return nil, fmt.Errorf("list holdings: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	return out, nil
}
