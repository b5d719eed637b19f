package verification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"bondbuy/pkg/platform/sentinel"
)

// PostgresStore persists receipts in the execution_receipts table. The rule
// verdict is stored as JSONB so the stored receipt round-trips exactly.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresStore) Create(ctx context.Context, receipt ExecutionReceipt) error {
	rules, err := json.Marshal(receipt.Rules)
	if err != nil {
		return fmt.Errorf("marshal rule verdict: %w", err)
	}

	query := `
		INSERT INTO execution_receipts (
			receipt_id, receipt_hash, wallet_address, bond_id, bond_name,
			units, invested_amount, rules_verified, execution_status,
			verification_errors, chain_block, chain_network, chain_executor,
			external_tx_hash, external_tx_confirmed, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = s.db.ExecContext(ctx, query,
		receipt.ReceiptID,
		receipt.ReceiptHash,
		receipt.WalletAddress,
		receipt.BondID,
		receipt.BondName,
		receipt.Units,
		receipt.InvestedAmount,
		rules,
		string(receipt.Status),
		pq.Array(receipt.Errors),
		receipt.ChainBlock,
		receipt.ChainNetwork,
		receipt.ChainExecutor,
		receipt.ExternalTxHash,
		receipt.ExternalTxConfirmed,
		receipt.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, receiptID string) (ExecutionReceipt, error) {
	query := selectReceipt + ` WHERE receipt_id = $1`
	receipt, err := scanReceipt(s.db.QueryRowContext(ctx, query, receiptID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExecutionReceipt{}, sentinel.ErrNotFound
		}
		return ExecutionReceipt{}, fmt.Errorf("get receipt: %w", err)
	}
	return receipt, nil
}

func (s *PostgresStore) AttachExternalTx(ctx context.Context, receiptID, txHash string) error {
	query := `
		UPDATE execution_receipts
		SET external_tx_hash = $2, external_tx_confirmed = TRUE
		WHERE receipt_id = $1
	`
	res, err := s.db.ExecContext(ctx, query, receiptID, txHash)
	if err != nil {
		return fmt.Errorf("attach external tx: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("attach external tx: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByWallet(ctx context.Context, walletAddress string) ([]ExecutionReceipt, error) {
	query := selectReceipt + ` WHERE wallet_address = $1 ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var out []ExecutionReceipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("list receipts: %w", err)
		}
		out = append(out, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return out, nil
}

const selectReceipt = `
	SELECT receipt_id, receipt_hash, wallet_address, bond_id, bond_name,
		units, invested_amount, rules_verified, execution_status,
		verification_errors, chain_block, chain_network, chain_executor,
		external_tx_hash, external_tx_confirmed, created_at
	FROM execution_receipts
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row rowScanner) (ExecutionReceipt, error) {
	var (
		receipt ExecutionReceipt
		rules   []byte
		status  string
		errs    pq.StringArray
		txHash  sql.NullString
	)
	err := row.Scan(
		&receipt.ReceiptID,
		&receipt.ReceiptHash,
		&receipt.WalletAddress,
		&receipt.BondID,
		&receipt.BondName,
		&receipt.Units,
		&receipt.InvestedAmount,
		&rules,
		&status,
		&errs,
		&receipt.ChainBlock,
		&receipt.ChainNetwork,
		&receipt.ChainExecutor,
		&txHash,
		&receipt.ExternalTxConfirmed,
		&receipt.CreatedAt,
	)
	if err != nil {
		return ExecutionReceipt{}, err
	}
	if err := json.Unmarshal(rules, &receipt.Rules); err != nil {
		return ExecutionReceipt{}, fmt.Errorf("unmarshal rule verdict: %w", err)
	}
	receipt.Status = ExecutionStatus(status)
	if len(errs) > 0 {
		receipt.Errors = []string(errs)
	}
	if txHash.Valid {
		receipt.ExternalTxHash = &txHash.String
	}
	return receipt, nil
}
