package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BankTransactionStore struct {
	db *sqlx.DB
}

func (bs *BankTransactionStore) List(ctx context.Context, f BankTransactionFilter) ([]BankTransaction, int, error) {
	where := ""
	args := []any{}
	if f.Matched != nil {
		where = "WHERE matched = $1"
		args = append(args, *f.Matched)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM bank_transactions %s", where)
	if err := bs.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count bank transactions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM bank_transactions %s
		ORDER BY fecha DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit(), f.Offset())

	var txs []BankTransaction
	if err := bs.db.SelectContext(ctx, &txs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query bank transactions: %w", err)
	}
	return txs, total, nil
}

func (bs *BankTransactionStore) GetByID(ctx context.Context, id uuid.UUID) (*BankTransaction, error) {
	var tx BankTransaction
	err := bs.db.GetContext(ctx, &tx, "SELECT * FROM bank_transactions WHERE id = $1", id)
	if err != nil {
		return nil, translate(err)
	}
	return &tx, nil
}

func (bs *BankTransactionStore) Create(ctx context.Context, tx *BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (
			fecha, descripcion_banco, descripcion_banco_normalizada, monto,
			referencia_bancaria, origen
		) VALUES (
			:fecha, :descripcion_banco, :descripcion_banco_normalizada, :monto,
			:referencia_bancaria, :origen
		)
		RETURNING id, matched, match_confidence, match_manual, created_at, updated_at`

	rows, err := bs.db.NamedQueryContext(ctx, query, tx)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	if rows.Next() {
		err := rows.Scan(&tx.ID, &tx.Matched, &tx.MatchConfidence, &tx.MatchManual, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan inserted bank transaction: %w", err)
		}
	}
	return translate(rows.Err())
}

// ImportBatch inserts a statement batch in one transaction and reports the
// inserted count.
func (bs *BankTransactionStore) ImportBatch(ctx context.Context, txs []BankTransaction) (int, error) {
	dbTx, err := bs.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO bank_transactions (
			fecha, descripcion_banco, descripcion_banco_normalizada, monto,
			referencia_bancaria, origen
		) VALUES (
			:fecha, :descripcion_banco, :descripcion_banco_normalizada, :monto,
			:referencia_bancaria, :origen
		)`

	inserted := 0
	for i := range txs {
		if _, err := dbTx.NamedExecContext(ctx, query, txs[i]); err != nil {
			return 0, translate(err)
		}
		inserted++
	}
	if err := dbTx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Match links the transaction to a purchase order with a caller-supplied
// confidence. The latest call wins, overwriting any prior link.
func (bs *BankTransactionStore) Match(ctx context.Context, id, ordenID uuid.UUID, confidence int, manual bool) (*BankTransaction, error) {
	query := `
		UPDATE bank_transactions SET
			orden_compra_id = $2,
			matched = TRUE,
			match_confidence = $3,
			match_manual = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING *`

	var tx BankTransaction
	err := bs.db.GetContext(ctx, &tx, query, id, ordenID, confidence, manual)
	if err != nil {
		return nil, translate(err)
	}
	return &tx, nil
}
