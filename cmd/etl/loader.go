package main

import (
	"context"
	"fmt"
	"os"

	"github.com/idp-construccion/erp-backend/internal/conciliacion"
	"github.com/idp-construccion/erp-backend/internal/logger"
	"github.com/idp-construccion/erp-backend/internal/store"
)

// loadStatement parses a bank CSV export and inserts its movements as
// unmatched bank transactions. Rows the parser cannot read are counted
// and skipped, never aborted on.
func loadStatement(ctx context.Context, path string, storage *store.Storage, appLogger *logger.Logger) (int, int, error) {
	const component = "Loader"

	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open statement file: %w", err)
	}
	defer file.Close()

	resultado, err := conciliacion.LeerEstadoCuenta(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse statement file: %w", err)
	}
	appLogger.Info(component, "Statement parsed: movimientos=%d omitidas=%d", len(resultado.Movimientos), resultado.Omitidas)

	txs := make([]store.BankTransaction, 0, len(resultado.Movimientos))
	for _, m := range resultado.Movimientos {
		var referencia *string
		if m.Referencia != "" {
			ref := m.Referencia
			referencia = &ref
		}
		txs = append(txs, store.BankTransaction{
			Fecha:                       m.Fecha,
			DescripcionBanco:            m.Descripcion,
			DescripcionBancoNormalizada: m.DescripcionNormalizada,
			Monto:                       m.Monto,
			ReferenciaBancaria:          referencia,
			Origen:                      "csv",
		})
	}

	insertadas, err := storage.BankTransactions.ImportBatch(ctx, txs)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to insert bank transactions: %w", err)
	}

	return insertadas, resultado.Omitidas, nil
}
