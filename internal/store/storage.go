package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Pagination is the page window applied to list queries. Offset is derived,
// never taken from the client.
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Limit() int {
	return p.PageSize
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type ObraFilter struct {
	Estado string
	Pagination
}

type ProveedorFilter struct {
	Activo *bool
	Pagination
}

type RequisicionFilter struct {
	ObraID *uuid.UUID
	Estado string
	Pagination
}

type OrdenFilter struct {
	ObraID      *uuid.UUID
	ProveedorID *uuid.UUID
	Estado      string
	Pagination
}

type PagoFilter struct {
	OrdenCompraID *uuid.UUID
	Estado        string
	Pagination
}

type GastoFilter struct {
	ObraID *uuid.UUID
	Tipo   string
	Mes    string
	Pagination
}

type DestajoFilter struct {
	ObraID *uuid.UUID
	Estado string
	Pagination
}

type BankTransactionFilter struct {
	Matched *bool
	Pagination
}

// GastoDirectoMes is a project's summed direct cost for one month, the
// input row of the indirect-cost distribution.
type GastoDirectoMes struct {
	ObraID     uuid.UUID       `db:"obra_id"`
	ObraCodigo string          `db:"obra_codigo"`
	ObraNombre string          `db:"obra_nombre"`
	Monto      decimal.Decimal `db:"monto"`
}

type Storage struct {
	Obras interface {
		List(ctx context.Context, f ObraFilter) ([]Obra, int, error)
		GetByID(ctx context.Context, id uuid.UUID) (*Obra, error)
		Create(ctx context.Context, obra *Obra) error
		Update(ctx context.Context, id uuid.UUID, patch ObraPatch) (*Obra, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	Proveedores interface {
		List(ctx context.Context, f ProveedorFilter) ([]Proveedor, int, error)
		GetByID(ctx context.Context, id uuid.UUID) (*Proveedor, error)
		Create(ctx context.Context, proveedor *Proveedor) error
		Update(ctx context.Context, id uuid.UUID, patch ProveedorPatch) (*Proveedor, error)
		Delete(ctx context.Context, id uuid.UUID) error
		CreditoUsado(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	}

	Requisiciones interface {
		List(ctx context.Context, f RequisicionFilter) ([]Requisicion, int, error)
		GetByID(ctx context.Context, id uuid.UUID) (*Requisicion, error)
		Create(ctx context.Context, requisicion *Requisicion) error
		Update(ctx context.Context, id uuid.UUID, patch RequisicionPatch) (*Requisicion, error)
		Delete(ctx context.Context, id uuid.UUID) error
		SiguienteNumero(ctx context.Context, year int) (string, error)
	}

	Ordenes interface {
		List(ctx context.Context, f OrdenFilter) ([]OrdenCompra, int, error)
		GetByID(ctx context.Context, id uuid.UUID) (*OrdenCompra, error)
		Create(ctx context.Context, orden *OrdenCompra) error
		Update(ctx context.Context, id uuid.UUID, orden *OrdenCompra, replaceItems bool) error
		Delete(ctx context.Context, id uuid.UUID) error
		SiguienteNumero(ctx context.Context, year int) (string, error)
	}

	Pagos interface {
		List(ctx context.Context, f PagoFilter) ([]Pago, int, error)
		GetByID(ctx context.Context, id uuid.UUID) (*Pago, error)
		Create(ctx context.Context, pago *Pago) error
		Update(ctx context.Context, id uuid.UUID, patch PagoPatch) (*Pago, error)
		Procesar(ctx context.Context, id uuid.UUID, procesadoPor string) (*Pago, error)
		Delete(ctx context.Context, id uuid.UUID) error
		SiguienteNumero(ctx context.Context, year int) (string, error)
	}

	Gastos interface {
		List(ctx context.Context, f GastoFilter) ([]Gasto, int, error)
		Create(ctx context.Context, gasto *Gasto) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	Distribucion interface {
		TotalIndirectos(ctx context.Context, mes string) (decimal.Decimal, error)
		DirectosPorObra(ctx context.Context, mes string) ([]GastoDirectoMes, error)
		Guardar(ctx context.Context, mes string, filas []DistribucionGasto) error
		PorMes(ctx context.Context, mes string) ([]DistribucionGasto, error)
	}

	Destajos interface {
		List(ctx context.Context, f DestajoFilter) ([]Destajo, int, error)
		Create(ctx context.Context, destajo *Destajo) error
	}

	BankTransactions interface {
		List(ctx context.Context, f BankTransactionFilter) ([]BankTransaction, int, error)
		GetByID(ctx context.Context, id uuid.UUID) (*BankTransaction, error)
		Create(ctx context.Context, tx *BankTransaction) error
		ImportBatch(ctx context.Context, txs []BankTransaction) (int, error)
		Match(ctx context.Context, id, ordenID uuid.UUID, confidence int, manual bool) (*BankTransaction, error)
	}

	Alertas interface {
		OrdenesPorVencer(ctx context.Context) ([]OrdenPorVencer, error)
	}

	Reportes interface {
		Estadisticas(ctx context.Context) (*Estadisticas, error)
		ObraFinanciero(ctx context.Context, obraID uuid.UUID, inicio, fin time.Time) (*ReporteObraFinanciero, error)
	}

	Health interface {
		Ping(ctx context.Context) error
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Obras:            &ObraStore{db: db},
		Proveedores:      &ProveedorStore{db: db},
		Requisiciones:    &RequisicionStore{db: db},
		Ordenes:          &OrdenStore{db: db},
		Pagos:            &PagoStore{db: db},
		Gastos:           &GastoStore{db: db},
		Distribucion:     &DistribucionStore{db: db},
		Destajos:         &DestajoStore{db: db},
		BankTransactions: &BankTransactionStore{db: db},
		Alertas:          &AlertaStore{db: db},
		Reportes:         &ReporteStore{db: db},
		Health:           &HealthStore{db: db},
	}
}

type HealthStore struct {
	db *sqlx.DB
}

func (hs *HealthStore) Ping(ctx context.Context) error {
	var one int
	return hs.db.GetContext(ctx, &one, "SELECT 1")
}
