package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type ProveedorStore struct {
	db *sqlx.DB
}

func (ps *ProveedorStore) List(ctx context.Context, f ProveedorFilter) ([]Proveedor, int, error) {
	where := ""
	args := []any{}
	if f.Activo != nil {
		where = "WHERE activo = $1"
		args = append(args, *f.Activo)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM proveedores %s", where)
	if err := ps.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count proveedores: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM proveedores %s
		ORDER BY razon_social
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit(), f.Offset())

	var proveedores []Proveedor
	if err := ps.db.SelectContext(ctx, &proveedores, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query proveedores: %w", err)
	}
	return proveedores, total, nil
}

func (ps *ProveedorStore) GetByID(ctx context.Context, id uuid.UUID) (*Proveedor, error) {
	var proveedor Proveedor
	err := ps.db.GetContext(ctx, &proveedor, "SELECT * FROM proveedores WHERE id = $1", id)
	if err != nil {
		return nil, translate(err)
	}
	return &proveedor, nil
}

func (ps *ProveedorStore) Create(ctx context.Context, proveedor *Proveedor) error {
	query := `
		INSERT INTO proveedores (
			razon_social, nombre_comercial, rfc, direccion, ciudad, codigo_postal,
			telefono, email, contacto_principal, banco, numero_cuenta, clabe,
			tipo_proveedor, credito_dias, limite_credito, activo
		) VALUES (
			:razon_social, :nombre_comercial, :rfc, :direccion, :ciudad, :codigo_postal,
			:telefono, :email, :contacto_principal, :banco, :numero_cuenta, :clabe,
			:tipo_proveedor, :credito_dias, :limite_credito, :activo
		)
		RETURNING id, created_at, updated_at`

	rows, err := ps.db.NamedQueryContext(ctx, query, proveedor)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&proveedor.ID, &proveedor.CreatedAt, &proveedor.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan inserted proveedor: %w", err)
		}
	}
	return translate(rows.Err())
}

func (ps *ProveedorStore) Update(ctx context.Context, id uuid.UUID, patch ProveedorPatch) (*Proveedor, error) {
	proveedor, err := ps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.RazonSocial != nil {
		proveedor.RazonSocial = *patch.RazonSocial
	}
	if patch.NombreComercial != nil {
		proveedor.NombreComercial = patch.NombreComercial
	}
	if patch.Direccion != nil {
		proveedor.Direccion = patch.Direccion
	}
	if patch.Ciudad != nil {
		proveedor.Ciudad = patch.Ciudad
	}
	if patch.CodigoPostal != nil {
		proveedor.CodigoPostal = patch.CodigoPostal
	}
	if patch.Telefono != nil {
		proveedor.Telefono = patch.Telefono
	}
	if patch.Email != nil {
		proveedor.Email = patch.Email
	}
	if patch.ContactoPrincipal != nil {
		proveedor.ContactoPrincipal = patch.ContactoPrincipal
	}
	if patch.Banco != nil {
		proveedor.Banco = patch.Banco
	}
	if patch.NumeroCuenta != nil {
		proveedor.NumeroCuenta = patch.NumeroCuenta
	}
	if patch.Clabe != nil {
		proveedor.Clabe = patch.Clabe
	}
	if patch.TipoProveedor != nil {
		proveedor.TipoProveedor = patch.TipoProveedor
	}
	if patch.CreditoDias != nil {
		proveedor.CreditoDias = *patch.CreditoDias
	}
	if patch.LimiteCredito != nil {
		proveedor.LimiteCredito = *patch.LimiteCredito
	}
	if patch.Activo != nil {
		proveedor.Activo = *patch.Activo
	}

	query := `
		UPDATE proveedores SET
			razon_social = :razon_social,
			nombre_comercial = :nombre_comercial,
			direccion = :direccion,
			ciudad = :ciudad,
			codigo_postal = :codigo_postal,
			telefono = :telefono,
			email = :email,
			contacto_principal = :contacto_principal,
			banco = :banco,
			numero_cuenta = :numero_cuenta,
			clabe = :clabe,
			tipo_proveedor = :tipo_proveedor,
			credito_dias = :credito_dias,
			limite_credito = :limite_credito,
			activo = :activo,
			updated_at = NOW()
		WHERE id = :id`

	if _, err := ps.db.NamedExecContext(ctx, query, proveedor); err != nil {
		return nil, translate(err)
	}
	return ps.GetByID(ctx, id)
}

func (ps *ProveedorStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := ps.db.ExecContext(ctx, "DELETE FROM proveedores WHERE id = $1", id)
	if err != nil {
		return translate(err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreditoUsado sums the outstanding balance of the supplier's open orders.
// Cancelled orders do not consume credit.
func (ps *ProveedorStore) CreditoUsado(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(saldo_pendiente), 0)
		FROM ordenes_compra
		WHERE proveedor_id = $1 AND estado != 'cancelada'`

	var usado decimal.Decimal
	if err := ps.db.GetContext(ctx, &usado, query, id); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to query credito usado: %w", err)
	}
	return usado, nil
}
