package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements is the idempotent bootstrap DDL, executed once at startup
// before the pool is handed to request handlers.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS obras (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		codigo VARCHAR(50) UNIQUE NOT NULL,
		nombre VARCHAR(255) NOT NULL,
		numero_contrato VARCHAR(100) UNIQUE NOT NULL,
		cliente VARCHAR(255) NOT NULL,
		residente VARCHAR(255) NOT NULL,
		direccion TEXT,
		monto_contratado NUMERIC(15, 2) NOT NULL CHECK (monto_contratado >= 0),
		fecha_inicio DATE NOT NULL,
		fecha_fin_programada DATE NOT NULL,
		plazo_ejecucion INTEGER NOT NULL CHECK (plazo_ejecucion >= 0),
		estado VARCHAR(50) NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS proveedores (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		razon_social VARCHAR(255) NOT NULL,
		nombre_comercial VARCHAR(255),
		rfc VARCHAR(13) UNIQUE NOT NULL,
		direccion TEXT,
		ciudad VARCHAR(100),
		codigo_postal VARCHAR(10),
		telefono VARCHAR(20),
		email VARCHAR(255),
		contacto_principal VARCHAR(255),
		banco VARCHAR(100),
		numero_cuenta VARCHAR(50),
		clabe VARCHAR(18),
		tipo_proveedor VARCHAR(50) CHECK (tipo_proveedor IN ('material', 'servicio', 'renta', 'mixto')),
		credito_dias INTEGER DEFAULT 0,
		limite_credito NUMERIC(15, 2) DEFAULT 0,
		activo BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS requisiciones (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		numero_requisicion VARCHAR(50) UNIQUE NOT NULL,
		obra_id UUID NOT NULL REFERENCES obras(id) ON DELETE CASCADE,
		solicitado_por VARCHAR(255) NOT NULL,
		fecha_solicitud TIMESTAMPTZ DEFAULT NOW(),
		urgencia VARCHAR(50) NOT NULL CHECK (urgencia IN ('normal', 'urgente', 'muy_urgente')),
		estado VARCHAR(50) NOT NULL CHECK (estado IN ('pendiente', 'aprobada', 'rechazada', 'en_proceso', 'completada')),
		observaciones TEXT,
		aprobado_por VARCHAR(255),
		fecha_aprobacion TIMESTAMPTZ,
		motivo_rechazo TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS requisicion_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		requisicion_id UUID NOT NULL REFERENCES requisiciones(id) ON DELETE CASCADE,
		cantidad NUMERIC(10, 2) NOT NULL CHECK (cantidad >= 0),
		unidad VARCHAR(20) NOT NULL,
		descripcion TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS ordenes_compra (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		numero_orden VARCHAR(50) UNIQUE NOT NULL,
		obra_id UUID NOT NULL REFERENCES obras(id) ON DELETE CASCADE,
		proveedor_id UUID NOT NULL REFERENCES proveedores(id) ON DELETE RESTRICT,
		requisicion_id UUID REFERENCES requisiciones(id) ON DELETE SET NULL,
		fecha_emision TIMESTAMPTZ DEFAULT NOW(),
		fecha_entrega DATE NOT NULL,
		estado VARCHAR(50) NOT NULL CHECK (estado IN ('borrador', 'emitida', 'recibida', 'facturada', 'pagada', 'cancelada')),
		tipo_entrega VARCHAR(50) CHECK (tipo_entrega IN ('en_obra', 'bodega', 'recoger')),
		subtotal NUMERIC(15, 2) NOT NULL CHECK (subtotal >= 0),
		descuento NUMERIC(5, 2) DEFAULT 0 CHECK (descuento >= 0),
		descuento_monto NUMERIC(15, 2) DEFAULT 0 CHECK (descuento_monto >= 0),
		tiene_iva BOOLEAN NOT NULL DEFAULT TRUE,
		iva NUMERIC(15, 2) DEFAULT 0 CHECK (iva >= 0),
		total NUMERIC(15, 2) NOT NULL CHECK (total >= 0),
		monto_pagado NUMERIC(15, 2) NOT NULL DEFAULT 0,
		saldo_pendiente NUMERIC(15, 2) NOT NULL DEFAULT 0,
		estado_pago VARCHAR(50) NOT NULL DEFAULT 'pendiente' CHECK (estado_pago IN ('pendiente', 'parcial', 'pagado')),
		observaciones TEXT,
		creado_por VARCHAR(255),
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS orden_compra_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		orden_compra_id UUID NOT NULL REFERENCES ordenes_compra(id) ON DELETE CASCADE,
		cantidad NUMERIC(10, 2) NOT NULL CHECK (cantidad >= 0),
		unidad VARCHAR(20) NOT NULL,
		descripcion TEXT NOT NULL,
		precio_unitario NUMERIC(15, 2) NOT NULL CHECK (precio_unitario >= 0),
		total NUMERIC(15, 2) NOT NULL CHECK (total >= 0),
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS pagos (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		numero_pago VARCHAR(50) UNIQUE NOT NULL,
		obra_id UUID NOT NULL REFERENCES obras(id) ON DELETE CASCADE,
		proveedor_id UUID NOT NULL REFERENCES proveedores(id) ON DELETE RESTRICT,
		orden_compra_id UUID NOT NULL REFERENCES ordenes_compra(id) ON DELETE RESTRICT,
		monto NUMERIC(15, 2) NOT NULL CHECK (monto >= 0),
		metodo_pago VARCHAR(50) CHECK (metodo_pago IN ('transferencia', 'cheque', 'efectivo')),
		fecha_programada DATE NOT NULL,
		fecha_procesado TIMESTAMPTZ,
		estado VARCHAR(50) NOT NULL CHECK (estado IN ('programado', 'procesando', 'completado', 'cancelado')),
		referencia VARCHAR(100),
		comprobante TEXT,
		observaciones TEXT,
		procesado_por VARCHAR(255),
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS gastos (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		obra_id UUID REFERENCES obras(id) ON DELETE CASCADE,
		tipo VARCHAR(20) NOT NULL CHECK (tipo IN ('directo', 'indirecto')),
		concepto TEXT NOT NULL,
		monto NUMERIC(15, 2) NOT NULL CHECK (monto >= 0),
		fecha DATE NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		CHECK (tipo != 'directo' OR obra_id IS NOT NULL)
	)`,

	`CREATE TABLE IF NOT EXISTS distribucion_gastos_indirectos (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		obra_id UUID NOT NULL REFERENCES obras(id) ON DELETE CASCADE,
		mes VARCHAR(7) NOT NULL,
		gastos_directos NUMERIC(15, 2) NOT NULL,
		porcentaje_asignado NUMERIC(9, 4) NOT NULL,
		monto_asignado NUMERIC(15, 2) NOT NULL,
		total_obra NUMERIC(15, 2) NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW(),
		UNIQUE (obra_id, mes)
	)`,

	`CREATE TABLE IF NOT EXISTS destajos (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		obra_id UUID NOT NULL REFERENCES obras(id) ON DELETE CASCADE,
		destajista VARCHAR(255) NOT NULL,
		destajista_rfc VARCHAR(13),
		destajista_telefono VARCHAR(20),
		concepto TEXT NOT NULL,
		categoria VARCHAR(100),
		semana VARCHAR(20),
		fecha_inicio DATE,
		fecha_fin DATE,
		cantidad NUMERIC(10, 2) NOT NULL CHECK (cantidad >= 0),
		unidad VARCHAR(20) NOT NULL,
		precio_unitario NUMERIC(15, 2) NOT NULL CHECK (precio_unitario >= 0),
		total NUMERIC(15, 2) NOT NULL CHECK (total >= 0),
		estado VARCHAR(50) NOT NULL DEFAULT 'pendiente',
		observaciones TEXT,
		metadata JSONB DEFAULT '{}',
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS bank_transactions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		fecha DATE NOT NULL,
		descripcion_banco TEXT NOT NULL,
		descripcion_banco_normalizada TEXT,
		monto NUMERIC(15, 2) NOT NULL,
		referencia_bancaria VARCHAR(100),
		orden_compra_id UUID REFERENCES ordenes_compra(id) ON DELETE SET NULL,
		matched BOOLEAN DEFAULT FALSE,
		origen VARCHAR(50) NOT NULL DEFAULT 'csv',
		match_confidence INTEGER DEFAULT 0,
		match_manual BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_obras_estado ON obras(estado)`,
	`CREATE INDEX IF NOT EXISTS idx_proveedores_activo ON proveedores(activo)`,
	`CREATE INDEX IF NOT EXISTS idx_requisiciones_obra ON requisiciones(obra_id)`,
	`CREATE INDEX IF NOT EXISTS idx_requisicion_items_requisicion ON requisicion_items(requisicion_id)`,
	`CREATE INDEX IF NOT EXISTS idx_ordenes_compra_obra ON ordenes_compra(obra_id)`,
	`CREATE INDEX IF NOT EXISTS idx_ordenes_compra_proveedor ON ordenes_compra(proveedor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orden_compra_items_oc ON orden_compra_items(orden_compra_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pagos_orden_compra ON pagos(orden_compra_id)`,
	`CREATE INDEX IF NOT EXISTS idx_gastos_obra_fecha ON gastos(obra_id, fecha)`,
	`CREATE INDEX IF NOT EXISTS idx_gastos_tipo ON gastos(tipo)`,
	`CREATE INDEX IF NOT EXISTS idx_destajos_obra ON destajos(obra_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bank_transactions_fecha ON bank_transactions(fecha)`,
	`CREATE INDEX IF NOT EXISTS idx_bank_transactions_matched ON bank_transactions(matched)`,
	`CREATE INDEX IF NOT EXISTS idx_bank_transactions_oc ON bank_transactions(orden_compra_id)`,
}

// EnsureSchema runs the bootstrap DDL. Failure here aborts startup.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
