package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

type Obra struct {
	ID                 uuid.UUID       `db:"id" json:"id"`
	Codigo             string          `db:"codigo" json:"codigo"`
	Nombre             string          `db:"nombre" json:"nombre"`
	NumeroContrato     string          `db:"numero_contrato" json:"numero_contrato"`
	Cliente            string          `db:"cliente" json:"cliente"`
	Residente          string          `db:"residente" json:"residente"`
	Direccion          *string         `db:"direccion" json:"direccion"`
	MontoContratado    decimal.Decimal `db:"monto_contratado" json:"monto_contratado"`
	FechaInicio        time.Time       `db:"fecha_inicio" json:"fecha_inicio"`
	FechaFinProgramada time.Time       `db:"fecha_fin_programada" json:"fecha_fin_programada"`
	PlazoEjecucion     int             `db:"plazo_ejecucion" json:"plazo_ejecucion"`
	Estado             string          `db:"estado" json:"estado"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// ObraPatch enumerates the updatable fields; nil means leave unchanged.
type ObraPatch struct {
	Nombre             *string          `json:"nombre"`
	Cliente            *string          `json:"cliente"`
	Residente          *string          `json:"residente"`
	Direccion          *string          `json:"direccion"`
	MontoContratado    *decimal.Decimal `json:"monto_contratado"`
	FechaInicio        *time.Time       `json:"fecha_inicio"`
	FechaFinProgramada *time.Time       `json:"fecha_fin_programada"`
	PlazoEjecucion     *int             `json:"plazo_ejecucion"`
	Estado             *string          `json:"estado"`
}

type Proveedor struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	RazonSocial       string          `db:"razon_social" json:"razon_social"`
	NombreComercial   *string         `db:"nombre_comercial" json:"nombre_comercial"`
	RFC               string          `db:"rfc" json:"rfc"`
	Direccion         *string         `db:"direccion" json:"direccion"`
	Ciudad            *string         `db:"ciudad" json:"ciudad"`
	CodigoPostal      *string         `db:"codigo_postal" json:"codigo_postal"`
	Telefono          *string         `db:"telefono" json:"telefono"`
	Email             *string         `db:"email" json:"email"`
	ContactoPrincipal *string         `db:"contacto_principal" json:"contacto_principal"`
	Banco             *string         `db:"banco" json:"banco"`
	NumeroCuenta      *string         `db:"numero_cuenta" json:"numero_cuenta"`
	Clabe             *string         `db:"clabe" json:"clabe"`
	TipoProveedor     *string         `db:"tipo_proveedor" json:"tipo_proveedor"`
	CreditoDias       int             `db:"credito_dias" json:"credito_dias"`
	LimiteCredito     decimal.Decimal `db:"limite_credito" json:"limite_credito"`
	Activo            bool            `db:"activo" json:"activo"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

type ProveedorPatch struct {
	RazonSocial       *string          `json:"razon_social"`
	NombreComercial   *string          `json:"nombre_comercial"`
	Direccion         *string          `json:"direccion"`
	Ciudad            *string          `json:"ciudad"`
	CodigoPostal      *string          `json:"codigo_postal"`
	Telefono          *string          `json:"telefono"`
	Email             *string          `json:"email"`
	ContactoPrincipal *string          `json:"contacto_principal"`
	Banco             *string          `json:"banco"`
	NumeroCuenta      *string          `json:"numero_cuenta"`
	Clabe             *string          `json:"clabe"`
	TipoProveedor     *string          `json:"tipo_proveedor"`
	CreditoDias       *int             `json:"credito_dias"`
	LimiteCredito     *decimal.Decimal `json:"limite_credito"`
	Activo            *bool            `json:"activo"`
}

type Requisicion struct {
	ID                uuid.UUID         `db:"id" json:"id"`
	NumeroRequisicion string            `db:"numero_requisicion" json:"numero_requisicion"`
	ObraID            uuid.UUID         `db:"obra_id" json:"obra_id"`
	SolicitadoPor     string            `db:"solicitado_por" json:"solicitado_por"`
	FechaSolicitud    time.Time         `db:"fecha_solicitud" json:"fecha_solicitud"`
	Urgencia          string            `db:"urgencia" json:"urgencia"`
	Estado            string            `db:"estado" json:"estado"`
	Observaciones     *string           `db:"observaciones" json:"observaciones"`
	AprobadoPor       *string           `db:"aprobado_por" json:"aprobado_por"`
	FechaAprobacion   *time.Time        `db:"fecha_aprobacion" json:"fecha_aprobacion"`
	MotivoRechazo     *string           `db:"motivo_rechazo" json:"motivo_rechazo"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
	Items             []RequisicionItem `db:"-" json:"items"`
}

type RequisicionItem struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	RequisicionID uuid.UUID       `db:"requisicion_id" json:"requisicion_id"`
	Cantidad      decimal.Decimal `db:"cantidad" json:"cantidad"`
	Unidad        string          `db:"unidad" json:"unidad"`
	Descripcion   string          `db:"descripcion" json:"descripcion"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

type RequisicionPatch struct {
	Urgencia      *string `json:"urgencia"`
	Estado        *string `json:"estado"`
	Observaciones *string `json:"observaciones"`
	AprobadoPor   *string `json:"aprobado_por"`
	MotivoRechazo *string `json:"motivo_rechazo"`
}

type OrdenCompra struct {
	ID             uuid.UUID         `db:"id" json:"id"`
	NumeroOrden    string            `db:"numero_orden" json:"numero_orden"`
	ObraID         uuid.UUID         `db:"obra_id" json:"obra_id"`
	ProveedorID    uuid.UUID         `db:"proveedor_id" json:"proveedor_id"`
	RequisicionID  *uuid.UUID        `db:"requisicion_id" json:"requisicion_id"`
	FechaEmision   time.Time         `db:"fecha_emision" json:"fecha_emision"`
	FechaEntrega   time.Time         `db:"fecha_entrega" json:"fecha_entrega"`
	Estado         string            `db:"estado" json:"estado"`
	TipoEntrega    *string           `db:"tipo_entrega" json:"tipo_entrega"`
	Subtotal       decimal.Decimal   `db:"subtotal" json:"subtotal"`
	Descuento      decimal.Decimal   `db:"descuento" json:"descuento"`
	DescuentoMonto decimal.Decimal   `db:"descuento_monto" json:"descuento_monto"`
	TieneIVA       bool              `db:"tiene_iva" json:"tiene_iva"`
	IVA            decimal.Decimal   `db:"iva" json:"iva"`
	Total          decimal.Decimal   `db:"total" json:"total"`
	MontoPagado    decimal.Decimal   `db:"monto_pagado" json:"monto_pagado"`
	SaldoPendiente decimal.Decimal   `db:"saldo_pendiente" json:"saldo_pendiente"`
	EstadoPago     string            `db:"estado_pago" json:"estado_pago"`
	Observaciones  *string           `db:"observaciones" json:"observaciones"`
	CreadoPor      *string           `db:"creado_por" json:"creado_por"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
	Items          []OrdenCompraItem `db:"-" json:"items"`
}

type OrdenCompraItem struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	OrdenCompraID  uuid.UUID       `db:"orden_compra_id" json:"orden_compra_id"`
	Cantidad       decimal.Decimal `db:"cantidad" json:"cantidad"`
	Unidad         string          `db:"unidad" json:"unidad"`
	Descripcion    string          `db:"descripcion" json:"descripcion"`
	PrecioUnitario decimal.Decimal `db:"precio_unitario" json:"precio_unitario"`
	Total          decimal.Decimal `db:"total" json:"total"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

type OrdenCompraPatch struct {
	FechaEntrega  *time.Time         `json:"fecha_entrega"`
	Estado        *string            `json:"estado"`
	TipoEntrega   *string            `json:"tipo_entrega"`
	Descuento     *decimal.Decimal   `json:"descuento"`
	TieneIVA      *bool              `json:"tiene_iva"`
	Observaciones *string            `json:"observaciones"`
	Items         *[]OrdenCompraItem `json:"items"`
}

type Pago struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	NumeroPago     string          `db:"numero_pago" json:"numero_pago"`
	ObraID         uuid.UUID       `db:"obra_id" json:"obra_id"`
	ProveedorID    uuid.UUID       `db:"proveedor_id" json:"proveedor_id"`
	OrdenCompraID  uuid.UUID       `db:"orden_compra_id" json:"orden_compra_id"`
	Monto          decimal.Decimal `db:"monto" json:"monto"`
	MetodoPago     *string         `db:"metodo_pago" json:"metodo_pago"`
	FechaProgramada time.Time      `db:"fecha_programada" json:"fecha_programada"`
	FechaProcesado *time.Time      `db:"fecha_procesado" json:"fecha_procesado"`
	Estado         string          `db:"estado" json:"estado"`
	Referencia     *string         `db:"referencia" json:"referencia"`
	Comprobante    *string         `db:"comprobante" json:"comprobante"`
	Observaciones  *string         `db:"observaciones" json:"observaciones"`
	ProcesadoPor   *string         `db:"procesado_por" json:"procesado_por"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

type PagoPatch struct {
	Monto           *decimal.Decimal `json:"monto"`
	MetodoPago      *string          `json:"metodo_pago"`
	FechaProgramada *time.Time       `json:"fecha_programada"`
	Referencia      *string          `json:"referencia"`
	Comprobante     *string          `json:"comprobante"`
	Observaciones   *string          `json:"observaciones"`
}

// Gasto is one cost-ledger entry. Direct costs belong to a project; indirect
// costs have no project and are distributed monthly.
type Gasto struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	ObraID    *uuid.UUID      `db:"obra_id" json:"obra_id"`
	Tipo      string          `db:"tipo" json:"tipo"`
	Concepto  string          `db:"concepto" json:"concepto"`
	Monto     decimal.Decimal `db:"monto" json:"monto"`
	Fecha     time.Time       `db:"fecha" json:"fecha"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

const (
	GastoDirecto   = "directo"
	GastoIndirecto = "indirecto"
)

// DistribucionGasto is one project's stored share of a month's indirect
// pool. Re-running the distribution for the same month overwrites it.
type DistribucionGasto struct {
	ID                 uuid.UUID       `db:"id" json:"-"`
	ObraID             uuid.UUID       `db:"obra_id" json:"obra_id"`
	ObraCodigo         string          `db:"obra_codigo" json:"obra_codigo"`
	ObraNombre         string          `db:"obra_nombre" json:"obra_nombre"`
	Mes                string          `db:"mes" json:"-"`
	GastosDirectos     decimal.Decimal `db:"gastos_directos" json:"gastos_directos"`
	PorcentajeAsignado decimal.Decimal `db:"porcentaje_asignado" json:"porcentaje_asignado"`
	MontoAsignado      decimal.Decimal `db:"monto_asignado" json:"gastos_indirectos_asignados"`
	TotalObra          decimal.Decimal `db:"total_obra" json:"total_gastos_obra"`
}

type Destajo struct {
	ID                 uuid.UUID       `db:"id" json:"id"`
	ObraID             uuid.UUID       `db:"obra_id" json:"obra_id"`
	Destajista         string          `db:"destajista" json:"destajista"`
	DestajistaRFC      *string         `db:"destajista_rfc" json:"destajista_rfc"`
	DestajistaTelefono *string         `db:"destajista_telefono" json:"destajista_telefono"`
	Concepto           string          `db:"concepto" json:"concepto"`
	Categoria          *string         `db:"categoria" json:"categoria"`
	Semana             *string         `db:"semana" json:"semana"`
	FechaInicio        *time.Time      `db:"fecha_inicio" json:"fecha_inicio"`
	FechaFin           *time.Time      `db:"fecha_fin" json:"fecha_fin"`
	Cantidad           decimal.Decimal `db:"cantidad" json:"cantidad"`
	Unidad             string          `db:"unidad" json:"unidad"`
	PrecioUnitario     decimal.Decimal `db:"precio_unitario" json:"precio_unitario"`
	Total              decimal.Decimal `db:"total" json:"total"`
	Estado             string          `db:"estado" json:"estado"`
	Observaciones      *string         `db:"observaciones" json:"observaciones"`
	Metadata           types.JSONText  `db:"metadata" json:"metadata"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
}

type BankTransaction struct {
	ID                          uuid.UUID       `db:"id" json:"id"`
	Fecha                       time.Time       `db:"fecha" json:"fecha"`
	DescripcionBanco            string          `db:"descripcion_banco" json:"descripcion_banco"`
	DescripcionBancoNormalizada string          `db:"descripcion_banco_normalizada" json:"descripcion_banco_normalizada"`
	Monto                       decimal.Decimal `db:"monto" json:"monto"`
	ReferenciaBancaria          *string         `db:"referencia_bancaria" json:"referencia_bancaria"`
	OrdenCompraID               *uuid.UUID      `db:"orden_compra_id" json:"orden_compra_id"`
	Matched                     bool            `db:"matched" json:"matched"`
	Origen                      string          `db:"origen" json:"origen"`
	MatchConfidence             int             `db:"match_confidence" json:"match_confidence"`
	MatchManual                 bool            `db:"match_manual" json:"match_manual"`
	CreatedAt                   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt                   time.Time       `db:"updated_at" json:"updated_at"`
}

// OrdenPorVencer joins an open order with its supplier's credit terms for
// the due-date alert feed. Urgency classification happens in the handler.
type OrdenPorVencer struct {
	OrdenCompraID uuid.UUID       `db:"orden_compra_id" json:"orden_compra_id"`
	NumeroOrden   string          `db:"numero_orden" json:"numero_orden"`
	ObraCodigo    string          `db:"obra_codigo" json:"obra_codigo"`
	ObraNombre    string          `db:"obra_nombre" json:"obra_nombre"`
	Proveedor     string          `db:"proveedor" json:"proveedor"`
	FechaOrden    time.Time       `db:"fecha_orden" json:"fecha_orden"`
	DiasCredito   int             `db:"dias_credito" json:"dias_credito"`
	TotalOrden    decimal.Decimal `db:"total_orden" json:"total_orden"`
	MontoPagado   decimal.Decimal `db:"monto_pagado" json:"monto_pagado"`
	MontoPendiente decimal.Decimal `db:"monto_pendiente" json:"monto_pendiente"`
}

type Estadisticas struct {
	TotalObras         int             `db:"total_obras" json:"totalObras"`
	ObrasActivas       int             `db:"obras_activas" json:"obrasActivas"`
	TotalOrdenes       int             `db:"total_ordenes" json:"totalOrdenes"`
	TotalRequisiciones int             `db:"total_requisiciones" json:"totalRequisiciones"`
	TotalPagos         int             `db:"total_pagos" json:"totalPagos"`
	MontoTotalOrdenes  decimal.Decimal `db:"monto_total_ordenes" json:"montoTotalOrdenes"`
	MontoTotalPagado   decimal.Decimal `db:"monto_total_pagado" json:"montoTotalPagado"`
	MontoPendientePago decimal.Decimal `db:"monto_pendiente_pago" json:"montoPendientePago"`
}

type ReporteObraFinanciero struct {
	ObraID                    uuid.UUID       `db:"obra_id" json:"obra_id"`
	ObraCodigo                string          `db:"obra_codigo" json:"obra_codigo"`
	ObraNombre                string          `db:"obra_nombre" json:"obra_nombre"`
	Cliente                   string          `db:"cliente" json:"cliente"`
	PeriodoInicio             string          `db:"-" json:"periodo_inicio"`
	PeriodoFin                string          `db:"-" json:"periodo_fin"`
	TotalOrdenesCompra        decimal.Decimal `db:"total_ordenes_compra" json:"total_ordenes_compra"`
	TotalDestajos             decimal.Decimal `db:"total_destajos" json:"total_destajos"`
	TotalPagado               decimal.Decimal `db:"total_pagado" json:"total_pagado"`
	PendientePago             decimal.Decimal `db:"pendiente_pago" json:"pendiente_pago"`
	GastosDirectos            decimal.Decimal `db:"gastos_directos" json:"gastos_directos"`
	GastosIndirectosAsignados decimal.Decimal `db:"gastos_indirectos_asignados" json:"gastos_indirectos_asignados"`
	TotalGastos               decimal.Decimal `db:"total_gastos" json:"total_gastos"`
}
