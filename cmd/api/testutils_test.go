package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/logger"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
)

func newTestApplication() *application {
	return &application{
		config: config{adminPassword: "secreto"},
		logger: logger.New(logger.LevelError),
	}
}

func executeRequest(app *application, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	app.mount().ServeHTTP(rr, req)
	return rr
}

// Stubs implement only what each test exercises; anything else panics so a
// test never silently passes through an unexpected store call.

type obrasStub struct {
	list    func(context.Context, store.ObraFilter) ([]store.Obra, int, error)
	getByID func(context.Context, uuid.UUID) (*store.Obra, error)
	create  func(context.Context, *store.Obra) error
}

func (s *obrasStub) List(ctx context.Context, f store.ObraFilter) ([]store.Obra, int, error) {
	return s.list(ctx, f)
}

func (s *obrasStub) GetByID(ctx context.Context, id uuid.UUID) (*store.Obra, error) {
	return s.getByID(ctx, id)
}

func (s *obrasStub) Create(ctx context.Context, obra *store.Obra) error {
	return s.create(ctx, obra)
}

func (s *obrasStub) Update(context.Context, uuid.UUID, store.ObraPatch) (*store.Obra, error) {
	panic("not implemented")
}

func (s *obrasStub) Delete(context.Context, uuid.UUID) error {
	panic("not implemented")
}

type proveedoresStub struct {
	getByID      func(context.Context, uuid.UUID) (*store.Proveedor, error)
	creditoUsado func(context.Context, uuid.UUID) (decimal.Decimal, error)
}

func (s *proveedoresStub) List(context.Context, store.ProveedorFilter) ([]store.Proveedor, int, error) {
	panic("not implemented")
}

func (s *proveedoresStub) GetByID(ctx context.Context, id uuid.UUID) (*store.Proveedor, error) {
	return s.getByID(ctx, id)
}

func (s *proveedoresStub) Create(context.Context, *store.Proveedor) error {
	panic("not implemented")
}

func (s *proveedoresStub) Update(context.Context, uuid.UUID, store.ProveedorPatch) (*store.Proveedor, error) {
	panic("not implemented")
}

func (s *proveedoresStub) Delete(context.Context, uuid.UUID) error {
	panic("not implemented")
}

func (s *proveedoresStub) CreditoUsado(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	return s.creditoUsado(ctx, id)
}

type ordenesStub struct {
	getByID         func(context.Context, uuid.UUID) (*store.OrdenCompra, error)
	create          func(context.Context, *store.OrdenCompra) error
	siguienteNumero func(context.Context, int) (string, error)
}

func (s *ordenesStub) List(context.Context, store.OrdenFilter) ([]store.OrdenCompra, int, error) {
	panic("not implemented")
}

func (s *ordenesStub) GetByID(ctx context.Context, id uuid.UUID) (*store.OrdenCompra, error) {
	return s.getByID(ctx, id)
}

func (s *ordenesStub) Create(ctx context.Context, orden *store.OrdenCompra) error {
	return s.create(ctx, orden)
}

func (s *ordenesStub) Update(context.Context, uuid.UUID, *store.OrdenCompra, bool) error {
	panic("not implemented")
}

func (s *ordenesStub) Delete(context.Context, uuid.UUID) error {
	panic("not implemented")
}

func (s *ordenesStub) SiguienteNumero(ctx context.Context, year int) (string, error) {
	return s.siguienteNumero(ctx, year)
}

type bankTransactionsStub struct {
	match       func(context.Context, uuid.UUID, uuid.UUID, int, bool) (*store.BankTransaction, error)
	importBatch func(context.Context, []store.BankTransaction) (int, error)
}

func (s *bankTransactionsStub) List(context.Context, store.BankTransactionFilter) ([]store.BankTransaction, int, error) {
	panic("not implemented")
}

func (s *bankTransactionsStub) GetByID(context.Context, uuid.UUID) (*store.BankTransaction, error) {
	panic("not implemented")
}

func (s *bankTransactionsStub) Create(context.Context, *store.BankTransaction) error {
	panic("not implemented")
}

func (s *bankTransactionsStub) ImportBatch(ctx context.Context, txs []store.BankTransaction) (int, error) {
	return s.importBatch(ctx, txs)
}

func (s *bankTransactionsStub) Match(ctx context.Context, id, ordenID uuid.UUID, confidence int, manual bool) (*store.BankTransaction, error) {
	return s.match(ctx, id, ordenID, confidence, manual)
}

type alertasStub struct {
	ordenesPorVencer func(context.Context) ([]store.OrdenPorVencer, error)
}

func (s *alertasStub) OrdenesPorVencer(ctx context.Context) ([]store.OrdenPorVencer, error) {
	return s.ordenesPorVencer(ctx)
}

type healthStub struct {
	ping func(context.Context) error
}

func (s *healthStub) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

type distribucionStub struct {
	totalIndirectos func(context.Context, string) (decimal.Decimal, error)
	directosPorObra func(context.Context, string) ([]store.GastoDirectoMes, error)
	guardar         func(context.Context, string, []store.DistribucionGasto) error
	porMes          func(context.Context, string) ([]store.DistribucionGasto, error)
}

func (s *distribucionStub) TotalIndirectos(ctx context.Context, mes string) (decimal.Decimal, error) {
	return s.totalIndirectos(ctx, mes)
}

func (s *distribucionStub) DirectosPorObra(ctx context.Context, mes string) ([]store.GastoDirectoMes, error) {
	return s.directosPorObra(ctx, mes)
}

func (s *distribucionStub) Guardar(ctx context.Context, mes string, filas []store.DistribucionGasto) error {
	return s.guardar(ctx, mes, filas)
}

func (s *distribucionStub) PorMes(ctx context.Context, mes string) ([]store.DistribucionGasto, error) {
	return s.porMes(ctx, mes)
}

func fechaUTC(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
