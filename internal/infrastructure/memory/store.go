// Package memory implementa todos los puertos de repositorio en memoria, con transacciones
// que se aplican completas o se descartan. Lo usan los tests de aplicación y de HTTP.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/facturacion-lotes/internal/application/billing"
	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ billing.BillingTxRunner = (*Store)(nil)

type state struct {
	companies   map[string]entity.Company
	customers   map[string]entity.Customer
	identifiers map[string]entity.ProductIdentifier
	batches     map[string]entity.Batch
	history     []entity.BatchHistory
	bills       map[string]entity.Bill
	billSeq     int64
}

func newState() *state {
	return &state{
		companies:   map[string]entity.Company{},
		customers:   map[string]entity.Customer{},
		identifiers: map[string]entity.ProductIdentifier{},
		batches:     map[string]entity.Batch{},
		bills:       map[string]entity.Bill{},
	}
}

// clone copia superficial de cada mapa: las entidades se guardan por valor.
func (s *state) clone() *state {
	return &state{
		companies:   maps.Clone(s.companies),
		customers:   maps.Clone(s.customers),
		identifiers: maps.Clone(s.identifiers),
		batches:     maps.Clone(s.batches),
		history:     append([]entity.BatchHistory(nil), s.history...),
		bills:       maps.Clone(s.bills),
		billSeq:     s.billSeq,
	}
}

// Store almacén en memoria. Las lecturas fuera de transacción toman el mutex; Run y
// RunBilling trabajan sobre una copia y la publican solo si fn y el commit terminan sin error.
type Store struct {
	mu        sync.Mutex
	st        *state
	commitErr error
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState()}
}

// FailNextCommit hace que el próximo commit falle con err (la transacción se descarta).
func (s *Store) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErr = err
}

// view acceso a un estado: el global (con lock) o el de una transacción en curso.
type view struct {
	store *Store
	tx    *state
}

func (v view) do(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func (s *Store) pool() view { return view{store: s} }

// Companies repositorio de empresas fuera de transacción.
func (s *Store) Companies() repository.CompanyRepository { return &CompanyRepo{v: s.pool()} }

// Customers repositorio de clientes.
func (s *Store) Customers() repository.CustomerRepository { return &CustomerRepo{v: s.pool()} }

// Identifiers repositorio de identificadores.
func (s *Store) Identifiers() repository.IdentifierRepository { return &IdentifierRepo{v: s.pool()} }

// Batches repositorio de lotes.
func (s *Store) Batches() repository.BatchRepository { return &BatchRepo{v: s.pool()} }

// History repositorio del historial de lotes.
func (s *Store) History() repository.BatchHistoryRepository { return &BatchHistoryRepo{v: s.pool()} }

// Bills repositorio de facturas.
func (s *Store) Bills() repository.BillRepository { return &BillRepo{v: s.pool()} }

func (s *Store) inTx(ctx context.Context, fn func(v view) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.st.clone()
	if err := fn(view{store: s, tx: tx}); err != nil {
		return err
	}
	if err := s.commitErr; err != nil {
		s.commitErr = nil
		return err
	}
	s.st = tx
	return nil
}

// Run ejecuta fn con repos de identificadores y lotes atados a una transacción.
func (s *Store) Run(ctx context.Context, fn func(
	identifierRepo repository.IdentifierRepository,
	batchRepo repository.BatchRepository,
) error) error {
	return s.inTx(ctx, func(v view) error {
		return fn(&IdentifierRepo{v: v}, &BatchRepo{v: v})
	})
}

// RunBilling ejecuta fn con los repos de finalización atados a una transacción.
func (s *Store) RunBilling(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	historyRepo repository.BatchHistoryRepository,
	billRepo repository.BillRepository,
	companyRepo repository.CompanyRepository,
) error) error {
	return s.inTx(ctx, func(v view) error {
		return fn(&BatchRepo{v: v}, &BatchHistoryRepo{v: v}, &BillRepo{v: v}, &CompanyRepo{v: v})
	})
}
