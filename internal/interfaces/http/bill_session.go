package http

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-lotes/internal/application/billing"
)

// BillSession factura en composición del único usuario. Todas las operaciones sobre el
// acumulador pasan por With, que las serializa.
type BillSession struct {
	mu  sync.Mutex
	acc *billing.Accumulator
}

// NewBillSession crea una sesión vacía con la tasa de impuesto configurada.
func NewBillSession(taxRate decimal.Decimal) *BillSession {
	return &BillSession{acc: billing.NewAccumulator(taxRate)}
}

// With ejecuta fn con acceso exclusivo al acumulador.
func (s *BillSession) With(fn func(acc *billing.Accumulator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.acc)
}
