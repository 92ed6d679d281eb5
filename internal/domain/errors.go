package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrConcurrentModification = errors.New("el stock cambió desde la asignación")
	ErrStorage                = errors.New("error de almacenamiento")
	ErrCorruptData            = errors.New("datos almacenados corruptos")
	ErrIndexOutOfRange        = errors.New("índice fuera de rango")
)

// ValidationError entrada del usuario inválida o faltante. No hubo cambios de estado.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// OutOfStockError la cantidad pedida supera el stock disponible de producto+empresa.
type OutOfStockError struct {
	ProductName string
	CompanyID   string
	Requested   int
	Available   int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: pedidas %d, disponibles %d", e.ProductName, e.Requested, e.Available)
}

func (e *OutOfStockError) Unwrap() error { return ErrInsufficientStock }

// ConcurrentModificationError el lote ya no tiene las unidades con las que se armó la factura.
type ConcurrentModificationError struct {
	BatchID   string
	Requested int
	Remaining int
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("lote %s: se pidieron %d unidades pero quedan %d", e.BatchID, e.Requested, e.Remaining)
}

func (e *ConcurrentModificationError) Unwrap() error { return ErrConcurrentModification }

// StorageError falla del almacén subyacente (conexión, consulta, commit).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrStorage) sin perder la causa original.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// CorruptDataError un valor persistido no cumple su esquema.
type CorruptDataError struct {
	What string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("%s corrupto: %v", e.What, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }
