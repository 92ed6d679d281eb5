package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/domain/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

// BatchCodeUseCase genera códigos de lote PREFIX+MMYY-secuencia.
type BatchCodeUseCase struct {
	identifiers *IdentifierUseCase
	batchRepo   repository.BatchRepository
}

// NewBatchCodeUseCase construye el caso de uso.
func NewBatchCodeUseCase(identifiers *IdentifierUseCase, batchRepo repository.BatchRepository) *BatchCodeUseCase {
	return &BatchCodeUseCase{identifiers: identifiers, batchRepo: batchRepo}
}

// Generate código para un lote nuevo; registra el prefijo del producto si no existe.
func (uc *BatchCodeUseCase) Generate(ctx context.Context, productName string, mfg time.Time) (string, error) {
	prefix, err := uc.identifiers.GetOrCreatePrefix(ctx, productName)
	if err != nil {
		return "", err
	}
	return nextCode(ctx, uc.batchRepo, prefix, mfg)
}

// Preview mismo resultado que Generate sin registrar nada (vista previa del formulario).
func (uc *BatchCodeUseCase) Preview(ctx context.Context, productName string, mfg time.Time) (code, prefix string, err error) {
	prefix, err = uc.identifiers.PeekPrefix(ctx, productName)
	if err != nil {
		return "", "", err
	}
	code, err = nextCode(ctx, uc.batchRepo, prefix, mfg)
	return code, prefix, err
}

// nextCode secuencia = 1 + lotes del mismo prefijo y mes/año. Si ese código ya existe
// (se borró un lote intermedio) avanza hasta el primero libre.
func nextCode(ctx context.Context, batches repository.BatchRepository, prefix string, mfg time.Time) (string, error) {
	base := inventory.CodeBase(prefix, mfg)
	n, err := batches.CountByCodePrefix(ctx, base, mfg.Year(), mfg.Month())
	if err != nil {
		return "", err
	}
	for seq := n + 1; ; seq++ {
		code := inventory.FormatCode(prefix, mfg, seq)
		existing, err := batches.GetByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
}
