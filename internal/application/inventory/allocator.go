package inventory

import (
	"context"

	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/domain/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

// AllocatorUseCase arma planes de asignación FIFO. Solo lee: el stock se descuenta al finalizar.
type AllocatorUseCase struct {
	batchRepo repository.BatchRepository
}

// NewAllocatorUseCase construye el caso de uso.
func NewAllocatorUseCase(batchRepo repository.BatchRepository) *AllocatorUseCase {
	return &AllocatorUseCase{batchRepo: batchRepo}
}

// Allocate selecciona lotes de producto+empresa para cubrir quantity.
// quantity <= 0 falla con ValidationError antes de consultar el almacén.
func (uc *AllocatorUseCase) Allocate(ctx context.Context, productName, companyID string, quantity int) (*inventory.AllocationPlan, error) {
	return uc.AllocateReserved(ctx, productName, companyID, quantity, nil)
}

// AllocateReserved como Allocate, descontando de cada lote las unidades ya tomadas por la
// factura en curso (reserved: batch_id -> unidades).
func (uc *AllocatorUseCase) AllocateReserved(ctx context.Context, productName, companyID string, quantity int, reserved map[string]int) (*inventory.AllocationPlan, error) {
	if err := inventory.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	name, err := normalizeName(productName)
	if err != nil {
		return nil, err
	}
	batches, err := uc.batchRepo.ListAvailable(ctx, name, companyID)
	if err != nil {
		return nil, err
	}
	for _, b := range batches {
		if n, ok := reserved[b.ID]; ok {
			b.UnitsRemaining = max(b.UnitsRemaining-n, 0)
		}
	}
	return inventory.PlanAllocation(name, companyID, quantity, batches)
}

// ToAllocationResponse convierte un plan a su DTO.
func ToAllocationResponse(p *inventory.AllocationPlan) dto.AllocationResponse {
	out := dto.AllocationResponse{
		ProductName: p.ProductName,
		CompanyID:   p.CompanyID,
		Requested:   p.Requested,
		Entries:     make([]dto.AllocationEntryResponse, 0, len(p.Entries)),
	}
	for _, e := range p.Entries {
		out.Entries = append(out.Entries, dto.AllocationEntryResponse{
			BatchID:   e.BatchID,
			BatchCode: e.BatchCode,
			Units:     e.Units,
			UnitRate:  e.UnitRate,
		})
	}
	return out
}
