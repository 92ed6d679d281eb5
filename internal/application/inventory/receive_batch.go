package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/billing"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas en la API y en los listados.
const DateLayout = "2006-01-02"

var (
	hundred = decimal.NewFromInt(100)
	// límites de las columnas NUMERIC(12,2) y NUMERIC(14,2) de batches
	maxMRP    = decimal.RequireFromString("9999999999.99")
	maxAmount = decimal.RequireFromString("999999999999.99")
)

// moneyPlaces decimales que guarda el almacén para montos y porcentajes.
const moneyPlaces = 2

// ReceiveBatchInput entrada de stock: un lote nuevo de un producto de una empresa.
type ReceiveBatchInput struct {
	ProductName     string
	CompanyID       string
	HSNCode         string
	ManufactureDate time.Time
	ExpiryDate      time.Time
	Units           int
	MRP             decimal.Decimal
	DiscountPct     decimal.Decimal
	IGSTPct         decimal.Decimal
	CGSTPct         decimal.Decimal
	SGSTPct         decimal.Decimal
}

// ReceiveBatchUseCase alta de lotes (único camino de creación, usado también por la importación).
type ReceiveBatchUseCase struct {
	txRunner    TxRunner
	identifiers *IdentifierUseCase
	companyRepo repository.CompanyRepository
	batchRepo   repository.BatchRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewReceiveBatchUseCase construye el caso de uso.
func NewReceiveBatchUseCase(
	txRunner TxRunner,
	identifiers *IdentifierUseCase,
	companyRepo repository.CompanyRepository,
	batchRepo repository.BatchRepository,
	log *logger.Logger,
) *ReceiveBatchUseCase {
	return &ReceiveBatchUseCase{
		txRunner:    txRunner,
		identifiers: identifiers,
		companyRepo: companyRepo,
		batchRepo:   batchRepo,
		log:         log,
		now:         time.Now,
	}
}

func validatePct(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return domain.NewValidationError(field, "debe estar entre 0 y 100")
	}
	return validatePlaces(field, v)
}

func validatePlaces(field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(moneyPlaces)) {
		return domain.NewValidationError(field, "admite como máximo 2 decimales")
	}
	return nil
}

// calendarDay descarta la hora: las fechas del lote son días.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (in *ReceiveBatchInput) validate() error {
	in.ProductName = inventory.NormalizeProductName(in.ProductName)
	in.HSNCode = strings.TrimSpace(in.HSNCode)
	if !in.ManufactureDate.IsZero() {
		in.ManufactureDate = calendarDay(in.ManufactureDate)
	}
	if !in.ExpiryDate.IsZero() {
		in.ExpiryDate = calendarDay(in.ExpiryDate)
	}
	switch {
	case in.ProductName == "":
		return domain.NewValidationError("product_name", "es obligatorio")
	case in.CompanyID == "":
		return domain.NewValidationError("company_id", "es obligatorio")
	case in.HSNCode == "":
		return domain.NewValidationError("hsn_code", "es obligatorio")
	case in.ManufactureDate.IsZero():
		return domain.NewValidationError("manufacture_date", "es obligatoria")
	case in.ExpiryDate.Before(in.ManufactureDate):
		return domain.NewValidationError("expiry_date", "no puede ser anterior a la fecha de fabricación")
	case in.Units <= 0:
		return domain.NewValidationError("units", "debe ser mayor que cero")
	case in.Units > math.MaxInt32:
		return domain.NewValidationError("units", fmt.Sprintf("no puede superar %d", math.MaxInt32))
	case in.MRP.IsNegative():
		return domain.NewValidationError("mrp", "no puede ser negativo")
	case in.MRP.GreaterThan(maxMRP):
		return domain.NewValidationError("mrp", "no puede superar "+maxMRP.String())
	}
	if err := validatePlaces("mrp", in.MRP); err != nil {
		return err
	}
	pcts := []struct {
		field string
		v     decimal.Decimal
	}{
		{"discount_pct", in.DiscountPct},
		{"igst_pct", in.IGSTPct},
		{"cgst_pct", in.CGSTPct},
		{"sgst_pct", in.SGSTPct},
	}
	for _, p := range pcts {
		if err := validatePct(p.field, p.v); err != nil {
			return err
		}
	}
	return nil
}

// Receive valida la entrada, calcula montos, genera el código y guarda el lote.
func (uc *ReceiveBatchUseCase) Receive(ctx context.Context, in ReceiveBatchInput) (*entity.Batch, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	amounts := inventory.ComputeBatchAmounts(inventory.AmountsInput{
		MRP:         in.MRP,
		DiscountPct: in.DiscountPct,
		Units:       in.Units,
		IGSTPct:     in.IGSTPct,
		CGSTPct:     in.CGSTPct,
		SGSTPct:     in.SGSTPct,
	})
	if amounts.TotalAmount.GreaterThan(maxAmount) {
		return nil, domain.NewValidationError("units", "el monto total del lote excede el máximo admitido")
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, in.CompanyID)
	}

	prefix, err := uc.identifiers.GetOrCreatePrefix(ctx, in.ProductName)
	if err != nil {
		return nil, err
	}

	now := uc.now().Truncate(time.Microsecond)
	batch := &entity.Batch{
		ID:              uuid.New().String(),
		ProductName:     in.ProductName,
		CompanyID:       company.ID,
		ManufactureDate: in.ManufactureDate,
		ExpiryDate:      in.ExpiryDate,
		MRP:             in.MRP,
		DiscountPct:     in.DiscountPct,
		HSNCode:         in.HSNCode,
		InitialUnits:    in.Units,
		UnitsRemaining:  in.Units,
		UnitRate:        amounts.UnitRate,
		TaxableAmount:   amounts.TaxableAmount,
		IGST:            amounts.IGST,
		CGST:            amounts.CGST,
		SGST:            amounts.SGST,
		TotalAmount:     amounts.TotalAmount,
		AmountInWords:   billing.AmountInWords(amounts.TotalAmount),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for attempt := 1; ; attempt++ {
		err = uc.txRunner.Run(ctx, func(_ repository.IdentifierRepository, batches repository.BatchRepository) error {
			code, err := nextCode(ctx, batches, prefix, in.ManufactureDate)
			if err != nil {
				return err
			}
			batch.BatchCode = code
			return batches.Create(ctx, batch)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflict) || attempt >= maxRegisterAttempts {
			return nil, err
		}
		uc.log.Warn().Err(err).Str("batch_code", batch.BatchCode).Int("attempt", attempt).Msg("código de lote ocupado, reintentando")
	}

	uc.log.Info().Str("batch_id", batch.ID).Str("batch_code", batch.BatchCode).Int("units", batch.InitialUnits).Msg("lote recibido")
	return batch, nil
}

// ReceiveFromRequest adapta el request HTTP al caso de uso Receive.
func (uc *ReceiveBatchUseCase) ReceiveFromRequest(ctx context.Context, req dto.ReceiveBatchRequest) (*entity.Batch, error) {
	mfg, err := time.Parse(DateLayout, req.ManufactureDate)
	if err != nil {
		return nil, domain.NewValidationError("manufacture_date", "fecha inválida")
	}
	exp, err := time.Parse(DateLayout, req.ExpiryDate)
	if err != nil {
		return nil, domain.NewValidationError("expiry_date", "fecha inválida")
	}
	return uc.Receive(ctx, ReceiveBatchInput{
		ProductName:     req.ProductName,
		CompanyID:       req.CompanyID,
		HSNCode:         req.HSNCode,
		ManufactureDate: mfg,
		ExpiryDate:      exp,
		Units:           req.Units,
		MRP:             req.MRP,
		DiscountPct:     req.DiscountPct,
		IGSTPct:         req.IGSTPct,
		CGSTPct:         req.CGSTPct,
		SGSTPct:         req.SGSTPct,
	})
}

// List inventario con filtros.
func (uc *ReceiveBatchUseCase) List(ctx context.Context, q dto.BatchListQuery) ([]*entity.BatchWithCompany, error) {
	return uc.batchRepo.List(ctx, repository.BatchFilter{
		Search:       strings.TrimSpace(q.Search),
		CompanyID:    q.CompanyID,
		IncludeEmpty: q.IncludeEmpty,
	})
}

// Get obtiene un lote por ID.
func (uc *ReceiveBatchUseCase) Get(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// Delete elimina un lote cargado por error.
func (uc *ReceiveBatchUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.batchRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("batch_id", id).Msg("lote eliminado")
	return nil
}

// ProductNames productos con stock de una empresa (para el selector de la factura).
func (uc *ReceiveBatchUseCase) ProductNames(ctx context.Context, companyID string) ([]string, error) {
	return uc.batchRepo.ProductNames(ctx, companyID)
}

// ToBatchResponse convierte un lote a su DTO.
func ToBatchResponse(b *entity.Batch, companyName string) dto.BatchResponse {
	return dto.BatchResponse{
		ID:              b.ID,
		ProductName:     b.ProductName,
		CompanyID:       b.CompanyID,
		CompanyName:     companyName,
		BatchCode:       b.BatchCode,
		ManufactureDate: b.ManufactureDate.Format(DateLayout),
		ExpiryDate:      b.ExpiryDate.Format(DateLayout),
		HSNCode:         b.HSNCode,
		MRP:             b.MRP,
		DiscountPct:     b.DiscountPct,
		UnitRate:        b.UnitRate,
		InitialUnits:    b.InitialUnits,
		UnitsRemaining:  b.UnitsRemaining,
		TaxableAmount:   b.TaxableAmount,
		IGST:            b.IGST,
		CGST:            b.CGST,
		SGST:            b.SGST,
		TotalAmount:     b.TotalAmount,
		AmountInWords:   b.AmountInWords,
		ArchivedAt:      b.ArchivedAt,
	}
}
