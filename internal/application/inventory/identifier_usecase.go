package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// maxRegisterAttempts intentos de registro de un prefijo (o de alta de un lote) ante un
// conflicto de unicidad con otra instancia; al agotarse se devuelve el conflicto.
const maxRegisterAttempts = 2

// IdentifierUseCase registro de identificadores: nombre de producto -> prefijo único.
type IdentifierUseCase struct {
	txRunner       TxRunner
	identifierRepo repository.IdentifierRepository
	log            *logger.Logger
	now            func() time.Time
}

// NewIdentifierUseCase construye el caso de uso.
func NewIdentifierUseCase(txRunner TxRunner, identifierRepo repository.IdentifierRepository, log *logger.Logger) *IdentifierUseCase {
	return &IdentifierUseCase{
		txRunner:       txRunner,
		identifierRepo: identifierRepo,
		log:            log,
		now:            time.Now,
	}
}

func normalizeName(productName string) (string, error) {
	name := inventory.NormalizeProductName(productName)
	if name == "" {
		return "", domain.NewValidationError("product_name", "es obligatorio")
	}
	return name, nil
}

// GetOrCreatePrefix devuelve el prefijo registrado del producto o registra uno nuevo.
// Si otra instancia registra el mismo prefijo entre la lectura y la inserción, la derivación
// completa se repite; tras maxRegisterAttempts el conflicto se devuelve al llamador.
func (uc *IdentifierUseCase) GetOrCreatePrefix(ctx context.Context, productName string) (string, error) {
	name, err := normalizeName(productName)
	if err != nil {
		return "", err
	}

	for attempt := 1; ; attempt++ {
		prefix, err := uc.registerOnce(ctx, name)
		if err == nil {
			return prefix, nil
		}
		if !errors.Is(err, domain.ErrConflict) || attempt >= maxRegisterAttempts {
			return "", fmt.Errorf("registrar prefijo de %q: %w", name, err)
		}
		uc.log.Warn().Err(err).Str("product_name", name).Int("attempt", attempt).Msg("conflicto al registrar prefijo, reintentando")
	}
}

func (uc *IdentifierUseCase) registerOnce(ctx context.Context, name string) (string, error) {
	var prefix string
	err := uc.txRunner.Run(ctx, func(ids repository.IdentifierRepository, _ repository.BatchRepository) error {
		existing, err := ids.GetByProductName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			prefix = existing.Prefix
			return nil
		}

		p, err := choosePrefix(ctx, ids, name)
		if err != nil {
			return err
		}
		now := uc.now()
		if err := ids.Create(ctx, &entity.ProductIdentifier{
			ID:          uuid.New().String(),
			ProductName: name,
			Prefix:      p,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return err
		}
		uc.log.Info().Str("product_name", name).Str("prefix", p).Msg("prefijo registrado")
		prefix = p
		return nil
	})
	return prefix, err
}

func choosePrefix(ctx context.Context, ids repository.IdentifierRepository, name string) (string, error) {
	list, err := ids.ListPrefixes(ctx)
	if err != nil {
		return "", err
	}
	taken := make(map[string]struct{}, len(list))
	for _, p := range list {
		taken[p] = struct{}{}
	}
	return inventory.ChoosePrefix(name, taken)
}

// PeekPrefix prefijo registrado o el que se asignaría ahora, sin registrar nada.
func (uc *IdentifierUseCase) PeekPrefix(ctx context.Context, productName string) (string, error) {
	name, err := normalizeName(productName)
	if err != nil {
		return "", err
	}
	existing, err := uc.identifierRepo.GetByProductName(ctx, name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.Prefix, nil
	}
	return choosePrefix(ctx, uc.identifierRepo, name)
}

// UpdatePrefix cambia el prefijo de un producto y reescribe, en la misma transacción, el
// segmento de prefijo de todos sus códigos de lote. El historial de lotes y las facturas
// conservan los códigos con los que se escribieron.
func (uc *IdentifierUseCase) UpdatePrefix(ctx context.Context, id, newPrefix string) (*entity.ProductIdentifier, int64, error) {
	prefix, err := inventory.NormalizePrefix(newPrefix)
	if err != nil {
		return nil, 0, err
	}

	var (
		out       *entity.ProductIdentifier
		rewritten int64
	)
	err = uc.txRunner.Run(ctx, func(ids repository.IdentifierRepository, batches repository.BatchRepository) error {
		cur, err := ids.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		if cur.Prefix == prefix {
			out = cur
			return nil
		}
		owner, err := ids.GetByPrefix(ctx, prefix)
		if err != nil {
			return err
		}
		if owner != nil && owner.ID != cur.ID {
			return fmt.Errorf("%w: el prefijo %q pertenece a %q", domain.ErrConflict, prefix, owner.ProductName)
		}

		n, err := batches.RewritePrefix(ctx, cur.ProductName, cur.Prefix, prefix)
		if err != nil {
			return err
		}
		old := cur.Prefix
		cur.Prefix = prefix
		cur.UpdatedAt = uc.now()
		if err := ids.UpdatePrefix(ctx, cur); err != nil {
			return err
		}
		uc.log.Info().Str("product_name", cur.ProductName).Str("old_prefix", old).Str("prefix", prefix).
			Int64("batches", n).Msg("prefijo actualizado")
		out, rewritten = cur, n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out, rewritten, nil
}

// DeleteIdentifier elimina un identificador si el producto no tiene lotes.
func (uc *IdentifierUseCase) DeleteIdentifier(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(ids repository.IdentifierRepository, batches repository.BatchRepository) error {
		cur, err := ids.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		n, err := batches.CountByProductName(ctx, cur.ProductName)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %q tiene %d lotes registrados", domain.ErrConflict, cur.ProductName, n)
		}
		return ids.Delete(ctx, id)
	})
}

// List identificadores filtrados por nombre o prefijo.
func (uc *IdentifierUseCase) List(ctx context.Context, search string) ([]*entity.ProductIdentifier, error) {
	return uc.identifierRepo.List(ctx, search)
}
