package product

import (
	"context"

	"go.uber.org/zap"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"
)

const conflictReason = "cannot delete product because it is used in existing orders"

type Service interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, in Input) (*Product, error)
	Update(ctx context.Context, id int64, in Input) (*Product, error)
	Patch(ctx context.Context, id int64, patch Patch) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo  Repository
	cache *Cache
}

// NewService creates the product service. cache may be nil when no Redis
// address is configured.
func NewService(repo Repository, cache *Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) GetAll(ctx context.Context) ([]Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.cache.GetByID(ctx, id, func() (*Product, error) {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperr.NotFound("product", id)
		}
		return p, nil
	})
}

func (s *service) Create(ctx context.Context, in Input) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx)
	log.Debug("creating product", zap.String("name", in.Name))

	return s.repo.Create(ctx, in)
}

func (s *service) Update(ctx context.Context, id int64, in Input) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", id)
	}

	s.cache.Invalidate(ctx, id)
	return p, nil
}

func (s *service) Patch(ctx context.Context, id int64, patch Patch) (*Product, error) {
	if patch.IsEmpty() {
		return nil, apperr.Validation("body", "no fields to update")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Patch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", id)
	}

	s.cache.Invalidate(ctx, id)
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx)

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("product", id)
	}

	referenced, err := s.repo.ReferencedByOrderItems(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		log.Debug("product delete blocked by order items", zap.Int64("product_id", id))
		return apperr.Conflict("product", id, conflictReason)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)
	return nil
}
