package order

import (
	"context"

	"go.uber.org/zap"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"
)

type Service interface {
	GetAll(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetItems(ctx context.Context, orderID int64) ([]OrderItem, error)
	Create(ctx context.Context, in CustomerInput) (*Order, error)
	UpdateCustomer(ctx context.Context, id int64, in CustomerInput) (*Order, error)
	Delete(ctx context.Context, id int64) error

	AddItem(ctx context.Context, orderID, productID int64, quantity int) (*OrderItem, error)
	GetAllItems(ctx context.Context) ([]OrderItem, error)
	GetItem(ctx context.Context, ref ItemRef) (*OrderItem, error)
	UpdateItemQuantity(ctx context.Context, ref ItemRef, quantity int) (*OrderItem, error)
	RemoveItem(ctx context.Context, ref ItemRef) error
}

// ProductCache invalidates cached product reads after a stock movement so
// a read right after a reservation or release sees fresh stock instead of
// waiting out the TTL.
type ProductCache interface {
	Invalidate(ctx context.Context, ids ...int64)
}

type service struct {
	repo  Repository
	cache ProductCache
}

// NewService creates the order service. cache may be nil when product reads
// are not cached.
func NewService(repo Repository, cache ProductCache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) invalidateProducts(ctx context.Context, ids ...int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, ids...)
	}
}

func (s *service) GetAll(ctx context.Context) ([]Order, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound(kindOrder, id)
	}
	return o, nil
}

func (s *service) GetItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return o.Items, nil
}

func (s *service) Create(ctx context.Context, in CustomerInput) (*Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx)
	log.Debug("creating order", zap.String("customer", in.CustomerName))

	return s.repo.Create(ctx, in)
}

func (s *service) UpdateCustomer(ctx context.Context, id int64, in CustomerInput) (*Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateCustomer(ctx, id, in)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx)
	log.Debug("deleting order", zap.Int64("order_id", id))

	productIDs, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.invalidateProducts(ctx, productIDs...)
	return nil
}

func (s *service) AddItem(ctx context.Context, orderID, productID int64, quantity int) (*OrderItem, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx)

	item, err := s.repo.AddItem(ctx, orderID, productID, quantity)
	if err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx, productID)

	log.Info("order item added",
		zap.Int64("order_id", orderID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
	)
	return item, nil
}

func (s *service) GetAllItems(ctx context.Context) ([]OrderItem, error) {
	return s.repo.GetAllItems(ctx)
}

func (s *service) GetItem(ctx context.Context, ref ItemRef) (*OrderItem, error) {
	item, err := s.repo.GetItem(ctx, ref)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound(kindOrderItem, ref.ItemID)
	}
	return item, nil
}

func (s *service) UpdateItemQuantity(ctx context.Context, ref ItemRef, quantity int) (*OrderItem, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.repo.UpdateItemQuantity(ctx, ref, quantity)
	if err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx, item.ProductID)
	return item, nil
}

func (s *service) RemoveItem(ctx context.Context, ref ItemRef) error {
	item, err := s.repo.RemoveItem(ctx, ref)
	if err != nil {
		return err
	}

	s.invalidateProducts(ctx, item.ProductID)
	return nil
}
