package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"fitshop/internal/domain"
	rabbit "fitshop/internal/infra/rabbitmq"
	"fitshop/internal/logging"
	"fitshop/internal/metrics"
	"fitshop/internal/repository"
)

type catalogInvalidator interface {
	Invalidate(ctx context.Context)
}

type OrderService struct {
	repo      repository.OrderRepository
	publisher rabbit.PublisherInterface
	catalog   catalogInvalidator
}

func NewOrderService(r repository.OrderRepository, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		publisher: pub,
	}
}

// SetCatalog makes successful orders drop the cached catalog, whose stock
// figures they just changed.
func (u *OrderService) SetCatalog(c catalogInvalidator) {
	u.catalog = c
}

// CreateOrder places an order for in.UserID. When in.IdempotencyKey was
// already used by this user, the existing order is returned with
// replayed=true and nothing new is written. clientTotal is only compared
// against the server-side total for logging.
func (u *OrderService) CreateOrder(ctx context.Context, in domain.NewOrder, clientTotal float64) (order *domain.Order, replayed bool, err error) {
	if in.IdempotencyKey != "" {
		existing, err := u.repo.FindByIdempotencyKey(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	order, err = u.repo.CreateOrder(ctx, in)
	if errors.Is(err, domain.ErrDuplicateOrder) {
		// lost a race with a concurrent request carrying the same key
		existing, ferr := u.repo.FindByIdempotencyKey(ctx, in.UserID, in.IdempotencyKey)
		if ferr != nil {
			return nil, false, ferr
		}
		if existing == nil {
			return nil, false, fmt.Errorf("order for idempotency key vanished: %w", err)
		}
		return existing, true, nil
	}
	if err != nil {
		metrics.OrdersFailed.WithLabelValues(failureReason(err)).Inc()
		return nil, false, err
	}

	metrics.OrdersCreated.Inc()
	if clientTotal > 0 && math.Abs(clientTotal-order.TotalAmount) >= 0.01 {
		logging.Ctx(ctx).Warn().
			Uint64("order_id", order.ID).
			Float64("client_total", clientTotal).
			Float64("total", order.TotalAmount).
			Msg("client total differs from catalog total")
	}

	go u.publishOrderCreatedEvent(context.WithoutCancel(ctx), order)

	if u.catalog != nil {
		u.catalog.Invalidate(ctx)
	}
	return order, false, nil
}

func (u *OrderService) publishOrderCreatedEvent(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}

	if err := u.publisher.Publish(ctx, rabbit.RoutingOrderCreated, evt); err != nil {
		logging.Ctx(ctx).Error().Err(err).Uint64("order_id", order.ID).Msg("failed to publish order.created")
	}
}

func (u *OrderService) ListOrders(ctx context.Context, userID uint64) ([]domain.Order, error) {
	orders, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (u *OrderService) GetOrder(ctx context.Context, userID, id uint64) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
