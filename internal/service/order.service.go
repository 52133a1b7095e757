package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/YashMagare365/mess-management-backend/internal/domain"
	"github.com/YashMagare365/mess-management-backend/internal/infrastructure/payment"
)

type OrderService interface {
	InitiateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
}

type orderService struct {
	gateway payment.Gateway
	log     *zap.Logger
}

func NewOrderService(gateway payment.Gateway, log *zap.Logger) OrderService {
	return &orderService{gateway: gateway, log: log}
}

// InitiateOrder validates the request, converts the amount to minor units and
// creates the order at the gateway. Exactly one gateway call per request; no
// retry and no local deduplication beyond the caller-supplied receipt.
func (s *orderService) InitiateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	order, err := s.gateway.CreateOrder(ctx, payment.CreateOrderParams{
		Amount:      req.MinorUnits(),
		Currency:    currency,
		Receipt:     req.Receipt,
		AutoCapture: true,
	})
	if err != nil {
		s.log.Error("order creation failed",
			zap.String("receipt", req.Receipt),
			zap.Error(err))
		return nil, &domain.UpstreamError{System: "payment gateway", Err: err}
	}

	s.log.Info("order created",
		zap.String("orderId", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency))

	return order, nil
}
