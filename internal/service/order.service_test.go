package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YashMagare365/mess-management-backend/internal/domain"
	"github.com/YashMagare365/mess-management-backend/internal/infrastructure/payment"
)

type fakeGateway struct {
	calls  int
	params []payment.CreateOrderParams
	order  *domain.Order
	err    error
}

func (f *fakeGateway) CreateOrder(ctx context.Context, params payment.CreateOrderParams) (*domain.Order, error) {
	f.calls++
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

func TestInitiateOrder_InvalidRequestSkipsGateway(t *testing.T) {
	tests := []struct {
		name string
		req  domain.OrderRequest
	}{
		{"missing amount", domain.OrderRequest{Receipt: "r1"}},
		{"missing receipt", domain.OrderRequest{Amount: decimal.NewFromInt(250)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			svc := NewOrderService(gw, zap.NewNop())

			_, err := svc.InitiateOrder(context.Background(), tt.req)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, 0, gw.calls, "gateway must not be called for invalid input")
		})
	}
}

func TestInitiateOrder_ConvertsToMinorUnits(t *testing.T) {
	gw := &fakeGateway{order: &domain.Order{ID: "order_abc123", Amount: 25000, Currency: "INR"}}
	svc := NewOrderService(gw, zap.NewNop())

	order, err := svc.InitiateOrder(context.Background(), domain.OrderRequest{
		Amount:   decimal.NewFromInt(250),
		Currency: "INR",
		Receipt:  "r1",
	})
	require.NoError(t, err)

	require.Equal(t, 1, gw.calls)
	assert.Equal(t, int64(25000), gw.params[0].Amount)
	assert.Equal(t, "INR", gw.params[0].Currency)
	assert.Equal(t, "r1", gw.params[0].Receipt)
	assert.True(t, gw.params[0].AutoCapture)

	assert.Equal(t, "order_abc123", order.ID)
	assert.Equal(t, int64(25000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
}

func TestInitiateOrder_CurrencyDefaultsToINR(t *testing.T) {
	gw := &fakeGateway{order: &domain.Order{ID: "order_abc123", Amount: 25000, Currency: "INR"}}
	svc := NewOrderService(gw, zap.NewNop())

	_, err := svc.InitiateOrder(context.Background(), domain.OrderRequest{
		Amount:  decimal.NewFromInt(250),
		Receipt: "r1",
	})
	require.NoError(t, err)
	assert.Equal(t, "INR", gw.params[0].Currency)
}

func TestInitiateOrder_GatewayFailureIsUpstream(t *testing.T) {
	gw := &fakeGateway{err: errors.New("invalid credentials")}
	svc := NewOrderService(gw, zap.NewNop())

	_, err := svc.InitiateOrder(context.Background(), domain.OrderRequest{
		Amount:  decimal.NewFromInt(250),
		Receipt: "r1",
	})

	var uerr *domain.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "payment gateway", uerr.System)
	assert.Equal(t, 1, gw.calls, "no retry on gateway failure")
}

func TestInitiateOrder_NoLocalDeduplication(t *testing.T) {
	gw := &fakeGateway{order: &domain.Order{ID: "order_abc123", Amount: 25000, Currency: "INR"}}
	svc := NewOrderService(gw, zap.NewNop())

	req := domain.OrderRequest{Amount: decimal.NewFromInt(250), Currency: "INR", Receipt: "r1"}

	_, err := svc.InitiateOrder(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.InitiateOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, gw.calls, "identical requests produce independent gateway calls")
}
