package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/YashMagare365/mess-management-backend/internal/domain"
)

type CreateOrderParams struct {
	Amount      int64
	Currency    string
	Receipt     string
	AutoCapture bool
}

// Gateway creates monetary orders at the external payment gateway. Amount is
// in minor units.
type Gateway interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*domain.Order, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway returns a Gateway backed by the official Razorpay SDK,
// authorized with the key/secret pair.
func NewRazorpayGateway(keyID, keySecret string) Gateway {
	return &razorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, params CreateOrderParams) (*domain.Order, error) {
	data := map[string]interface{}{
		"amount":   params.Amount,
		"currency": params.Currency,
		"receipt":  params.Receipt,
	}
	if params.AutoCapture {
		data["payment_capture"] = 1
	}

	// The SDK performs the HTTP round trip itself and does not accept a
	// context; the call inherits the SDK's default timeout behavior.
	res, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, err
	}

	return orderFromResponse(res)
}

// orderFromResponse maps the SDK's untyped order payload onto the domain
// order. JSON numbers arrive as float64.
func orderFromResponse(res map[string]interface{}) (*domain.Order, error) {
	order := &domain.Order{}

	id, ok := res["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("gateway returned an order without an id")
	}
	order.ID = id

	if amount, ok := res["amount"].(float64); ok {
		order.Amount = int64(amount)
	}
	if currency, ok := res["currency"].(string); ok {
		order.Currency = currency
	}

	return order, nil
}
