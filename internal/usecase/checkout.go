package usecase

import (
	"context"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/pharmakit/storefront/internal/models"
	"github.com/pharmakit/storefront/internal/repo/gateway"
	"github.com/pharmakit/storefront/internal/store"
)

// CheckoutService turns the current cart into an order. Checkout is only
// available to authenticated shoppers; an anonymous attempt changes nothing
// and calls nothing.
type CheckoutService struct {
	gate   *SessionGate
	cart   *CartService
	local  *store.LocalCart
	orders gateway.OrdersClient
}

func NewCheckoutService(
	gate *SessionGate,
	cart *CartService,
	local *store.LocalCart,
	orders gateway.OrdersClient,
) *CheckoutService {
	return &CheckoutService{
		gate:   gate,
		cart:   cart,
		local:  local,
		orders: orders,
	}
}

// Checkout places an order for the cart's current contents and clears the
// cart on success. The server owns the remote cart; the local view is
// invalidated so the next open re-fetches.
func (s *CheckoutService) Checkout(ctx context.Context, paymentMethod string) (*models.Order, error) {
	if !s.gate.IsAuthenticated() {
		return nil, models.ErrCheckoutRequiresAuth
	}

	view, err := s.cart.View(ctx)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	order := models.Order{
		TotalPrice:    view.Subtotal,
		PaymentMethod: paymentMethod,
	}
	placed, err := s.orders.PlaceOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.local.Clear()
	s.cart.Invalidate()
	log.Infow(ctx, "order placed",
		"order_id", placed.ID, "total", placed.TotalPrice.String())
	return placed, nil
}

// Orders lists the shopper's past orders.
func (s *CheckoutService) Orders(ctx context.Context) ([]models.Order, error) {
	if !s.gate.IsAuthenticated() {
		return nil, models.ErrCheckoutRequiresAuth
	}
	return s.orders.UserOrders(ctx)
}
