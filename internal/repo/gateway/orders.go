package gateway

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/pharmakit/storefront/internal/models"
)

// OrdersClient places and lists orders for the authenticated shopper.
type OrdersClient interface {
	PlaceOrder(ctx context.Context, order models.Order) (*models.Order, error)
	UserOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
}

type ordersClient struct {
	c *Client
}

func NewOrdersClient(c *Client) OrdersClient {
	return &ordersClient{c: c}
}

func (g *ordersClient) PlaceOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	placed, err := execute[models.Order](ctx, g.c, "orders", "PlaceOrder",
		http.MethodPost, "/orders/place/order", func(r *resty.Request) *resty.Request {
			return r.SetBody(order)
		})
	if err != nil {
		return nil, err
	}
	return &placed, nil
}

func (g *ordersClient) UserOrders(ctx context.Context) ([]models.Order, error) {
	return execute[[]models.Order](ctx, g.c, "orders", "UserOrders",
		http.MethodGet, "/orders/user", nil)
}

func (g *ordersClient) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := execute[models.Order](ctx, g.c, "orders", "GetOrder",
		http.MethodGet, "/orders/"+id, nil)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
