package gateway

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/pharmakit/storefront/internal/models"
)

// CartClient mutates the server-held cart of the authenticated shopper.
// The server owns the truth; callers re-fetch after every mutation instead
// of merging responses optimistically.
type CartClient interface {
	FetchCart(ctx context.Context) (*models.RemoteCart, error)
	AddItem(ctx context.Context, item models.RemoteCartItem) (*models.RemoteCartItem, error)
	UpdateItem(ctx context.Context, id string, item models.RemoteCartItem) (*models.RemoteCartItem, error)
	RemoveItem(ctx context.Context, item models.RemoteCartItem) (*models.RemoteCart, error)
}

type cartClient struct {
	c *Client
}

func NewCartClient(c *Client) CartClient {
	return &cartClient{c: c}
}

func (g *cartClient) FetchCart(ctx context.Context) (*models.RemoteCart, error) {
	cart, err := execute[models.RemoteCart](ctx, g.c, "cart", "FetchCart",
		http.MethodGet, "/cart/items", nil)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (g *cartClient) AddItem(ctx context.Context, item models.RemoteCartItem) (*models.RemoteCartItem, error) {
	saved, err := execute[models.RemoteCartItem](ctx, g.c, "cart", "AddItem",
		http.MethodPost, "/items/save", func(r *resty.Request) *resty.Request {
			return r.SetBody(item)
		})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (g *cartClient) UpdateItem(ctx context.Context, id string, item models.RemoteCartItem) (*models.RemoteCartItem, error) {
	saved, err := execute[models.RemoteCartItem](ctx, g.c, "cart", "UpdateItem",
		http.MethodPut, "/items/update/"+id, func(r *resty.Request) *resty.Request {
			return r.SetBody(item)
		})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (g *cartClient) RemoveItem(ctx context.Context, item models.RemoteCartItem) (*models.RemoteCart, error) {
	cart, err := execute[models.RemoteCart](ctx, g.c, "cart", "RemoveItem",
		http.MethodDelete, "/cart/remove", func(r *resty.Request) *resty.Request {
			return r.SetBody(item)
		})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
