package gateway

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/pharmakit/storefront/internal/models"
)

// WishlistClient mirrors the shopper's liked products server-side.
type WishlistClient interface {
	FetchWishlist(ctx context.Context) ([]models.WishlistEntry, error)
	AddEntry(ctx context.Context, drugID string) (*models.WishlistEntry, error)
	RemoveEntry(ctx context.Context, entry models.WishlistEntry) error
}

type wishlistClient struct {
	c *Client
}

func NewWishlistClient(c *Client) WishlistClient {
	return &wishlistClient{c: c}
}

func (g *wishlistClient) FetchWishlist(ctx context.Context) ([]models.WishlistEntry, error) {
	return execute[[]models.WishlistEntry](ctx, g.c, "wishlist", "FetchWishlist",
		http.MethodGet, "/wishlist", nil)
}

func (g *wishlistClient) AddEntry(ctx context.Context, drugID string) (*models.WishlistEntry, error) {
	entry, err := execute[models.WishlistEntry](ctx, g.c, "wishlist", "AddEntry",
		http.MethodPost, "/wishlist", func(r *resty.Request) *resty.Request {
			return r.SetBody(models.WishlistEntry{DrugID: drugID})
		})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (g *wishlistClient) RemoveEntry(ctx context.Context, entry models.WishlistEntry) error {
	_, err := execute[bool](ctx, g.c, "wishlist", "RemoveEntry",
		http.MethodDelete, "/wishlist", func(r *resty.Request) *resty.Request {
			return r.SetBody(entry)
		})
	return err
}
