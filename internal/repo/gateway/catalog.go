package gateway

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/pharmakit/storefront/internal/models"
)

// CatalogClient reads the customer-facing drug catalog.
type CatalogClient interface {
	GetDrugDetails(ctx context.Context, drugID string) (*models.DrugDetails, error)
	SearchDrugs(ctx context.Context, name string) ([]models.DrugDetails, error)
	DrugsByCategory(ctx context.Context, categoryID string) ([]models.DrugDetails, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type catalogClient struct {
	c *Client
}

func NewCatalogClient(c *Client) CatalogClient {
	return &catalogClient{c: c}
}

func (g *catalogClient) GetDrugDetails(ctx context.Context, drugID string) (*models.DrugDetails, error) {
	details, err := execute[models.DrugDetails](ctx, g.c, "catalog", "GetDrugDetails",
		http.MethodGet, "/drugs-view/"+drugID+"/details", nil)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func (g *catalogClient) SearchDrugs(ctx context.Context, name string) ([]models.DrugDetails, error) {
	return execute[[]models.DrugDetails](ctx, g.c, "catalog", "SearchDrugs",
		http.MethodGet, "/drugs-view/search", func(r *resty.Request) *resty.Request {
			return r.SetQueryParam("name", name)
		})
}

func (g *catalogClient) DrugsByCategory(ctx context.Context, categoryID string) ([]models.DrugDetails, error) {
	return execute[[]models.DrugDetails](ctx, g.c, "catalog", "DrugsByCategory",
		http.MethodGet, "/drugs-view/category/"+categoryID, nil)
}

func (g *catalogClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	return execute[[]models.Category](ctx, g.c, "catalog", "ListCategories",
		http.MethodGet, "/category", nil)
}
