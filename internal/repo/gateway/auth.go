package gateway

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/pharmakit/storefront/internal/models"
)

// AuthClient handles sign-in and profile lookups. Tokens are opaque
// strings; this client never inspects them.
type AuthClient interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	UserRole(ctx context.Context, token string) (string, error)
	UserDetails(ctx context.Context) (*models.Profile, error)
	SignUpClient(ctx context.Context, req models.SignUpRequest) (*models.Profile, error)
}

type authClient struct {
	c *Client
}

func NewAuthClient(c *Client) AuthClient {
	return &authClient{c: c}
}

func (g *authClient) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	return execute[string](ctx, g.c, "auth", "Login",
		http.MethodPost, "/login", func(r *resty.Request) *resty.Request {
			return r.SetBody(req)
		})
}

func (g *authClient) UserRole(ctx context.Context, token string) (string, error) {
	return execute[string](ctx, g.c, "auth", "UserRole",
		http.MethodPost, "/user/role", func(r *resty.Request) *resty.Request {
			return r.SetBody(map[string]string{"token": token})
		})
}

func (g *authClient) UserDetails(ctx context.Context) (*models.Profile, error) {
	profile, err := execute[models.Profile](ctx, g.c, "auth", "UserDetails",
		http.MethodGet, "/user/details", nil)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (g *authClient) SignUpClient(ctx context.Context, req models.SignUpRequest) (*models.Profile, error) {
	profile, err := execute[models.Profile](ctx, g.c, "auth", "SignUpClient",
		http.MethodPost, "/signup/client", func(r *resty.Request) *resty.Request {
			return r.SetBody(req)
		})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
