package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pharmakit/storefront/internal/models"
	"github.com/pharmakit/storefront/internal/repo/gateway"
	"github.com/pharmakit/storefront/internal/repo/sessionstore"
	"github.com/pharmakit/storefront/internal/store"
)

// SessionGate owns the anonymous/authenticated switch. It is the single
// place that decides which backend serves the cart and wishlist views, and
// the only writer of the persisted session triple.
type SessionGate struct {
	session       sessionstore.Store
	auth          gateway.AuthClient
	localCart     *store.LocalCart
	localWishlist *store.LocalWishlist
	validate      *validator.Validate

	state models.SessionState
}

// NewSessionGate restores the session from durable storage. The shopper is
// authenticated only when the flag, role and profile are all present;
// anything partial falls back to a fresh anonymous session.
func NewSessionGate(
	session sessionstore.Store,
	auth gateway.AuthClient,
	localCart *store.LocalCart,
	localWishlist *store.LocalWishlist,
) *SessionGate {
	g := &SessionGate{
		session:       session,
		auth:          auth,
		localCart:     localCart,
		localWishlist: localWishlist,
		validate:      validator.New(),
	}
	g.state = g.restore()
	return g
}

func (g *SessionGate) restore() models.SessionState {
	flag, okFlag := g.session.Get(sessionstore.KeyIsAuthenticated)
	role, okRole := g.session.Get(sessionstore.KeyUserRole)
	rawProfile, okProfile := g.session.Get(sessionstore.KeyCurrentUser)

	if !okFlag || flag != "true" || !okRole || !okProfile {
		return g.freshAnonymous()
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(rawProfile), &profile); err != nil {
		return g.freshAnonymous()
	}
	profile.Role = models.ParseRole(role)

	return models.SessionState{
		Phase:   models.PhaseAuthenticated,
		Profile: &profile,
	}
}

func (g *SessionGate) freshAnonymous() models.SessionState {
	return models.SessionState{
		Phase:   models.PhaseAnonymous,
		GuestID: uuid.NewString(),
	}
}

func (g *SessionGate) Current() models.SessionState {
	return g.state
}

func (g *SessionGate) IsAuthenticated() bool {
	return g.state.Phase == models.PhaseAuthenticated
}

func (g *SessionGate) Profile() *models.Profile {
	return g.state.Profile
}

// SignIn authenticates the shopper and swaps the session to the remote
// stores. The anonymous cart and wishlist are discarded, not merged.
func (g *SessionGate) SignIn(ctx context.Context, req models.LoginRequest) (*models.Profile, error) {
	if err := g.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	token, err := g.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	// Persist the token first so the follow-up profile calls carry it.
	if err := g.session.Set(sessionstore.KeyToken, token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}

	roleName, err := g.auth.UserRole(ctx, token)
	if err != nil {
		g.discardPersisted()
		return nil, err
	}
	profile, err := g.auth.UserDetails(ctx)
	if err != nil {
		g.discardPersisted()
		return nil, err
	}
	profile.Role = models.ParseRole(roleName)

	rawProfile, err := json.Marshal(profile)
	if err != nil {
		g.discardPersisted()
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	if err := g.persistTriple(string(profile.Role), string(rawProfile)); err != nil {
		g.discardPersisted()
		return nil, err
	}

	// Observed behavior: the anonymous cart/wishlist are dropped on
	// sign-in rather than merged into the server cart.
	g.localCart.Clear()
	g.localWishlist.Clear()

	g.state = models.SessionState{
		Phase:   models.PhaseAuthenticated,
		Profile: profile,
	}
	log.Infow(ctx, "shopper signed in", "email", profile.Email, "role", profile.Role)
	return profile, nil
}

// SignUp registers a new client account. Password confirmation is checked
// locally and never reaches the network.
func (g *SessionGate) SignUp(ctx context.Context, req models.SignUpRequest) (*models.Profile, error) {
	if err := g.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	return g.auth.SignUpClient(ctx, req)
}

// SignOut clears the persisted session and empties the in-memory stores so
// no shopper data leaks into the next anonymous session.
func (g *SessionGate) SignOut(ctx context.Context) error {
	if err := g.session.Clear(); err != nil {
		return fmt.Errorf("clear session store: %w", err)
	}
	g.localCart.Clear()
	g.localWishlist.Clear()
	g.state = g.freshAnonymous()
	log.Infow(ctx, "shopper signed out")
	return nil
}

// Invalidate drops the session after an authorization failure without a
// round trip; the gateway already knows the token is dead.
func (g *SessionGate) Invalidate(ctx context.Context) {
	_ = g.session.Clear()
	g.localCart.Clear()
	g.localWishlist.Clear()
	g.state = g.freshAnonymous()
	log.Warnw(ctx, "session invalidated, sign-in required")
}

func (g *SessionGate) persistTriple(role, rawProfile string) error {
	if err := g.session.Set(sessionstore.KeyIsAuthenticated, "true"); err != nil {
		return fmt.Errorf("persist auth flag: %w", err)
	}
	if err := g.session.Set(sessionstore.KeyUserRole, role); err != nil {
		return fmt.Errorf("persist role: %w", err)
	}
	if err := g.session.Set(sessionstore.KeyCurrentUser, rawProfile); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}
	return nil
}

func (g *SessionGate) discardPersisted() {
	_ = g.session.Delete(sessionstore.KeyToken)
	_ = g.session.Delete(sessionstore.KeyIsAuthenticated)
	_ = g.session.Delete(sessionstore.KeyUserRole)
	_ = g.session.Delete(sessionstore.KeyCurrentUser)
}
