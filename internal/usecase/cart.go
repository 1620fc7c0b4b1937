package usecase

import (
	"context"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/shopspring/decimal"

	"github.com/pharmakit/storefront/internal/models"
	"github.com/pharmakit/storefront/internal/repo/gateway"
	"github.com/pharmakit/storefront/internal/store"
)

// ViewState is the presenter's remote-path lifecycle. Every view open and
// every mutation re-enters StateLoading before settling.
type ViewState string

const (
	StateIdle    ViewState = "idle"
	StateLoading ViewState = "loading"
	StateLoaded  ViewState = "loaded"
	StateError   ViewState = "error"
)

// CartService presents a unified cart view over whichever backend the
// session state selects: the in-memory store for anonymous shoppers, the
// cart gateway for authenticated ones.
type CartService struct {
	gate    *SessionGate
	local   *store.LocalCart
	cart    gateway.CartClient
	catalog gateway.CatalogClient

	state ViewState
	view  models.CartView
	err   error

	// remoteItems maps product ids onto server-assigned item ids. It lives
	// from a fetch to the mutations of the same cycle; Invalidate and
	// anonymous renders drop it.
	remoteItems  []models.RemoteCartItem
	remoteLoaded bool

	inFlight bool
}

func NewCartService(
	gate *SessionGate,
	local *store.LocalCart,
	cart gateway.CartClient,
	catalog gateway.CatalogClient,
) *CartService {
	return &CartService{
		gate:    gate,
		local:   local,
		cart:    cart,
		catalog: catalog,
		state:   StateIdle,
	}
}

func (s *CartService) State() ViewState { return s.state }
func (s *CartService) Err() error       { return s.err }

// View refreshes and returns the cart. Remote mode always re-fetches; there
// is no cache between loading cycles. On failure the previously loaded view
// is returned unchanged alongside the error so the shopper keeps seeing the
// last good state under the error banner.
func (s *CartService) View(ctx context.Context) (models.CartView, error) {
	s.state = StateLoading
	s.err = nil

	if !s.gate.IsAuthenticated() {
		s.view = models.CartView{
			Lines:    s.local.Lines(),
			Subtotal: s.local.Subtotal(),
		}
		s.remoteItems = nil
		s.remoteLoaded = false
		s.state = StateLoaded
		return s.view, nil
	}

	if err := s.fetchRemote(ctx); err != nil {
		s.state = StateError
		s.err = err
		return s.view, err
	}
	s.state = StateLoaded
	return s.view, nil
}

// Add puts one unit of the product into the active cart. In remote mode the
// server state is re-fetched before returning (read-after-write).
func (s *CartService) Add(ctx context.Context, product models.Product) error {
	if err := s.beginMutation(); err != nil {
		return err
	}
	defer s.endMutation()

	if !s.gate.IsAuthenticated() {
		s.local.Add(product)
		s.refreshLocal()
		return nil
	}

	s.state = StateLoading
	if err := s.ensureRemote(ctx); err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	item, existing := s.remoteItem(product.ID)
	var err error
	if existing {
		item.Quantity++
		_, err = s.cart.UpdateItem(ctx, item.ID, item)
	} else {
		_, err = s.cart.AddItem(ctx, models.RemoteCartItem{DrugID: product.ID, Quantity: 1})
	}
	if err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	return s.settleRemote(ctx)
}

// SetQuantity replaces the quantity of the product's line. Zero removes the
// line; a product absent from the cart is a no-op. Negative quantities are
// rejected before touching either backend.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", models.ErrValidation)
	}
	if err := s.beginMutation(); err != nil {
		return err
	}
	defer s.endMutation()

	if !s.gate.IsAuthenticated() {
		s.local.SetQuantity(productID, quantity)
		s.refreshLocal()
		return nil
	}

	s.state = StateLoading
	if err := s.ensureRemote(ctx); err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	item, ok := s.remoteItem(productID)
	if !ok {
		s.state = StateLoaded
		return nil
	}

	var err error
	if quantity == 0 {
		_, err = s.cart.RemoveItem(ctx, item)
	} else {
		item.Quantity = quantity
		_, err = s.cart.UpdateItem(ctx, item.ID, item)
	}
	if err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	return s.settleRemote(ctx)
}

// Remove drops the product's line entirely.
func (s *CartService) Remove(ctx context.Context, productID string) error {
	return s.SetQuantity(ctx, productID, 0)
}

// Badge is the item count shown next to the cart icon, computed from the
// last rendered view.
func (s *CartService) Badge() int {
	return s.view.Badge()
}

// Invalidate forgets the rendered view so the next open starts from a
// fresh fetch. Called after checkout.
func (s *CartService) Invalidate() {
	s.state = StateIdle
	s.view = models.CartView{}
	s.remoteItems = nil
	s.remoteLoaded = false
	s.err = nil
}

// ensureRemote loads the server projection when none was fetched this cycle,
// so the add-vs-update decision never runs against a blank projection.
func (s *CartService) ensureRemote(ctx context.Context) error {
	if s.remoteLoaded {
		return nil
	}
	return s.fetchRemote(ctx)
}

func (s *CartService) beginMutation() error {
	if s.inFlight {
		return models.ErrMutationInFlight
	}
	s.inFlight = true
	return nil
}

func (s *CartService) endMutation() {
	s.inFlight = false
}

func (s *CartService) refreshLocal() {
	s.view = models.CartView{
		Lines:    s.local.Lines(),
		Subtotal: s.local.Subtotal(),
	}
	s.state = StateLoaded
	s.err = nil
}

// settleRemote performs the mandatory post-mutation re-fetch. A mutation
// only counts as done once the server's state has been re-read.
func (s *CartService) settleRemote(ctx context.Context) error {
	if err := s.fetchRemote(ctx); err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	s.state = StateLoaded
	s.err = nil
	return nil
}

func (s *CartService) fetchRemote(ctx context.Context) error {
	cart, err := s.cart.FetchCart(ctx)
	if err != nil {
		return err
	}

	lines := make([]models.CartLine, 0, len(cart.Items))
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		details, err := s.catalog.GetDrugDetails(ctx, item.DrugID)
		if err != nil {
			// A line that cannot be hydrated is hidden, not fatal.
			log.Warnw(ctx, "hiding cart line, catalog lookup failed",
				"drug_id", item.DrugID, "error", err)
			continue
		}
		product := details.Product()
		if item.Price != nil {
			product.Price = *item.Price
		}
		line := models.CartLine{Product: product, Quantity: item.Quantity}
		lines = append(lines, line)
		subtotal = subtotal.Add(line.LineTotal())
	}

	s.remoteItems = cart.Items
	s.remoteLoaded = true
	s.view = models.CartView{Lines: lines, Subtotal: subtotal}
	return nil
}

func (s *CartService) remoteItem(productID string) (models.RemoteCartItem, bool) {
	for _, item := range s.remoteItems {
		if item.DrugID == productID {
			return item, true
		}
	}
	return models.RemoteCartItem{}, false
}
