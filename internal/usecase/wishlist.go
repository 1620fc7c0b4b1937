package usecase

import (
	"context"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/pharmakit/storefront/internal/models"
	"github.com/pharmakit/storefront/internal/repo/gateway"
	"github.com/pharmakit/storefront/internal/store"
	"github.com/pharmakit/storefront/pkg/util"
)

// WishlistService mirrors the cart's dual-mode shape for the set of liked
// products: toggle semantics locally, add/remove with read-after-write
// refresh against the gateway when authenticated.
type WishlistService struct {
	gate     *SessionGate
	local    *store.LocalWishlist
	wishlist gateway.WishlistClient
	catalog  gateway.CatalogClient
	cart     *CartService

	state ViewState
	lines []models.WishlistLine
	err   error

	// entries maps product ids onto server-assigned entry ids. It lives from
	// a fetch to the mutations of the same cycle; anonymous renders drop it.
	entries      []models.WishlistEntry
	remoteLoaded bool

	inFlight bool
}

func NewWishlistService(
	gate *SessionGate,
	local *store.LocalWishlist,
	wishlist gateway.WishlistClient,
	catalog gateway.CatalogClient,
	cart *CartService,
) *WishlistService {
	return &WishlistService{
		gate:     gate,
		local:    local,
		wishlist: wishlist,
		catalog:  catalog,
		cart:     cart,
		state:    StateIdle,
	}
}

func (s *WishlistService) State() ViewState { return s.state }
func (s *WishlistService) Err() error       { return s.err }

// View refreshes and returns the wishlist lines.
func (s *WishlistService) View(ctx context.Context) ([]models.WishlistLine, error) {
	s.state = StateLoading
	s.err = nil

	if !s.gate.IsAuthenticated() {
		s.refreshLocal()
		return s.lines, nil
	}

	if err := s.fetchRemote(ctx); err != nil {
		s.state = StateError
		s.err = err
		return s.lines, err
	}
	s.state = StateLoaded
	return s.lines, nil
}

// Toggle adds the product to the wishlist if absent and removes it if
// present. Two toggles restore the original membership.
func (s *WishlistService) Toggle(ctx context.Context, product models.Product) error {
	if err := s.beginMutation(); err != nil {
		return err
	}
	defer s.endMutation()

	if !s.gate.IsAuthenticated() {
		s.local.Toggle(product)
		s.refreshLocal()
		return nil
	}

	s.state = StateLoading
	if err := s.ensureRemote(ctx); err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	entry, present := s.remoteEntry(product.ID)
	var err error
	if present {
		err = s.wishlist.RemoveEntry(ctx, entry)
	} else {
		_, err = s.wishlist.AddEntry(ctx, product.ID)
	}
	if err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	return s.settleRemote(ctx)
}

// Remove drops the product from the wishlist if present.
func (s *WishlistService) Remove(ctx context.Context, productID string) error {
	if err := s.beginMutation(); err != nil {
		return err
	}
	defer s.endMutation()

	if !s.gate.IsAuthenticated() {
		s.local.Remove(productID)
		s.refreshLocal()
		return nil
	}

	s.state = StateLoading
	if err := s.ensureRemote(ctx); err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	entry, present := s.remoteEntry(productID)
	if !present {
		s.state = StateLoaded
		return nil
	}
	if err := s.wishlist.RemoveEntry(ctx, entry); err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	return s.settleRemote(ctx)
}

// Contains reports wishlist membership from the last rendered view.
func (s *WishlistService) Contains(productID string) bool {
	if !s.gate.IsAuthenticated() {
		return s.local.Contains(productID)
	}
	_, present := s.remoteEntry(productID)
	return present
}

// AddToCart moves a wishlist line into the cart. The entry stays on the
// wishlist; only the cart-side add happens.
func (s *WishlistService) AddToCart(ctx context.Context, productID string) error {
	for _, line := range s.lines {
		if line.Product.ID == productID {
			return s.cart.Add(ctx, line.Product)
		}
	}
	return models.ErrNotFound
}

// Badge is the wishlist count shown in the navbar.
func (s *WishlistService) Badge() int {
	return len(s.lines)
}

func (s *WishlistService) beginMutation() error {
	if s.inFlight {
		return models.ErrMutationInFlight
	}
	s.inFlight = true
	return nil
}

func (s *WishlistService) endMutation() {
	s.inFlight = false
}

func (s *WishlistService) refreshLocal() {
	s.lines = util.ConvertList(s.local.Products(), func(p models.Product) models.WishlistLine {
		return models.WishlistLine{
			Entry:   models.WishlistEntry{DrugID: p.ID},
			Product: p,
		}
	})
	s.entries = nil
	s.remoteLoaded = false
	s.state = StateLoaded
	s.err = nil
}

// ensureRemote loads the server entries when none were fetched this cycle,
// so the add-vs-remove decision never runs against a blank projection.
func (s *WishlistService) ensureRemote(ctx context.Context) error {
	if s.remoteLoaded {
		return nil
	}
	return s.fetchRemote(ctx)
}

func (s *WishlistService) settleRemote(ctx context.Context) error {
	if err := s.fetchRemote(ctx); err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	s.state = StateLoaded
	s.err = nil
	return nil
}

func (s *WishlistService) fetchRemote(ctx context.Context) error {
	entries, err := s.wishlist.FetchWishlist(ctx)
	if err != nil {
		return err
	}

	lines := make([]models.WishlistLine, 0, len(entries))
	for _, entry := range entries {
		details, err := s.catalog.GetDrugDetails(ctx, entry.DrugID)
		if err != nil {
			log.Warnw(ctx, "hiding wishlist line, catalog lookup failed",
				"drug_id", entry.DrugID, "error", err)
			continue
		}
		lines = append(lines, models.WishlistLine{
			Entry:   entry,
			Product: details.Product(),
		})
	}

	s.entries = entries
	s.remoteLoaded = true
	s.lines = lines
	return nil
}

func (s *WishlistService) remoteEntry(productID string) (models.WishlistEntry, bool) {
	for _, entry := range s.entries {
		if entry.DrugID == productID {
			return entry, true
		}
	}
	return models.WishlistEntry{}, false
}
