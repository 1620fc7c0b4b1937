package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmakit/storefront/internal/models"
	"github.com/pharmakit/storefront/internal/store"
)

func newLocalWishlistService() (*WishlistService, *fakeWishlistClient, *fakeCartClient) {
	wishlist := &fakeWishlistClient{}
	cart := &fakeCartClient{}
	catalog := &fakeCatalogClient{details: map[string]models.DrugDetails{}}
	localCart := store.NewLocalCart()
	localWishlist := store.NewLocalWishlist()
	gate := anonymousGate(&fakeAuthClient{}, localCart, localWishlist)
	cartSvc := NewCartService(gate, localCart, cart, catalog)
	return NewWishlistService(gate, localWishlist, wishlist, catalog, cartSvc), wishlist, cart
}

func newRemoteWishlistService(t *testing.T) (*WishlistService, *fakeWishlistClient, *fakeCartClient, *fakeCatalogClient) {
	t.Helper()
	wishlist := &fakeWishlistClient{}
	cart := &fakeCartClient{}
	catalog := &fakeCatalogClient{details: map[string]models.DrugDetails{
		"p1": testDetails("p1", "10.00"),
		"p2": testDetails("p2", "5.00"),
	}}
	localCart := store.NewLocalCart()
	localWishlist := store.NewLocalWishlist()
	gate := authedGate(t, &fakeAuthClient{}, localCart, localWishlist)
	cartSvc := NewCartService(gate, localCart, cart, catalog)
	return NewWishlistService(gate, localWishlist, wishlist, catalog, cartSvc), wishlist, cart, catalog
}

func TestWishlistServiceAnonymous(t *testing.T) {
	t.Parallel()

	t.Run("two toggles restore the original membership", func(t *testing.T) {
		ctx := t.Context()
		svc, wishlist, _ := newLocalWishlistService()

		require.NoError(t, svc.Toggle(ctx, testProduct("p1", "10.00")))
		assert.True(t, svc.Contains("p1"))
		assert.Equal(t, 1, svc.Badge())

		require.NoError(t, svc.Toggle(ctx, testProduct("p1", "10.00")))
		assert.False(t, svc.Contains("p1"))
		assert.Zero(t, svc.Badge())

		assert.Zero(t, wishlist.addCalls)
		assert.Zero(t, wishlist.removeCalls)
	})

	t.Run("remove drops the line", func(t *testing.T) {
		ctx := t.Context()
		svc, _, _ := newLocalWishlistService()
		require.NoError(t, svc.Toggle(ctx, testProduct("p1", "10.00")))

		require.NoError(t, svc.Remove(ctx, "p1"))
		assert.False(t, svc.Contains("p1"))
	})

	t.Run("add to cart keeps the wishlist entry", func(t *testing.T) {
		ctx := t.Context()
		svc, _, _ := newLocalWishlistService()
		require.NoError(t, svc.Toggle(ctx, testProduct("p1", "10.00")))

		require.NoError(t, svc.AddToCart(ctx, "p1"))
		assert.True(t, svc.Contains("p1"))
	})

	t.Run("add to cart of an unknown product fails", func(t *testing.T) {
		ctx := t.Context()
		svc, _, _ := newLocalWishlistService()

		err := svc.AddToCart(ctx, "ghost")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestWishlistServiceRemote(t *testing.T) {
	t.Parallel()

	t.Run("open fetches once and hydrates entries", func(t *testing.T) {
		ctx := t.Context()
		svc, wishlist, _, catalog := newRemoteWishlistService(t)
		wishlist.entries = []models.WishlistEntry{
			{ID: "wish-1", DrugID: "p1"},
			{ID: "wish-2", DrugID: "p2"},
		}

		lines, err := svc.View(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, wishlist.fetchCalls)
		assert.Equal(t, 2, catalog.detailCalls)
		require.Len(t, lines, 2)
		assert.Equal(t, "drug-p1", lines[0].Product.Name)
	})

	t.Run("toggle of an absent product adds then re-fetches", func(t *testing.T) {
		ctx := t.Context()
		svc, wishlist, _, _ := newRemoteWishlistService(t)

		_, err := svc.View(ctx)
		require.NoError(t, err)
		require.NoError(t, svc.Toggle(ctx, testProduct("p1", "10.00")))

		assert.Equal(t, 1, wishlist.addCalls)
		assert.Zero(t, wishlist.removeCalls)
		assert.Equal(t, 2, wishlist.fetchCalls)
		assert.True(t, svc.Contains("p1"))
	})

	t.Run("toggle of a present product removes it", func(t *testing.T) {
		ctx := t.Context()
		svc, wishlist, _, _ := newRemoteWishlistService(t)
		wishlist.entries = []models.WishlistEntry{{ID: "wish-1", DrugID: "p1"}}

		_, err := svc.View(ctx)
		require.NoError(t, err)
		require.NoError(t, svc.Toggle(ctx, testProduct("p1", "10.00")))

		assert.Equal(t, 1, wishlist.removeCalls)
		assert.Zero(t, wishlist.addCalls)
		assert.False(t, svc.Contains("p1"))
	})

	t.Run("toggle before any view removes the existing server entry", func(t *testing.T) {
		ctx := t.Context()
		svc, wishlist, _, _ := newRemoteWishlistService(t)
		wishlist.entries = []models.WishlistEntry{{ID: "wish-1", DrugID: "p1"}}

		require.NoError(t, svc.Toggle(ctx, testProduct("p1", "10.00")))

		assert.Zero(t, wishlist.addCalls)
		assert.Equal(t, 1, wishlist.removeCalls)
		// one fetch to load the entries, one more to settle
		assert.Equal(t, 2, wishlist.fetchCalls)
		assert.Empty(t, wishlist.entries)
		assert.False(t, svc.Contains("p1"))
	})

	t.Run("remove before any view finds the server entry", func(t *testing.T) {
		ctx := t.Context()
		svc, wishlist, _, _ := newRemoteWishlistService(t)
		wishlist.entries = []models.WishlistEntry{{ID: "wish-1", DrugID: "p1"}}

		require.NoError(t, svc.Remove(ctx, "p1"))

		assert.Equal(t, 1, wishlist.removeCalls)
		assert.Empty(t, wishlist.entries)
	})

	t.Run("failed toggle leaves the view unchanged", func(t *testing.T) {
		ctx := t.Context()
		svc, wishlist, _, _ := newRemoteWishlistService(t)
		wishlist.entries = []models.WishlistEntry{{ID: "wish-1", DrugID: "p1"}}

		before, err := svc.View(ctx)
		require.NoError(t, err)

		wishlist.removeErr = errors.New("backend down")
		err = svc.Toggle(ctx, testProduct("p1", "10.00"))
		require.Error(t, err)
		assert.Equal(t, StateError, svc.State())

		wishlist.removeErr = nil
		after, err := svc.View(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("add to cart posts to the cart and keeps the entry", func(t *testing.T) {
		ctx := t.Context()
		svc, wishlist, cart, _ := newRemoteWishlistService(t)
		wishlist.entries = []models.WishlistEntry{{ID: "wish-1", DrugID: "p1"}}

		_, err := svc.View(ctx)
		require.NoError(t, err)
		require.NoError(t, svc.AddToCart(ctx, "p1"))

		assert.Equal(t, 1, cart.addCalls)
		assert.Len(t, wishlist.entries, 1)
		assert.True(t, svc.Contains("p1"))
	})

	t.Run("a line that cannot be hydrated is hidden", func(t *testing.T) {
		ctx := t.Context()
		svc, wishlist, _, catalog := newRemoteWishlistService(t)
		wishlist.entries = []models.WishlistEntry{
			{ID: "wish-1", DrugID: "p1"},
			{ID: "wish-2", DrugID: "p2"},
		}
		catalog.failIDs = map[string]bool{"p1": true}

		lines, err := svc.View(ctx)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "p2", lines[0].Product.ID)
	})
}
