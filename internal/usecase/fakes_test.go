package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pharmakit/storefront/internal/models"
	"github.com/pharmakit/storefront/internal/repo/sessionstore"
	"github.com/pharmakit/storefront/internal/store"
)

type fakeAuthClient struct {
	token      string
	loginErr   error
	role       string
	roleErr    error
	profile    *models.Profile
	detailsErr error
	signUpErr  error

	loginCalls int
}

func (f *fakeAuthClient) Login(_ context.Context, _ models.LoginRequest) (string, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeAuthClient) UserRole(_ context.Context, _ string) (string, error) {
	if f.roleErr != nil {
		return "", f.roleErr
	}
	return f.role, nil
}

func (f *fakeAuthClient) UserDetails(_ context.Context) (*models.Profile, error) {
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeAuthClient) SignUpClient(_ context.Context, req models.SignUpRequest) (*models.Profile, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &models.Profile{Email: req.Email, FirstName: req.FirstName, Role: models.RoleUser}, nil
}

type fakeCartClient struct {
	items  []models.RemoteCartItem
	nextID int

	fetchErr  error
	addErr    error
	updateErr error
	removeErr error

	fetchCalls  int
	addCalls    int
	updateCalls int
	removeCalls int

	// onAdd runs inside AddItem, before the write lands.
	onAdd func()
}

func (f *fakeCartClient) FetchCart(_ context.Context) (*models.RemoteCart, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	items := make([]models.RemoteCartItem, len(f.items))
	copy(items, f.items)
	return &models.RemoteCart{ID: "cart-1", Items: items}, nil
}

func (f *fakeCartClient) AddItem(_ context.Context, item models.RemoteCartItem) (*models.RemoteCartItem, error) {
	f.addCalls++
	if f.onAdd != nil {
		f.onAdd()
	}
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.nextID++
	item.ID = fmt.Sprintf("item-%d", f.nextID)
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeCartClient) UpdateItem(_ context.Context, id string, item models.RemoteCartItem) (*models.RemoteCartItem, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Quantity = item.Quantity
			return &f.items[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeCartClient) RemoveItem(_ context.Context, item models.RemoteCartItem) (*models.RemoteCart, error) {
	f.removeCalls++
	if f.removeErr != nil {
		return nil, f.removeErr
	}
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return &models.RemoteCart{ID: "cart-1", Items: f.items}, nil
}

type fakeCatalogClient struct {
	details map[string]models.DrugDetails
	failIDs map[string]bool

	detailCalls int
}

func (f *fakeCatalogClient) GetDrugDetails(_ context.Context, drugID string) (*models.DrugDetails, error) {
	f.detailCalls++
	if f.failIDs[drugID] {
		return nil, models.ErrNotFound
	}
	d, ok := f.details[drugID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &d, nil
}

func (f *fakeCatalogClient) SearchDrugs(_ context.Context, _ string) ([]models.DrugDetails, error) {
	return nil, nil
}

func (f *fakeCatalogClient) DrugsByCategory(_ context.Context, _ string) ([]models.DrugDetails, error) {
	return nil, nil
}

func (f *fakeCatalogClient) ListCategories(_ context.Context) ([]models.Category, error) {
	return nil, nil
}

type fakeWishlistClient struct {
	entries []models.WishlistEntry
	nextID  int

	fetchErr  error
	addErr    error
	removeErr error

	fetchCalls  int
	addCalls    int
	removeCalls int
}

func (f *fakeWishlistClient) FetchWishlist(_ context.Context) ([]models.WishlistEntry, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	entries := make([]models.WishlistEntry, len(f.entries))
	copy(entries, f.entries)
	return entries, nil
}

func (f *fakeWishlistClient) AddEntry(_ context.Context, drugID string) (*models.WishlistEntry, error) {
	f.addCalls++
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.nextID++
	entry := models.WishlistEntry{ID: fmt.Sprintf("wish-%d", f.nextID), DrugID: drugID}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeWishlistClient) RemoveEntry(_ context.Context, entry models.WishlistEntry) error {
	f.removeCalls++
	if f.removeErr != nil {
		return f.removeErr
	}
	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			break
		}
	}
	return nil
}

type fakeOrdersClient struct {
	placeErr error
	orders   []models.Order

	placeCalls int
	listCalls  int
}

func (f *fakeOrdersClient) PlaceOrder(_ context.Context, order models.Order) (*models.Order, error) {
	f.placeCalls++
	if f.placeErr != nil {
		return nil, f.placeErr
	}
	order.ID = "order-1"
	order.Status = models.OrderPending
	f.orders = append(f.orders, order)
	return &order, nil
}

func (f *fakeOrdersClient) UserOrders(_ context.Context) ([]models.Order, error) {
	f.listCalls++
	return f.orders, nil
}

func (f *fakeOrdersClient) GetOrder(_ context.Context, id string) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			return &f.orders[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func testProduct(id, price string) models.Product {
	return models.Product{
		ID:    id,
		Name:  "drug-" + id,
		Price: decimal.RequireFromString(price),
	}
}

func testDetails(id, price string) models.DrugDetails {
	return models.DrugDetails{
		DrugID:    id,
		DrugName:  "drug-" + id,
		Price:     decimal.RequireFromString(price),
		Available: true,
	}
}

// anonymousGate builds a gate backed by an empty session store.
func anonymousGate(auth *fakeAuthClient, cart *store.LocalCart, wishlist *store.LocalWishlist) *SessionGate {
	return NewSessionGate(sessionstore.NewMemoryStore(), auth, cart, wishlist)
}

// authedGate seeds the persisted triple so the gate restores authenticated.
func authedGate(t *testing.T, auth *fakeAuthClient, cart *store.LocalCart, wishlist *store.LocalWishlist) *SessionGate {
	t.Helper()
	session := sessionstore.NewMemoryStore()
	rawProfile, err := json.Marshal(models.Profile{ID: 7, Email: "jo@example.com", FirstName: "Jo"})
	require.NoError(t, err)

	require.NoError(t, session.Set(sessionstore.KeyToken, "tok-1"))
	require.NoError(t, session.Set(sessionstore.KeyIsAuthenticated, "true"))
	require.NoError(t, session.Set(sessionstore.KeyUserRole, "user"))
	require.NoError(t, session.Set(sessionstore.KeyCurrentUser, string(rawProfile)))

	gate := NewSessionGate(session, auth, cart, wishlist)
	require.True(t, gate.IsAuthenticated())
	return gate
}
