package store

import (
	"github.com/pharmakit/storefront/internal/models"
)

// LocalWishlist is the distinct set of products an anonymous shopper has
// marked, in the order they were first marked.
type LocalWishlist struct {
	products []models.Product
}

func NewLocalWishlist() *LocalWishlist {
	return &LocalWishlist{}
}

// Toggle adds the product if absent and removes it if present, returning
// the resulting membership.
func (w *LocalWishlist) Toggle(product models.Product) bool {
	for i := range w.products {
		if w.products[i].ID == product.ID {
			w.products = append(w.products[:i], w.products[i+1:]...)
			return false
		}
	}
	w.products = append(w.products, product)
	return true
}

// Remove drops the product if present.
func (w *LocalWishlist) Remove(productID string) {
	for i := range w.products {
		if w.products[i].ID == productID {
			w.products = append(w.products[:i], w.products[i+1:]...)
			return
		}
	}
}

func (w *LocalWishlist) Contains(productID string) bool {
	for _, p := range w.products {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Products returns a copy of the marked products.
func (w *LocalWishlist) Products() []models.Product {
	out := make([]models.Product, len(w.products))
	copy(out, w.products)
	return out
}

func (w *LocalWishlist) Len() int {
	return len(w.products)
}

// Clear empties the wishlist. Called on sign-out.
func (w *LocalWishlist) Clear() {
	w.products = nil
}
