package models

// WishlistEntry is a server-held wishlist row: a drug reference plus the
// server-assigned id needed to delete it again.
type WishlistEntry struct {
	ID     string `json:"id,omitempty"`
	DrugID string `json:"drugId"`
	UserID int64  `json:"userId,omitempty"`
}

// WishlistLine is a hydrated wishlist row ready for rendering.
type WishlistLine struct {
	Entry   WishlistEntry `json:"entry"`
	Product Product       `json:"product"`
}
