// Package sessionstore persists the session flags the storefront reads at
// startup and rewrites on every sign-in/sign-out transition. It is the
// durable key/value counterpart of the browser's local storage.
package sessionstore

// Well-known keys. The startup restore requires the authenticated flag,
// role, and profile to all be present; anything less reads as anonymous.
const (
	KeyIsAuthenticated = "isAuthenticated"
	KeyUserRole        = "userRole"
	KeyCurrentUser     = "currentUser"
	KeyToken           = "token"
)

// Store is a small durable string map.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}
