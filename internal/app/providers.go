package app

import (
	"github.com/pharmakit/storefront/internal/config"
	"github.com/pharmakit/storefront/internal/repo/sessionstore"
)

func newSessionStore(cfg *config.Config) (sessionstore.Store, error) {
	return sessionstore.NewFileStore(cfg.Session.FilePath)
}
