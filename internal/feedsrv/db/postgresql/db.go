// Package postgresql implements the feed store interfaces against PostgreSQL.
package postgresql

import (
	"database/sql"

	"github.com/tansive/pkgfeed/internal/feedsrv/db/dbmanager"
)

type feedDb struct {
	pm *packageManager
	km *keyManager
}

func NewFeedDb(c dbmanager.Conn) (*packageManager, *keyManager) {
	h := &feedDb{}
	h.pm = newPackageManager(c)
	h.km = newKeyManager(c)
	return h.pm, h.km
}

type packageManager struct {
	c dbmanager.Conn
}

func newPackageManager(c dbmanager.Conn) *packageManager {
	return &packageManager{c: c}
}

func (pm *packageManager) conn() *sql.Conn {
	return pm.c.Conn()
}

type keyManager struct {
	c dbmanager.Conn
}

func newKeyManager(c dbmanager.Conn) *keyManager {
	return &keyManager{c: c}
}

func (km *keyManager) conn() *sql.Conn {
	return km.c.Conn()
}
