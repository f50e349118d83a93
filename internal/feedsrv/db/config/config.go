package config

import (
	"fmt"

	"github.com/tansive/pkgfeed/internal/feedsrv/config"
)

// FeedDsn assembles the connection string for the feed database from the
// server configuration.
func FeedDsn() string {
	db := config.Config().DB
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.DBName, db.SSLMode)
}
