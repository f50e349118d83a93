package models

import (
	"time"

	"github.com/google/uuid"
)

/*
      Column      |          Type           | Collation | Nullable | Default
------------------+-------------------------+-----------+----------+---------
 name             | character varying(128)  |           | not null |
 version          | character varying(64)   |           | not null |
 target_frameworks| text[]                  |           | not null | '{}'
 upload_time      | timestamptz             |           | not null | now()
 upload_user_id   | uuid                    |           | not null |
Indexes:
    "packages_pkey" PRIMARY KEY, btree (name, version)
    "idx_packages_lower_name" btree (lower(name))
*/

// Package is one stored package version. Name and Version keep the casing
// from the manifest; lookups compare case-insensitively.
type Package struct {
	Name             string    `db:"name"`
	Version          string    `db:"version"`
	TargetFrameworks []string  `db:"target_frameworks"`
	UploadTime       time.Time `db:"upload_time"`
	UploadUserID     uuid.UUID `db:"upload_user_id"`
}
