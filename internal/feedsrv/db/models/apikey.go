package models

import (
	"time"

	"github.com/google/uuid"
)

/*
   Column   |          Type           | Collation | Nullable | Default
------------+-------------------------+-----------+----------+---------
 user_id    | uuid                    |           | not null |
 key_name   | character varying(64)   |           | not null |
 hash       | character varying(128)  |           | not null |
 salt       | bytea                   |           | not null |
 created_at | timestamptz             |           | not null | now()
Indexes:
    "api_keys_pkey" PRIMARY KEY, btree (user_id, key_name)
*/

// ApiKey stores only the salted hash of an issued key. The plaintext key is
// returned once at issuance and is unrecoverable afterward.
type ApiKey struct {
	UserID    uuid.UUID `db:"user_id"`
	KeyName   string    `db:"key_name"`
	Hash      string    `db:"hash"`
	Salt      []byte    `db:"salt"`
	CreatedAt time.Time `db:"created_at"`
}
