package model

import "time"

// Metadata holds the timestamps owned by the store. They are never inserted by the service.
type Metadata struct {
	CreatedAt time.Time `db:"created_at" insert:"-"`
	UpdatedAt time.Time `db:"updated_at" insert:"-"`
}
