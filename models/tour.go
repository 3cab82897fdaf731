package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Tour is one trip. Only one tour is active at a time.
type Tour struct {
	bun.BaseModel `bun:"table:tours,alias:tr"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Year      int       `bun:"year,notnull" json:"year"`
	IsActive  bool      `bun:"is_active,notnull,default:false" json:"isActive"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
