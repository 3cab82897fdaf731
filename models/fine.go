package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Fine is an entry in a tour's banter ledger.
type Fine struct {
	bun.BaseModel `bun:"table:fines,alias:f"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	TourID      int       `bun:"tour_id,notnull" json:"tourID"`
	UserID      uuid.UUID `bun:"user_id,type:uuid,notnull" json:"userID"`
	Category    string    `bun:"category,notnull" json:"category"`
	Amount      float64   `bun:"amount,notnull" json:"amount"`
	Description *string   `bun:"description" json:"description,omitempty"`
	RecordedBy  uuid.UUID `bun:"recorded_by,type:uuid,notnull" json:"recordedBy"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}
