package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// DocumentRecord is the SQL row holding a serialised Document.
type DocumentRecord struct {
	bun.BaseModel `bun:"table:goblin_documents,alias:gd"`

	ID        string          `bun:"id,pk"`
	Body      json.RawMessage `bun:"body,type:jsonb,notnull"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp"`
}
