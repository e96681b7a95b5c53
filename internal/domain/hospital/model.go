package hospital

import (
	"time"

	"github.com/google/uuid"
)

// Hospital maps to the hospitals table. Rows are created when a hospital
// admin registers; IsApproved is reserved for a manual vetting step and does
// not currently gate any operation.
type Hospital struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	City            *string   `db:"city" json:"city,omitempty"`
	IsApproved      bool      `db:"is_approved" json:"is_approved"`
	CreatedByUserID uuid.UUID `db:"created_by_user_id" json:"created_by_user_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
