package territory

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentType distinguishes the single active primary assignment from
// optional secondary coverage.
type AssignmentType string

const (
	AssignmentPrimary   AssignmentType = "primary"
	AssignmentSecondary AssignmentType = "secondary"
)

// Rep maps to the sales_rep table.
type Rep struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RepCode   string    `db:"rep_code" json:"rep_code"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Region    string    `db:"region" json:"region"`
	Territory string    `db:"territory" json:"territory"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Assignment maps to the territory_assignment table, linking one HCP to one
// rep. Exactly one active primary assignment exists per HCP.
type Assignment struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	HCPID         uuid.UUID      `db:"hcp_id" json:"hcp_id"`
	RepID         uuid.UUID      `db:"rep_id" json:"rep_id"`
	Type          AssignmentType `db:"assignment_type" json:"assignment_type"`
	EffectiveFrom time.Time      `db:"effective_from" json:"effective_from"`
	EffectiveTo   *time.Time     `db:"effective_to" json:"effective_to,omitempty"`
	Active        bool           `db:"active" json:"active"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}
