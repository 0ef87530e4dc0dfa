package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Operator identifies who is performing a core operation and on behalf of
// which organisation. It is passed explicitly into every service call; the
// core never reads ambient session state.
type Operator struct {
	OrganisationID string
	UserID         string
}
