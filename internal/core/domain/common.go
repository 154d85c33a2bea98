package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // operator ID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // operator ID
	Version       int64     `json:"version"`       // bumped by storage on every successful write
}

func newAuditFields(operatorID string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     operatorID,
		LastUpdatedAt: now,
		LastUpdatedBy: operatorID,
	}
}

func (a *AuditFields) touch(operatorID string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = operatorID
}
