package domain

import "time"

// PricingSetting is one admin-editable override of the default rate card,
// stored as a key/value row. Keys follow the grouped form
// "<category>.<field>", e.g. "tax.pst_rate" or "protection.suv_daily".
// Version increases monotonically with every settings write; a resolved
// rate table carries the version it was built from.
type PricingSetting struct {
	ID        int32     `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Version   int32     `json:"version"`
	UpdatedBy *int32    `json:"updated_by,omitempty"`
	UpdatedOn time.Time `json:"updated_on"`
}
