package domain

import "time"

// ReceiptScan represents a receipt image submitted for parsing.
type ReceiptScan struct {
	Image    string `json:"image" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
}

// ReceiptDraft is a suggested expense extracted from a receipt. It is a
// convenience result only; nothing is written until the caller creates the
// expense themselves.
type ReceiptDraft struct {
	Amount            float64    `json:"amount"`
	Date              *time.Time `json:"date,omitempty"`
	Note              string     `json:"note,omitempty"`
	SuggestedPlanType string     `json:"suggested_plan_type"`
}
