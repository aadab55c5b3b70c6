package model

import (
	"time"
)

// Type classifies what kind of action a follow-up tracks.
type Type string

const (
	TypeVendorQuote   Type = "VENDOR_QUOTE"
	TypeOwnerApproval Type = "OWNER_APPROVAL"
	TypeTurnDeadline  Type = "TURN_DEADLINE"
	TypeUnitTurn      Type = "UNIT_TURN"
	TypeGeneral       Type = "GENERAL"
)

// Priority orders follow-ups within a sweep. URGENT sorts first.
type Priority string

const (
	PriorityUrgent Priority = "URGENT"
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank returns the sort weight of a priority, lower is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Status is the follow-up lifecycle state. It only ever advances
// PENDING -> REMINDED -> COMPLETED; nothing re-opens automatically.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusReminded  Status = "REMINDED"
	StatusCompleted Status = "COMPLETED"
)

// Metadata captures where a follow-up came from. It is kept for
// debugging and re-derivation only; business logic never branches on it.
type Metadata struct {
	Source     string    `json:"source"`
	Board      string    `json:"board"`
	RawStatus  string    `json:"raw_status"`
	IngestedAt time.Time `json:"ingested_at"`
}

// FollowUp is the canonical unit of work tracked by the pipeline:
// a due action tied to a property, vendor, or owner.
type FollowUp struct {
	ID       string   `json:"id"`
	Type     Type     `json:"type"`
	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`

	PropertyID      string `json:"property_id,omitempty"`
	PropertyAddress string `json:"property_address,omitempty"`
	WorkOrderID     string `json:"work_order_id,omitempty"`
	VendorName      string `json:"vendor_name,omitempty"`
	VendorContact   string `json:"vendor_contact,omitempty"`
	OwnerName       string `json:"owner_name,omitempty"`
	OwnerContact    string `json:"owner_contact,omitempty"`

	Title        string `json:"title"`
	Description  string `json:"description"`
	ActionNeeded string `json:"action_needed"`

	CreatedAt      time.Time  `json:"created_at"`
	DueDate        time.Time  `json:"due_date"`
	RemindAt       time.Time  `json:"remind_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	RemindersSent  int        `json:"reminders_sent"`
	LastReminderAt *time.Time `json:"last_reminder_at,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// RawTask is a best-effort extraction of one row from an external board.
// Fields the connector could not find carry its fallback defaults; Extra
// keeps the untouched source values for the normalizer's keyword scan.
type RawTask struct {
	SourceItemID    string         `json:"source_item_id"`
	Title           string         `json:"title"`
	Status          string         `json:"status"`
	Description     string         `json:"description"`
	DueDate         string         `json:"due_date"`
	AssignedTo      string         `json:"assigned_to"`
	PropertyAddress string         `json:"property_address"`
	WorkOrderID     string         `json:"work_order_id"`
	VendorName      string         `json:"vendor_name"`
	VendorContact   string         `json:"vendor_contact"`
	OwnerName       string         `json:"owner_name"`
	OwnerContact    string         `json:"owner_contact"`
	Extra           map[string]any `json:"extra,omitempty"`
}
