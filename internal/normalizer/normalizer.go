// Package normalizer maps raw board records into canonical follow-ups.
package normalizer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/propflow/followup-notifier/internal/config"
	"github.com/propflow/followup-notifier/internal/model"
)

// ErrNoSourceID marks a raw task without a stable source identifier.
// Such rows are skipped rather than given a time-based id, which would
// break re-ingestion idempotency.
var ErrNoSourceID = errors.New("raw task has no stable source item id")

const (
	defaultDueOffset    = 48 * time.Hour
	defaultRemindOffset = 12 * time.Hour
)

// Keyword sets are small and literal on purpose: inference must stay
// auditable, this is pattern matching, not NLP.
var (
	urgentKeywords     = []string{"urgent", "asap"}
	highKeywords       = []string{"high priority"}
	completionKeywords = []string{"done", "completed"}
)

// dueDateLayouts are the date formats boards have been seen to emit.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
}

// DeriveID builds the follow-up identity from the board identity and
// the source-assigned item id. It is a pure function of its inputs, so
// re-running ingestion over the same board state is a no-op upsert.
func DeriveID(source, board, sourceItemID string) string {
	return fmt.Sprintf(
		"%s:%s:%s",
		strings.ToLower(strings.TrimSpace(source)),
		strings.ToLower(strings.TrimSpace(board)),
		strings.TrimSpace(sourceItemID),
	)
}

// Normalize maps one raw board record into a FollowUp, applying the
// board's default type, keyword priority inference, date defaulting,
// and completion inference.
func Normalize(raw model.RawTask, board config.Board, now time.Time) (model.FollowUp, error) {
	if strings.TrimSpace(raw.SourceItemID) == "" {
		return model.FollowUp{}, ErrNoSourceID
	}

	typ := followUpType(board.FollowUpType)
	status := model.StatusPending

	var completedAt *time.Time
	if containsAny(raw.Status, completionKeywords) {
		status = model.StatusCompleted
		t := now
		completedAt = &t
	}

	f := model.FollowUp{
		ID:       DeriveID(board.Source, board.Name, raw.SourceItemID),
		Type:     typ,
		Status:   status,
		Priority: inferPriority(raw),

		PropertyAddress: raw.PropertyAddress,
		WorkOrderID:     raw.WorkOrderID,
		VendorName:      raw.VendorName,
		VendorContact:   raw.VendorContact,
		OwnerName:       raw.OwnerName,
		OwnerContact:    raw.OwnerContact,

		Title:        raw.Title,
		Description:  raw.Description,
		ActionNeeded: actionFor(typ),

		CreatedAt:   now,
		DueDate:     dueDate(raw.DueDate, now),
		RemindAt:    now.Add(defaultRemindOffset),
		CompletedAt: completedAt,

		Metadata: model.Metadata{
			Source:     board.Source,
			Board:      board.Name,
			RawStatus:  raw.Status,
			IngestedAt: now,
		},
	}

	return f, nil
}

// inferPriority scans the raw free text for urgency keywords.
func inferPriority(raw model.RawTask) model.Priority {
	text := raw.Title + " " + raw.Description + " " + raw.Status

	if containsAny(text, urgentKeywords) {
		return model.PriorityUrgent
	}
	if containsAny(text, highKeywords) {
		return model.PriorityHigh
	}

	return model.PriorityMedium
}

// dueDate parses the source due date if it is parseable, otherwise
// defaults 48h out. RemindAt stays at now+12h regardless, so the first
// nudge lands well before the deadline.
func dueDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, layout := range dueDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}

	return now.Add(defaultDueOffset)
}

func followUpType(s string) model.Type {
	switch model.Type(strings.ToUpper(strings.TrimSpace(s))) {
	case model.TypeVendorQuote:
		return model.TypeVendorQuote
	case model.TypeOwnerApproval:
		return model.TypeOwnerApproval
	case model.TypeTurnDeadline:
		return model.TypeTurnDeadline
	case model.TypeUnitTurn:
		return model.TypeUnitTurn
	default:
		return model.TypeGeneral
	}
}

// actionFor supplies the default operator instruction per type; the
// boards themselves carry no action column.
func actionFor(t model.Type) string {
	switch t {
	case model.TypeVendorQuote:
		return "Review vendor quote and approve or decline"
	case model.TypeOwnerApproval:
		return "Request owner approval"
	case model.TypeTurnDeadline:
		return "Confirm turn completion before the deadline"
	case model.TypeUnitTurn:
		return "Schedule unit turn work"
	default:
		return "Review and follow up"
	}
}

func containsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	return false
}
