package dispatcher

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/propflow/followup-notifier/internal/model"
)

func TestRender_FullContext(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	f := model.FollowUp{
		ID:              "appfolio:maintenance:101",
		Priority:        model.PriorityUrgent,
		Title:           "Replace water heater",
		Description:     "Unit 4B, quote received",
		ActionNeeded:    "Review vendor quote and approve or decline",
		PropertyAddress: "88 Elm Ave #2",
		VendorName:      "Apex Plumbing",
		VendorContact:   "555-0132",
		OwnerName:       "Dana Wells",
		DueDate:         now.Add(48 * time.Hour),
	}

	msg := Render(f, now)

	assert.True(t, strings.HasPrefix(msg, "🔴 URGENT"), msg)
	assert.Contains(t, msg, "Replace water heater")
	assert.Contains(t, msg, "Action: Review vendor quote and approve or decline")
	assert.Contains(t, msg, "Property: 88 Elm Ave #2")
	assert.Contains(t, msg, "Vendor: Apex Plumbing (555-0132)")
	assert.Contains(t, msg, "Owner: Dana Wells")
	assert.NotContains(t, msg, overdueMarker)
}

func TestRender_OverdueFlag(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	f := model.FollowUp{
		Priority:     model.PriorityHigh,
		Title:        "Turn deadline slipped",
		ActionNeeded: "Confirm turn completion before the deadline",
		DueDate:      now.Add(-24 * time.Hour),
	}

	assert.Contains(t, Render(f, now), overdueMarker)
}

func TestRender_OmitsEmptyContextLines(t *testing.T) {
	now := time.Now().UTC()

	f := model.FollowUp{
		Priority:     model.PriorityMedium,
		Title:        "Routine filter change",
		ActionNeeded: "Review and follow up",
		DueDate:      now.Add(time.Hour),
	}

	msg := Render(f, now)

	assert.NotContains(t, msg, "Property:")
	assert.NotContains(t, msg, "Vendor:")
	assert.NotContains(t, msg, "Owner:")
}
