package dispatcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/propflow/followup-notifier/internal/model"
)

const overdueMarker = "OVERDUE"

var priorityGlyphs = map[model.Priority]string{
	model.PriorityUrgent: "🔴",
	model.PriorityHigh:   "🟠",
	model.PriorityMedium: "🟡",
	model.PriorityLow:    "🟢",
}

// Render builds the notification text for one due follow-up: priority
// glyph, title, description, action, the optional property/vendor/owner
// context lines, and the due date with an explicit OVERDUE marker when
// the deadline has already passed.
func Render(f model.FollowUp, now time.Time) string {
	var b strings.Builder

	glyph, ok := priorityGlyphs[f.Priority]
	if !ok {
		glyph = priorityGlyphs[model.PriorityMedium]
	}

	fmt.Fprintf(&b, "%s %s follow-up\n", glyph, f.Priority)
	fmt.Fprintf(&b, "%s\n", f.Title)

	if f.Description != "" {
		fmt.Fprintf(&b, "%s\n", f.Description)
	}

	fmt.Fprintf(&b, "Action: %s\n", f.ActionNeeded)

	if f.PropertyAddress != "" {
		fmt.Fprintf(&b, "Property: %s\n", f.PropertyAddress)
	}
	if f.VendorName != "" {
		b.WriteString("Vendor: " + f.VendorName)
		if f.VendorContact != "" {
			b.WriteString(" (" + f.VendorContact + ")")
		}
		b.WriteString("\n")
	}
	if f.OwnerName != "" {
		b.WriteString("Owner: " + f.OwnerName)
		if f.OwnerContact != "" {
			b.WriteString(" (" + f.OwnerContact + ")")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Due: %s", f.DueDate.Format("Jan 2, 2006 15:04"))
	if f.DueDate.Before(now) {
		fmt.Fprintf(&b, " - %s", overdueMarker)
	}

	return b.String()
}
