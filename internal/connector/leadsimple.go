package connector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/wb-go/wbf/zlog"

	"github.com/propflow/followup-notifier/internal/config"
	"github.com/propflow/followup-notifier/internal/model"
)

// LeadSimple is the connector for LeadSimple-style kanban boards. It
// exchanges an API token for a session, then reads the cards of a
// saved pipeline view.
type LeadSimple struct {
	cfg    config.LeadSimple
	client *resty.Client
}

// NewLeadSimple creates a LeadSimple connector. Every request it makes
// is bounded by the given timeout.
func NewLeadSimple(cfg config.LeadSimple, timeout time.Duration) *LeadSimple {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &LeadSimple{cfg: cfg, client: client}
}

type leadSimpleSession struct {
	SessionToken string `json:"session_token"`
}

// Fetch logs in and extracts the cards of the board's saved view. A
// view that comes back empty or non-OK after a successful login is a
// silent zero-result; only session failure is an error.
func (c *LeadSimple) Fetch(ctx context.Context, board config.Board) ([]model.RawTask, error) {
	var session leadSimpleSession

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"api_token": c.cfg.APIToken}).
		SetResult(&session).
		Post("/api/v1/sessions")
	if err != nil {
		return nil, fmt.Errorf("leadsimple session: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || session.SessionToken == "" {
		return nil, fmt.Errorf("leadsimple session: status %s", resp.Status())
	}

	var view map[string]any

	resp, err = c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+session.SessionToken).
		SetResult(&view).
		Get(board.ViewPath)
	if err != nil {
		return nil, fmt.Errorf("leadsimple view %s: %w", board.ViewPath, err)
	}
	if resp.StatusCode() != http.StatusOK {
		zlog.Logger.Warn().
			Str("board", board.Name).
			Str("status", resp.Status()).
			Msg("leadsimple view not readable, treating as empty")
		return nil, nil
	}

	cards := listAt(view, "cards", "items", "data")

	tasks := make([]model.RawTask, 0, len(cards))
	for _, card := range cards {
		tasks = append(tasks, taskFromCard(card))
	}

	return tasks, nil
}

// taskFromCard extracts one kanban card. Each field tries the most
// specific key first, then looser ones, then the fallback literal.
func taskFromCard(card map[string]any) model.RawTask {
	contact := nestedAt(card, "contact")

	task := model.RawTask{
		SourceItemID:    stringAt(card, "", "id", "card_id", "key"),
		Title:           stringAt(card, defaultTitle, "title", "name", "summary"),
		Status:          stringAt(card, defaultStatus, "stage", "status", "column"),
		Description:     stringAt(card, "", "description", "notes", "body"),
		DueDate:         stringAt(card, "", "due_date", "due_on", "due"),
		AssignedTo:      stringAt(card, defaultAssignee, "assigned_to", "assignee"),
		PropertyAddress: stringAt(card, "", "property_address", "property", "address"),
		VendorName:      stringAt(card, "", "vendor_name", "vendor"),
		VendorContact:   stringAt(card, "", "vendor_phone", "vendor_email"),
		Extra:           card,
	}

	if contact != nil {
		task.OwnerName = stringAt(contact, "", "name", "full_name")
		task.OwnerContact = stringAt(contact, "", "phone", "email")
	}
	if task.OwnerName == "" {
		task.OwnerName = stringAt(card, "", "owner_name", "owner")
	}
	if task.OwnerContact == "" {
		task.OwnerContact = stringAt(card, "", "owner_phone", "owner_email")
	}

	return task
}
