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

// AppFolio is the connector for AppFolio-style task lists. It performs
// a credential login for a session token, then reads the rows of a
// saved task view. Rows arrive as cell maps keyed by column name.
type AppFolio struct {
	cfg    config.AppFolio
	client *resty.Client
}

// NewAppFolio creates an AppFolio connector bounded by the given
// request timeout.
func NewAppFolio(cfg config.AppFolio, timeout time.Duration) *AppFolio {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &AppFolio{cfg: cfg, client: client}
}

type appFolioSession struct {
	Token string `json:"token"`
}

// Fetch logs in with the configured credentials and extracts the rows
// of the board's saved view. Zero rows and unreadable views are silent
// empty results; only a failed login or unreachable host is an error.
func (c *AppFolio) Fetch(ctx context.Context, board config.Board) ([]model.RawTask, error) {
	var session appFolioSession

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": c.cfg.Email, "password": c.cfg.Password}).
		SetResult(&session).
		Post("/api/sessions")
	if err != nil {
		return nil, fmt.Errorf("appfolio session: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || session.Token == "" {
		return nil, fmt.Errorf("appfolio session: status %s", resp.Status())
	}

	var view map[string]any

	resp, err = c.client.R().
		SetContext(ctx).
		SetHeader("X-Session-Token", session.Token).
		SetResult(&view).
		Get(board.ViewPath)
	if err != nil {
		return nil, fmt.Errorf("appfolio view %s: %w", board.ViewPath, err)
	}
	if resp.StatusCode() != http.StatusOK {
		zlog.Logger.Warn().
			Str("board", board.Name).
			Str("status", resp.Status()).
			Msg("appfolio view not readable, treating as empty")
		return nil, nil
	}

	rows := listAt(view, "rows", "tasks", "results")

	tasks := make([]model.RawTask, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, taskFromRow(row))
	}

	return tasks, nil
}

// taskFromRow extracts one task-list row. Cell values may sit on the
// row itself or under a "cells" object depending on the view version.
func taskFromRow(row map[string]any) model.RawTask {
	cells := nestedAt(row, "cells")
	if cells == nil {
		cells = row
	}

	return model.RawTask{
		SourceItemID:    stringAt(row, "", "id", "task_id", "number"),
		Title:           stringAt(cells, defaultTitle, "task", "title", "subject"),
		Status:          stringAt(cells, defaultStatus, "status", "state"),
		Description:     stringAt(cells, "", "details", "description", "memo"),
		DueDate:         stringAt(cells, "", "due_date", "deadline", "due"),
		AssignedTo:      stringAt(cells, defaultAssignee, "assigned_to", "assignee"),
		PropertyAddress: stringAt(cells, "", "property_address", "unit_address", "property"),
		WorkOrderID:     stringAt(cells, "", "work_order_id", "work_order"),
		VendorName:      stringAt(cells, "", "vendor_name", "vendor"),
		VendorContact:   stringAt(cells, "", "vendor_phone", "vendor_email"),
		OwnerName:       stringAt(cells, "", "owner_name", "owner"),
		OwnerContact:    stringAt(cells, "", "owner_phone", "owner_email"),
		Extra:           row,
	}
}
