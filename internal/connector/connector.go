// Package connector implements the board connectors: clients that log
// in to an external task-tracking surface, fetch one saved view, and
// extract its rows into RawTask records.
//
// Extraction is deliberately tolerant. A field the source did not
// populate gets a fallback default instead of dropping the row, and a
// view with zero rows is a legitimate empty result, not an error. A
// connector returns an error only for true transport failure: it could
// not establish a session or reach the view at all.
package connector

import (
	"context"

	"github.com/propflow/followup-notifier/internal/config"
	"github.com/propflow/followup-notifier/internal/model"
)

// Connector fetches the raw tasks currently visible on one board. It
// must never mutate the external board.
type Connector interface {
	Fetch(ctx context.Context, board config.Board) ([]model.RawTask, error)
}

// Registry maps a board's source key to the connector serving it.
type Registry map[string]Connector

// NewRegistry builds the connector registry from configuration.
func NewRegistry(cfg config.Connectors) Registry {
	return Registry{
		"leadsimple": NewLeadSimple(cfg.LeadSimple, cfg.RequestTimeout),
		"appfolio":   NewAppFolio(cfg.AppFolio, cfg.RequestTimeout),
	}
}
