package followup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/propflow/followup-notifier/internal/api/dto"
	"github.com/propflow/followup-notifier/internal/api/respond"
	"github.com/propflow/followup-notifier/internal/config"
	"github.com/propflow/followup-notifier/internal/model"
	followuprepo "github.com/propflow/followup-notifier/internal/repository/followup"
)

type followUpService interface {
	Ingest(ctx context.Context, strategy retry.Strategy, boards []config.Board) model.IngestResult
	GetFollowUpStatusByID(ctx context.Context, strategy retry.Strategy, id string) (string, error)
	ListFollowUps(ctx context.Context) ([]model.FollowUp, error)
}

type sweepService interface {
	Sweep(ctx context.Context, now time.Time) (model.SweepResult, error)
}

type Handler struct {
	service    followUpService
	dispatcher sweepService
	validator  *validator.Validate
	cfg        *config.Config
}

func NewHandler(
	s followUpService,
	d sweepService,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, dispatcher: d, validator: v, cfg: cfg}
}

// Ingest triggers one ingestion run. The response is 200 with the run
// summary even when boards failed or zero rows were found; per-board
// failures are health signal, not request failure.
func (h *Handler) Ingest(c *ginext.Context) {
	var req dto.IngestRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	boards := h.selectBoards(req.Boards)
	if len(boards) == 0 {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("no matching boards configured"))
		return
	}

	result := h.service.Ingest(c.Request.Context(), h.cfg.Retry, boards)

	respond.OK(c.Writer, result)
}

// Sweep triggers one reminder sweep outside the fixed cadence. Only a
// repository-level failure is a 500; per-entity failures come back in
// the tally.
func (h *Handler) Sweep(c *ginext.Context) {
	result, err := h.dispatcher.Sweep(c.Request.Context(), time.Now().UTC())
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("sweep failed")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, result)
}

// List returns every follow-up in the store.
func (h *Handler) List(c *ginext.Context) {
	followUps, err := h.service.ListFollowUps(c.Request.Context())
	if err != nil {
		if errors.Is(err, followuprepo.ErrNoFollowUpsFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("no follow-ups found"))
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to list follow-ups")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, followUps)
}

// GetStatus returns the lifecycle status of one follow-up.
func (h *Handler) GetStatus(c *ginext.Context) {
	id := c.Param("id")
	if id == "" {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return
	}

	status, err := h.service.GetFollowUpStatusByID(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, followuprepo.ErrFollowUpNotFound) {
			zlog.Logger.Warn().Str("id", id).Err(err).Msg("follow-up not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("follow-up not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id).Msg("failed to get follow-up status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, status)
}

// selectBoards filters the configured boards down to the requested
// names; an empty request selects all of them.
func (h *Handler) selectBoards(names []string) []config.Board {
	if len(names) == 0 {
		return h.cfg.Boards
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	var boards []config.Board
	for _, b := range h.cfg.Boards {
		if _, ok := wanted[b.Name]; ok {
			boards = append(boards, b)
		}
	}

	return boards
}
