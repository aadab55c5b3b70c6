// Package followup implements the ingestion run and the follow-up read
// paths. An ingestion run walks the configured boards sequentially,
// normalizes whatever each connector extracted, and upserts the result;
// a failing board or row is recorded in the run summary and never
// aborts the rest of the run.
package followup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/propflow/followup-notifier/internal/config"
	"github.com/propflow/followup-notifier/internal/connector"
	"github.com/propflow/followup-notifier/internal/model"
	"github.com/propflow/followup-notifier/internal/normalizer"
)

type followUpRepo interface {
	Upsert(ctx context.Context, f model.FollowUp) error
	GetFollowUpStatusByID(ctx context.Context, id string) (string, error)
	ListFollowUps(ctx context.Context) ([]model.FollowUp, error)
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// Service wires connectors, the normalizer, the repository, and the
// status cache. All dependencies are injected per construction; nothing
// lives at package scope.
type Service struct {
	connectors connector.Registry
	repo       followUpRepo
	cache      cache
	timeout    time.Duration
}

func NewService(connectors connector.Registry, repo followUpRepo, c cache, timeout time.Duration) *Service {
	return &Service{
		connectors: connectors,
		repo:       repo,
		cache:      c,
		timeout:    timeout,
	}
}

// Ingest runs one ingestion pass over the given boards. Boards are
// scraped sequentially, each under its own timeout; a board whose
// connector fails is logged into the summary and the run moves on. The
// returned summary is always complete, even when every board failed.
func (s *Service) Ingest(ctx context.Context, strategy retry.Strategy, boards []config.Board) model.IngestResult {
	result := model.IngestResult{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}

	for _, board := range boards {
		br := s.ingestBoard(ctx, strategy, board)

		result.Imported += br.Imported
		result.Skipped += br.Skipped
		result.Failed += br.Failed
		result.Boards = append(result.Boards, br)
	}

	zlog.Logger.Info().
		Str("run_id", result.RunID.String()).
		Int("boards", len(result.Boards)).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("ingestion run finished")

	return result
}

func (s *Service) ingestBoard(ctx context.Context, strategy retry.Strategy, board config.Board) model.BoardResult {
	br := model.BoardResult{Board: board.Name, Source: board.Source}

	conn, ok := s.connectors[board.Source]
	if !ok {
		br.Error = fmt.Sprintf("no connector for source %q", board.Source)
		zlog.Logger.Error().Str("board", board.Name).Str("source", board.Source).Msg("no connector for source")
		return br
	}

	boardCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raws, err := conn.Fetch(boardCtx, board)
	if err != nil {
		br.Error = err.Error()
		zlog.Logger.Error().Err(err).Str("board", board.Name).Msg("board scrape failed")
		return br
	}

	br.OK = true
	br.Fetched = len(raws)

	now := time.Now().UTC()

	for _, raw := range raws {
		f, err := normalizer.Normalize(raw, board, now)
		if err != nil {
			if errors.Is(err, normalizer.ErrNoSourceID) {
				br.Skipped++
				zlog.Logger.Warn().Str("board", board.Name).Str("title", raw.Title).Msg("skipping row without source id")
				continue
			}

			br.Failed++
			zlog.Logger.Error().Err(err).Str("board", board.Name).Msg("failed to normalize row")
			continue
		}

		if err := s.repo.Upsert(ctx, f); err != nil {
			br.Failed++
			zlog.Logger.Error().Err(err).Str("id", f.ID).Msg("failed to upsert follow-up")
			continue
		}

		br.Imported++

		if err := s.cache.SetWithRetry(ctx, strategy, f.ID, string(f.Status)); err != nil {
			zlog.Logger.Error().Err(err).Str("id", f.ID).Msg("failed to cache follow-up status")
		}
	}

	return br
}

// GetFollowUpStatusByID returns the lifecycle status of a follow-up,
// read through the cache.
func (s *Service) GetFollowUpStatusByID(ctx context.Context, strategy retry.Strategy, id string) (string, error) {
	status, err := s.cache.GetWithRetry(ctx, strategy, id)
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id).Msg("failed to get follow-up status from cache")
	}

	if err != nil {
		status, err = s.repo.GetFollowUpStatusByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("get follow-up status: %w", err)
		}

		if err := s.cache.SetWithRetry(ctx, strategy, id, status); err != nil {
			zlog.Logger.Error().Err(err).Str("id", id).Msg("failed to cache follow-up status")
		}
	}

	return status, nil
}

// ListFollowUps returns every follow-up in the store.
func (s *Service) ListFollowUps(ctx context.Context) ([]model.FollowUp, error) {
	followUps, err := s.repo.ListFollowUps(ctx)
	if err != nil {
		return nil, fmt.Errorf("list follow-ups: %w", err)
	}

	return followUps, nil
}
