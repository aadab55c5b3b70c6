package followup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	"github.com/propflow/followup-notifier/internal/config"
	"github.com/propflow/followup-notifier/internal/connector"
	"github.com/propflow/followup-notifier/internal/model"
)

// MockConnector is a mock implementation of the connector.Connector interface.
type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) Fetch(ctx context.Context, board config.Board) ([]model.RawTask, error) {
	args := m.Called(ctx, board)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RawTask), args.Error(1)
}

// MockRepo is a mock implementation of the followUpRepo interface.
type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Upsert(ctx context.Context, f model.FollowUp) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockRepo) GetFollowUpStatusByID(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockRepo) ListFollowUps(ctx context.Context) ([]model.FollowUp, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FollowUp), args.Error(1)
}

// MockCache is a mock implementation of the cache interface.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error {
	args := m.Called(ctx, strategy, key, value)
	return args.Error(0)
}

func (m *MockCache) GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error) {
	args := m.Called(ctx, strategy, key)
	return args.String(0), args.Error(1)
}

func rawTasks(ids ...string) []model.RawTask {
	tasks := make([]model.RawTask, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, model.RawTask{
			SourceItemID: id,
			Title:        "task " + id,
			Status:       "Open",
		})
	}
	return tasks
}

func TestIngest_BoardFailureTolerance(t *testing.T) {
	broken := new(MockConnector)
	healthy := new(MockConnector)
	repo := new(MockRepo)
	cache := new(MockCache)

	boards := []config.Board{
		{Name: "maintenance", Source: "appfolio", FollowUpType: "VENDOR_QUOTE"},
		{Name: "unit-turns", Source: "leadsimple", FollowUpType: "UNIT_TURN"},
	}

	broken.On("Fetch", mock.Anything, boards[0]).Return(nil, errors.New("appfolio session: status 503"))
	healthy.On("Fetch", mock.Anything, boards[1]).Return(rawTasks("1", "2", "3", "4"), nil)

	repo.On("Upsert", mock.Anything, mock.AnythingOfType("model.FollowUp")).Return(nil).Times(4)
	cache.On("SetWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	registry := connector.Registry{"appfolio": broken, "leadsimple": healthy}
	svc := NewService(registry, repo, cache, 5*time.Second)

	result := svc.Ingest(context.Background(), retry.Strategy{}, boards)

	// The failing board is reported, not fatal; the healthy board's
	// rows all land.
	require.Len(t, result.Boards, 2)
	assert.False(t, result.Boards[0].OK)
	assert.Contains(t, result.Boards[0].Error, "503")
	assert.True(t, result.Boards[1].OK)
	assert.Equal(t, 4, result.Boards[1].Imported)
	assert.Equal(t, 4, result.Imported)
	assert.Equal(t, 0, result.Failed)

	repo.AssertExpectations(t)
	broken.AssertExpectations(t)
	healthy.AssertExpectations(t)
}

func TestIngest_DeterministicIDsAcrossRuns(t *testing.T) {
	conn := new(MockConnector)
	repo := new(MockRepo)
	cache := new(MockCache)

	board := config.Board{Name: "maintenance", Source: "appfolio", FollowUpType: "VENDOR_QUOTE"}

	conn.On("Fetch", mock.Anything, board).Return(rawTasks("101"), nil)
	cache.On("SetWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var seen []string
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("model.FollowUp")).
		Run(func(args mock.Arguments) {
			seen = append(seen, args.Get(1).(model.FollowUp).ID)
		}).
		Return(nil)

	svc := NewService(connector.Registry{"appfolio": conn}, repo, cache, 5*time.Second)

	svc.Ingest(context.Background(), retry.Strategy{}, []config.Board{board})
	svc.Ingest(context.Background(), retry.Strategy{}, []config.Board{board})

	// Re-ingesting the same board row targets the same id both times,
	// so the second run is an upsert no-op, not a duplicate.
	require.Len(t, seen, 2)
	assert.Equal(t, "appfolio:maintenance:101", seen[0])
	assert.Equal(t, seen[0], seen[1])
}

func TestIngest_SkipsRowsWithoutSourceID(t *testing.T) {
	conn := new(MockConnector)
	repo := new(MockRepo)
	cache := new(MockCache)

	board := config.Board{Name: "unit-turns", Source: "leadsimple", FollowUpType: "UNIT_TURN"}

	tasks := rawTasks("1")
	tasks = append(tasks, model.RawTask{Title: "row with no id"})

	conn.On("Fetch", mock.Anything, board).Return(tasks, nil)
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("model.FollowUp")).Return(nil).Once()
	cache.On("SetWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewService(connector.Registry{"leadsimple": conn}, repo, cache, 5*time.Second)

	result := svc.Ingest(context.Background(), retry.Strategy{}, []config.Board{board})

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	repo.AssertExpectations(t)
}

func TestIngest_UpsertFailureIsPerRow(t *testing.T) {
	conn := new(MockConnector)
	repo := new(MockRepo)
	cache := new(MockCache)

	board := config.Board{Name: "maintenance", Source: "appfolio", FollowUpType: "VENDOR_QUOTE"}

	conn.On("Fetch", mock.Anything, board).Return(rawTasks("1", "2"), nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(f model.FollowUp) bool {
		return f.ID == "appfolio:maintenance:1"
	})).Return(errors.New("constraint violation"))
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(f model.FollowUp) bool {
		return f.ID == "appfolio:maintenance:2"
	})).Return(nil)
	cache.On("SetWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewService(connector.Registry{"appfolio": conn}, repo, cache, 5*time.Second)

	result := svc.Ingest(context.Background(), retry.Strategy{}, []config.Board{board})

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.Boards[0].OK)
}

func TestIngest_UnknownSource(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)

	svc := NewService(connector.Registry{}, repo, cache, 5*time.Second)

	result := svc.Ingest(context.Background(), retry.Strategy{}, []config.Board{
		{Name: "misc", Source: "trello"},
	})

	require.Len(t, result.Boards, 1)
	assert.False(t, result.Boards[0].OK)
	assert.Contains(t, result.Boards[0].Error, "no connector")
}

func TestGetFollowUpStatusByID_CacheMissFallsThrough(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)

	id := "appfolio:maintenance:101"
	strategy := retry.Strategy{Attempts: 1}

	cache.On("GetWithRetry", mock.Anything, strategy, id).Return("", redis.Nil)
	repo.On("GetFollowUpStatusByID", mock.Anything, id).Return("REMINDED", nil)
	cache.On("SetWithRetry", mock.Anything, strategy, id, "REMINDED").Return(nil)

	svc := NewService(connector.Registry{}, repo, cache, 5*time.Second)

	status, err := svc.GetFollowUpStatusByID(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.Equal(t, "REMINDED", status)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGetFollowUpStatusByID_CacheHit(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)

	id := "appfolio:maintenance:101"
	strategy := retry.Strategy{Attempts: 1}

	cache.On("GetWithRetry", mock.Anything, strategy, id).Return("PENDING", nil)

	svc := NewService(connector.Registry{}, repo, cache, 5*time.Second)

	status, err := svc.GetFollowUpStatusByID(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", status)

	repo.AssertNotCalled(t, "GetFollowUpStatusByID", mock.Anything, mock.Anything)
}
