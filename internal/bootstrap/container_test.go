package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"notecraft-be/internal/config"
	"notecraft-be/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingChangefeed struct{}

func (failingChangefeed) Start(ctx context.Context) error {
	return errors.New("stream unavailable")
}

type recordingEvents struct {
	service.IEventService
	detached bool
}

func (r *recordingEvents) DetachBus() {
	r.detached = true
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{
			Environment: "test",
			LogFilePath: filepath.Join(t.TempDir(), "app.log"),
		},
		Workspace: config.WorkspaceConfig{
			PersistTopic:   "WORKSPACE_CHANGED",
			SearchCacheTTL: time.Minute,
			RecentLimit:    5,
		},
	}
}

func TestContainerInMemory(t *testing.T) {
	c := NewContainer(nil, testConfig(t))
	t.Cleanup(c.Close)

	assert.Nil(t, c.ConsumerService)
	assert.Nil(t, c.ChangefeedService)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, c.Start(ctx))
	assert.Equal(t, 4, c.Store.Snapshot().Len())
}

func TestContainerDetachesBusWhenChangefeedFails(t *testing.T) {
	c := NewContainer(nil, testConfig(t))
	t.Cleanup(c.Close)

	recorder := &recordingEvents{}
	c.EventService = recorder
	c.ChangefeedService = failingChangefeed{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, c.Start(ctx))
	assert.True(t, recorder.detached)
}
