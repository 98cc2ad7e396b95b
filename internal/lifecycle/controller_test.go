package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/page-downloader/internal/config"
	"github.com/ytget/page-downloader/internal/download"
	"github.com/ytget/page-downloader/internal/model"
)

// blockingRunner waits until stopped or cancelled
type blockingRunner struct {
	started chan struct{}
	// ignoreStop makes the runner wait for cancellation only
	ignoreStop bool

	mu        sync.Mutex
	job       model.Job
	cancelled bool
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{started: make(chan struct{}, 1)}
}

func (r *blockingRunner) Run(ctx context.Context, job model.Job, cfg model.RunConfig, stop download.StopSignal) model.RunResult {
	r.mu.Lock()
	r.job = job
	r.mu.Unlock()
	r.started <- struct{}{}

	result := model.RunResult{Total: len(job), Cancelled: true}
	stopCh := stop.Done()
	if r.ignoreStop {
		stopCh = nil
	}
	select {
	case <-stopCh:
	case <-ctx.Done():
		r.mu.Lock()
		r.cancelled = true
		r.mu.Unlock()
	}
	return result
}

// instantRunner succeeds on every address
type instantRunner struct{}

func (instantRunner) Run(ctx context.Context, job model.Job, cfg model.RunConfig, stop download.StopSignal) model.RunResult {
	return model.RunResult{Total: len(job), Succeeded: len(job), FailedURLs: []string{}}
}

type tagRecorder struct {
	mu  sync.Mutex
	ids []string
}

func (t *tagRecorder) SetRunID(id string) {
	t.mu.Lock()
	t.ids = append(t.ids, id)
	t.mu.Unlock()
}

func validRunConfig(t *testing.T) model.RunConfig {
	t.Helper()
	return model.RunConfig{
		DownloadDir:     t.TempDir(),
		Selector:        config.DefaultSelector,
		MaxRetries:      config.DefaultMaxRetries,
		Delay:           0,
		PageTimeout:     30 * time.Second,
		DownloadTimeout: 60 * time.Second,
		Engine:          model.EngineChromium,
		Driver:          model.DriverPlaywright,
	}
}

func waitDone(t *testing.T, c *Controller) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish")
	}
}

func TestStopFlag(t *testing.T) {
	flag := NewStopFlag()
	assert.False(t, flag.StopRequested())

	select {
	case <-flag.Done():
		t.Fatal("Done closed before Request")
	default:
	}

	flag.Request()
	flag.Request()
	assert.True(t, flag.StopRequested())
	<-flag.Done()
}

func TestStart_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		job     model.Job
		mutate  func(*model.RunConfig)
		wantErr error
	}{
		{"empty job", model.Job{}, nil, ErrEmptyJob},
		{"nil job", nil, nil, ErrEmptyJob},
		{"blank selector", model.Job{"https://example.com"}, func(c *model.RunConfig) { c.Selector = "  " }, ErrBlankSelector},
		{"blank destination", model.Job{"https://example.com"}, func(c *model.RunConfig) { c.DownloadDir = "" }, ErrBlankDestination},
		{"invalid config", model.Job{"https://example.com"}, func(c *model.RunConfig) { c.PageTimeout = 0 }, config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newBlockingRunner()
			c := NewController(runner)
			cfg := validRunConfig(t)
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			err := c.Start(tt.job, cfg)

			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, model.RunStateIdle, c.State())
			assert.Empty(t, runner.started)
		})
	}
}

func TestStartStop(t *testing.T) {
	runner := newBlockingRunner()

	var mu sync.Mutex
	var states []model.RunState
	finished := make(chan model.RunResult, 1)
	tagger := &tagRecorder{}

	c := NewController(runner,
		WithRunTagger(tagger),
		OnFinish(func(r model.RunResult) { finished <- r }),
		OnStateChange(func(s model.RunState) {
			mu.Lock()
			states = append(states, s)
			mu.Unlock()
		}),
	)

	job := model.Job{"https://example.com/a", "https://example.com/b"}
	require.NoError(t, c.Start(job, validRunConfig(t)))
	<-runner.started
	assert.Equal(t, model.RunStateRunning, c.State())

	// Only one run at a time
	assert.ErrorIs(t, c.Start(job, validRunConfig(t)), ErrAlreadyRunning)

	c.Stop()
	waitDone(t, c)

	result := <-finished
	assert.True(t, result.Cancelled)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, result, c.LastResult())
	assert.Equal(t, model.RunStateIdle, c.State())
	assert.False(t, runner.cancelled, "stop must not cancel the context")

	mu.Lock()
	assert.Equal(t, []model.RunState{model.RunStateRunning, model.RunStateStopping, model.RunStateIdle}, states)
	mu.Unlock()

	require.Len(t, tagger.ids, 1)
	assert.Contains(t, tagger.ids[0], "run-")
}

func TestStart_CopiesJob(t *testing.T) {
	runner := newBlockingRunner()
	c := NewController(runner)

	job := model.Job{"https://example.com/a"}
	require.NoError(t, c.Start(job, validRunConfig(t)))
	<-runner.started
	job[0] = "changed"

	runner.mu.Lock()
	assert.Equal(t, "https://example.com/a", runner.job[0])
	runner.mu.Unlock()

	c.Stop()
	waitDone(t, c)
}

func TestTerminate_CancelsContext(t *testing.T) {
	runner := newBlockingRunner()
	runner.ignoreStop = true
	c := NewController(runner)

	require.NoError(t, c.Start(model.Job{"https://example.com/a"}, validRunConfig(t)))
	<-runner.started

	c.Terminate()
	waitDone(t, c)

	runner.mu.Lock()
	assert.True(t, runner.cancelled)
	runner.mu.Unlock()
	assert.Equal(t, model.RunStateIdle, c.State())
}

func TestStopWhenIdle(t *testing.T) {
	c := NewController(instantRunner{})
	c.Stop()
	c.Terminate()
	assert.Equal(t, model.RunStateIdle, c.State())
	<-c.Done()
}

func TestRestartAfterFinish(t *testing.T) {
	finished := make(chan model.RunResult, 2)
	c := NewController(instantRunner{}, OnFinish(func(r model.RunResult) { finished <- r }))

	for i := 0; i < 2; i++ {
		require.NoError(t, c.Start(model.Job{"https://example.com/a", "https://example.com/b"}, validRunConfig(t)))
		result := <-finished
		waitDone(t, c)
		assert.Equal(t, 2, result.Succeeded)
	}
	assert.Equal(t, model.RunStateIdle, c.State())
}
