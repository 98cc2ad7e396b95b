package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ytget/page-downloader/internal/config"
	"github.com/ytget/page-downloader/internal/download"
	"github.com/ytget/page-downloader/internal/model"
)

// Start rejections. Messages are shown to the operator as is.
var (
	ErrEmptyJob         = errors.New("please enter at least one URL")
	ErrBlankSelector    = errors.New("please enter a button selector")
	ErrBlankDestination = errors.New("please choose a download folder")
	ErrAlreadyRunning   = errors.New("a download is already in progress")
)

// RunTagger receives the identifier of each run before it starts
type RunTagger interface {
	SetRunID(id string)
}

// Controller runs at most one job at a time on a worker goroutine
type Controller struct {
	runner   download.Downloader
	logger   *slog.Logger
	tagger   RunTagger
	onFinish func(model.RunResult)
	onState  func(model.RunState)

	mu     sync.Mutex
	state  model.RunState
	stop   *StopFlag
	cancel context.CancelFunc
	done   chan struct{}
	last   model.RunResult
	runID  string
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithRunTagger registers a receiver for run identifiers
func WithRunTagger(tagger RunTagger) Option {
	return func(c *Controller) { c.tagger = tagger }
}

// OnFinish registers a callback invoked on the worker goroutine after each run
func OnFinish(fn func(model.RunResult)) Option {
	return func(c *Controller) { c.onFinish = fn }
}

// OnStateChange registers a callback invoked after every state transition,
// from the goroutine that caused it
func OnStateChange(fn func(model.RunState)) Option {
	return func(c *Controller) { c.onState = fn }
}

// NewController creates an idle controller
func NewController(runner download.Downloader, opts ...Option) *Controller {
	c := &Controller{
		runner: runner,
		logger: slog.Default(),
		state:  model.RunStateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}

	// A finished channel so Done never blocks before the first run
	c.done = make(chan struct{})
	close(c.done)
	return c
}

// Start validates the request and launches the run. A rejected start leaves
// the state unchanged.
func (c *Controller) Start(job model.Job, cfg model.RunConfig) error {
	if err := checkRequest(job, cfg); err != nil {
		return err
	}

	c.mu.Lock()
	if !c.state.CanStart() {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	stop := NewStopFlag()
	done := make(chan struct{})
	runID := model.NewRunID()

	c.stop = stop
	c.cancel = cancel
	c.done = done
	c.runID = runID
	c.state = model.RunStateRunning
	c.mu.Unlock()
	c.notify(model.RunStateRunning)

	if c.tagger != nil {
		c.tagger.SetRunID(runID)
	}
	c.logger.Info("run started", "run_id", runID, "urls", job.Len(), "driver", cfg.Driver, "engine", cfg.Engine)

	// Copy so later edits to the caller's slice do not reach the worker
	items := append(model.Job(nil), job...)
	go c.work(ctx, cancel, items, cfg, stop, done)
	return nil
}

func (c *Controller) work(ctx context.Context, cancel context.CancelFunc, job model.Job, cfg model.RunConfig, stop *StopFlag, done chan struct{}) {
	defer close(done)
	defer cancel()

	result := c.runner.Run(ctx, job, cfg, stop)

	c.mu.Lock()
	c.last = result
	c.stop = nil
	c.cancel = nil
	runID := c.runID
	c.state = model.RunStateIdle
	c.mu.Unlock()
	c.notify(model.RunStateIdle)

	c.logger.Info("run finished",
		"run_id", runID,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"cancelled", result.Cancelled,
		"fatal", result.Fatal,
	)

	if c.onFinish != nil {
		c.onFinish(result)
	}
}

// Stop requests a cooperative stop. The run ends at its next checkpoint;
// in-flight browser calls are not interrupted. Stop on an idle controller
// does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state != model.RunStateRunning || c.stop == nil {
		c.mu.Unlock()
		return
	}
	c.stop.Request()
	c.state = model.RunStateStopping
	runID := c.runID
	c.mu.Unlock()

	c.logger.Info("stop requested", "run_id", runID)
	c.notify(model.RunStateStopping)
}

// Terminate requests a stop and cancels the run context. Pending delays end
// at once and the rod driver abandons its in-flight call; a Playwright call
// already running finishes or times out on its own. Use it only when the
// application is closing.
func (c *Controller) Terminate() {
	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.logger.Warn("run terminated", "run_id", c.runID)
	}
}

// State returns the current run state
func (c *Controller) State() model.RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done returns a channel closed when the current or last run has finished
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// LastResult returns the tally of the most recent finished run
func (c *Controller) LastResult() model.RunResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Controller) notify(state model.RunState) {
	if c.onState != nil {
		c.onState(state)
	}
}

func checkRequest(job model.Job, cfg model.RunConfig) error {
	if job.IsEmpty() {
		return ErrEmptyJob
	}
	if strings.TrimSpace(cfg.Selector) == "" {
		return ErrBlankSelector
	}
	if strings.TrimSpace(cfg.DownloadDir) == "" {
		return ErrBlankDestination
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("cannot start: %w", err)
	}
	return nil
}
