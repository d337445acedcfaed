package eda

import (
	"context"
	"log/slog"
	"time"
)

// State is the lifecycle of a Pipeline.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Observer is told how long each stage took and whether it failed.
type Observer func(stage string, d time.Duration, err error)

// Pipeline composes a sequence of Stages into a Handler chain.
type Pipeline struct {
	steps    []Stage
	logger   *slog.Logger
	observer Observer
	state    State
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for stage progress.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithObserver registers a per-stage callback.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

func (p *Pipeline) Add(s Stage) *Pipeline {
	p.steps = append(p.steps, s)
	return p
}

// Stages returns the configured stages in run order.
func (p *Pipeline) Stages() []Stage { return p.steps }

func (p *Pipeline) State() State { return p.state }

// Run threads f through every stage in order and returns the last stage's
// table. A pipeline runs once; the first stage error aborts the run.
func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	if p.state != StateIdle {
		return nil, ErrAlreadyRun
	}
	p.state = StateRunning
	defer func() { p.state = StateDone }()

	wrapped := make([]Stage, len(p.steps))
	for i, s := range p.steps {
		wrapped[i] = &tracedStage{Stage: s, pos: i + 1, total: len(p.steps), logger: p.logger, observer: p.observer}
	}
	head := Chain(wrapped...)
	if head == nil {
		return f, nil
	}
	return head.Handle(ctx, f)
}

// tracedStage adds cancellation checks, progress logging and observation
// around a stage.
type tracedStage struct {
	Stage
	pos, total int
	logger     *slog.Logger
	observer   Observer
}

func (t *tracedStage) Process(ctx context.Context, f *Frame) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		t.logger.WarnContext(ctx, "pipeline cancelled", "stage", t.Name(), "reason", err)
		return nil, err
	}
	t.logger.InfoContext(ctx, "starting stage", "stage", t.Name(), "step", t.pos, "of", t.total)
	start := time.Now()
	out, err := t.Stage.Process(ctx, f)
	d := time.Since(start)
	if t.observer != nil {
		t.observer(t.Name(), d, err)
	}
	if err != nil {
		t.logger.ErrorContext(ctx, "stage failed", "stage", t.Name(), "error", err)
		return nil, err
	}
	t.logger.InfoContext(ctx, "stage completed", "stage", t.Name(), "duration", d)
	return out, nil
}
