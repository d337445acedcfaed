package eda

import "context"

// Stage is one transformation step over a Frame. Process may mutate f in
// place or return a new frame; it must not advance the chain itself.
type Stage interface {
	Name() string
	Process(ctx context.Context, f *Frame) (*Frame, error)
}

// Unimplemented is embedded by stages to pick up the abstract Process.
// Running it directly always fails with ErrNotImplemented.
type Unimplemented struct{}

func (Unimplemented) Name() string { return "unimplemented" }

func (Unimplemented) Process(context.Context, *Frame) (*Frame, error) {
	return nil, ErrNotImplemented
}

// Handler links a Stage to its successor.
type Handler struct {
	stage Stage
	next  *Handler
}

// NewHandler wraps s with an optional successor (nil ends the chain).
func NewHandler(s Stage, next *Handler) *Handler {
	return &Handler{stage: s, next: next}
}

// Chain links stages in order and returns the head, or nil for no stages.
func Chain(stages ...Stage) *Handler {
	var head *Handler
	for i := len(stages) - 1; i >= 0; i-- {
		head = NewHandler(stages[i], head)
	}
	return head
}

// Stage returns the wrapped stage.
func (h *Handler) Stage() Stage { return h.stage }

// Next returns the successor, or nil at the end of the chain.
func (h *Handler) Next() *Handler { return h.next }

// Handle processes f and hands the result to the successor, returning the
// table produced by the last stage.
func (h *Handler) Handle(ctx context.Context, f *Frame) (*Frame, error) {
	out, err := h.stage.Process(ctx, f)
	if err != nil {
		return nil, &StageError{Stage: h.stage.Name(), Err: err}
	}
	if out == nil {
		return nil, &StageError{Stage: h.stage.Name(), Err: ErrNilFrame}
	}
	if h.next != nil {
		return h.next.Handle(ctx, out)
	}
	return out, nil
}
