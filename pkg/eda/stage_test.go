package eda

import (
	"context"
	"errors"
	"testing"
)

type abstractOnly struct{ Unimplemented }

type doubler struct{ Unimplemented }

func (doubler) Name() string { return "doubler" }

func (doubler) Process(_ context.Context, f *Frame) (*Frame, error) {
	col, _ := f.ColumnByName("n")
	c := col.(*IntColumn)
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Get(i); ok {
			c.Set(i, v*2)
		}
	}
	return f, nil
}

func intFrame(vals ...int64) *Frame {
	c := NewIntColumn("n", 0)
	for _, v := range vals {
		c.Append(v)
	}
	f, _ := FromColumns(c)
	return f
}

func TestUnimplementedProcessFails(t *testing.T) {
	_, err := abstractOnly{}.Process(context.Background(), intFrame(1))
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
	_, err = Chain(abstractOnly{}).Handle(context.Background(), intFrame(1))
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented through Handle, got %v", err)
	}
}

func TestHandleDelegatesToSuccessor(t *testing.T) {
	h := Chain(doubler{}, doubler{}, doubler{})
	out, err := h.Handle(context.Background(), intFrame(1, 3))
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.ColumnByName("n")
	if v, _ := col.(*IntColumn).Get(1); v != 24 {
		t.Fatalf("expected 24, got %d", v)
	}
}

func TestHandleWithoutSuccessor(t *testing.T) {
	h := NewHandler(doubler{}, nil)
	if h.Next() != nil {
		t.Fatal("expected end of chain")
	}
	out, err := h.Handle(context.Background(), intFrame(5))
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.ColumnByName("n")
	if v, _ := col.(*IntColumn).Get(0); v != 10 {
		t.Fatalf("expected 10, got %d", v)
	}
}

func TestChainEmpty(t *testing.T) {
	if Chain() != nil {
		t.Fatal("expected nil head for empty chain")
	}
}

type dropsTable struct{ Unimplemented }

func (dropsTable) Name() string { return "drops_table" }

func (dropsTable) Process(context.Context, *Frame) (*Frame, error) { return nil, nil }

func TestHandleRejectsNilTable(t *testing.T) {
	_, err := Chain(dropsTable{}, doubler{}).Handle(context.Background(), intFrame(1))
	if !errors.Is(err, ErrNilFrame) {
		t.Fatalf("expected ErrNilFrame, got %v", err)
	}
	var se *StageError
	if !errors.As(err, &se) || se.Stage != "drops_table" {
		t.Fatalf("expected stage error naming drops_table, got %#v", err)
	}
}
