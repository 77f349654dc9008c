package input

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/model"
)

type fakeClock struct {
	running  bool
	starts   int
	interval time.Duration
}

func (c *fakeClock) Start(context.Context) { c.running = true; c.starts++ }
func (c *fakeClock) Stop()                 { c.running = false }
func (c *fakeClock) Running() bool         { return c.running }
func (c *fakeClock) SetInterval(d time.Duration) error {
	if d <= 0 {
		return errors.New("interval must be positive")
	}
	c.interval = d
	return nil
}

func newTestSession(t *testing.T) (*Session, *model.Engine, *fakeClock, *bytes.Buffer) {
	t.Helper()
	engine, err := model.NewEngine(6, 6, model.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	clk := &fakeClock{}
	out := &bytes.Buffer{}
	renderer := model.NewTerminalRenderer(out)
	return NewSession(engine, clk, renderer, renderer), engine, clk, out
}

func mustExecute(t *testing.T, s *Session, line string) {
	t.Helper()
	if _, err := s.Execute(context.Background(), line); err != nil {
		t.Fatalf("Execute(%q): %v", line, err)
	}
}

func TestSession_ToggleAndRedraw(t *testing.T) {
	s, engine, _, out := newTestSession(t)
	mustExecute(t, s, "toggle 2 3")

	if state, _ := engine.Cell(2, 3); state != model.Alive {
		t.Errorf("Expected (2, 3) alive, got %v", state)
	}
	if !strings.Contains(out.String(), "Living: 1") {
		t.Errorf("Expected redraw with status line, got %q", out.String())
	}
}

func TestSession_ToggleOutOfBounds(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	if _, err := s.Execute(context.Background(), "toggle 6 0"); !errors.Is(err, model.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}

func TestSession_ResizeFallsBack(t *testing.T) {
	s, engine, _, _ := newTestSession(t)
	mustExecute(t, s, "resize 10")
	if rows, columns := engine.Dimensions(); rows != 10 || columns != 6 {
		t.Errorf("Expected 10x6, got %dx%d", rows, columns)
	}
	mustExecute(t, s, "resize abc 12")
	if rows, columns := engine.Dimensions(); rows != 10 || columns != 12 {
		t.Errorf("Expected 10x12, got %dx%d", rows, columns)
	}
	if _, err := s.Execute(context.Background(), "resize -1 3"); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestSession_RandomResetStep(t *testing.T) {
	s, engine, _, _ := newTestSession(t)
	mustExecute(t, s, "random 1")
	if engine.Population() != 36 {
		t.Errorf("Expected full grid, got %d alive", engine.Population())
	}
	mustExecute(t, s, "reset")
	if engine.Population() != 0 {
		t.Errorf("Expected empty grid, got %d alive", engine.Population())
	}
	mustExecute(t, s, "step 3")
	if engine.Generation() != 3 {
		t.Errorf("Expected generation 3, got %d", engine.Generation())
	}
	if _, err := s.Execute(context.Background(), "random lots"); !errors.Is(err, ErrBadArguments) {
		t.Errorf("Expected ErrBadArguments, got %v", err)
	}
}

func TestSession_PlacePattern(t *testing.T) {
	s, engine, _, _ := newTestSession(t)
	mustExecute(t, s, "place block 0 0")
	if engine.Population() != 4 {
		t.Errorf("Expected block placed, got %d alive", engine.Population())
	}
	if _, err := s.Execute(context.Background(), "place spaceship 0 0"); !errors.Is(err, ErrBadArguments) {
		t.Errorf("Expected ErrBadArguments, got %v", err)
	}
}

func TestSession_ClockCommands(t *testing.T) {
	s, _, clk, _ := newTestSession(t)
	mustExecute(t, s, "start")
	if !clk.running {
		t.Error("Expected clock started")
	}
	mustExecute(t, s, "speed 250")
	if clk.interval != 250*time.Millisecond {
		t.Errorf("Expected 250ms interval, got %v", clk.interval)
	}
	mustExecute(t, s, "stop")
	if clk.running {
		t.Error("Expected clock stopped")
	}
}

func TestSession_Serve(t *testing.T) {
	s, engine, clk, out := newTestSession(t)
	clk.running = true

	in := strings.NewReader("toggle 0 0\n\nbogus\ntoggle 0 1\nquit\ntoggle 5 5\n")
	if err := s.Serve(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if engine.Population() != 2 {
		t.Errorf("Expected 2 cells toggled before quit, got %d", engine.Population())
	}
	if !strings.Contains(out.String(), "error: ") {
		t.Error("Expected unknown command reported")
	}
	if clk.running {
		t.Error("Expected quit to stop the clock")
	}
}

func TestSession_ServeEOF(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	if err := s.Serve(context.Background(), strings.NewReader("reset")); err != nil {
		t.Errorf("Expected nil at EOF, got %v", err)
	}
}

func TestSession_StepStopsOnCancel(t *testing.T) {
	s, engine, _, _ := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Execute(ctx, "step 1000000000")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if engine.Generation() != 0 {
		t.Errorf("Expected no generations after cancel, got %d", engine.Generation())
	}
}

func TestSession_SpeedRejectsOverflow(t *testing.T) {
	s, _, clk, _ := newTestSession(t)
	clk.interval = time.Second

	if _, err := s.Execute(context.Background(), "speed 9223372036855"); !errors.Is(err, ErrBadArguments) {
		t.Errorf("Expected ErrBadArguments, got %v", err)
	}
	if clk.interval != time.Second {
		t.Errorf("Expected interval unchanged, got %v", clk.interval)
	}

	mustExecute(t, s, "speed 9223372036854")
	if clk.interval != 9223372036854*time.Millisecond {
		t.Errorf("Expected longest representable interval, got %v", clk.interval)
	}
}
