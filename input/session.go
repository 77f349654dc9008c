package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/model"
)

// Engine is the part of *model.Engine a session drives
type Engine interface {
	Dimensions() (rows, columns int)
	Grid() *model.View
	ToggleCell(row, col int) error
	Resize(rows, columns int) error
	Randomize(p float64) error
	Reset()
	Step() *model.View
	Place(pattern model.Pattern, row, col int) error
}

// Clock is the part of *clock.Clock a session drives
type Clock interface {
	Start(ctx context.Context)
	Stop()
	Running() bool
	SetInterval(d time.Duration) error
}

// maxIntervalMillis is the longest interval in milliseconds a time.Duration can hold
const maxIntervalMillis = math.MaxInt64 / int64(time.Millisecond)

// Session applies text commands to an engine and redraws after each mutation.
// Prompts and errors go to out, which must share the renderer's lock when a
// running clock also draws (a *model.TerminalRenderer serves as both).
type Session struct {
	engine   Engine
	clock    Clock
	renderer model.Renderer
	out      io.Writer
}

func NewSession(engine Engine, clock Clock, renderer model.Renderer, out io.Writer) *Session {
	return &Session{engine: engine, clock: clock, renderer: renderer, out: out}
}

// Serve executes lines from r until quit, EOF or ctx is done. Command errors
// are reported to the output and do not end the session.
func (s *Session) Serve(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprint(s.out, "> ")
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return errors.Wrap(err, "[Serve] failed to read commands")
				default:
					return nil
				}
			}
			if strings.TrimSpace(line) == "" {
				fmt.Fprint(s.out, "> ")
				continue
			}
			quit, err := s.Execute(ctx, line)
			if err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			fmt.Fprint(s.out, "> ")
		}
	}
}

// Execute runs a single command line. quit reports that the user asked to leave.
func (s *Session) Execute(ctx context.Context, line string) (quit bool, err error) {
	cmd, err := Parse(line)
	if err != nil {
		return false, err
	}

	switch cmd.Kind {
	case Toggle:
		row, err := cmd.Int(0)
		if err != nil {
			return false, err
		}
		col, err := cmd.Int(1)
		if err != nil {
			return false, err
		}
		if err = s.engine.ToggleCell(row, col); err != nil {
			return false, err
		}
	case Resize:
		rows, columns := s.engine.Dimensions()
		if err = s.engine.Resize(cmd.Dimension(0, rows), cmd.Dimension(1, columns)); err != nil {
			return false, err
		}
	case Random:
		p := model.DefaultLiveProbability
		if len(cmd.Args) == 1 {
			if p, err = strconv.ParseFloat(cmd.Args[0], 64); err != nil {
				return false, errors.Wrapf(ErrBadArguments, "[random] %q is not a probability", cmd.Args[0])
			}
		}
		if err = s.engine.Randomize(p); err != nil {
			return false, err
		}
	case Reset:
		s.engine.Reset()
	case Step:
		n := 1
		if len(cmd.Args) == 1 {
			if n, err = cmd.Int(0); err != nil {
				return false, err
			}
		}
		for i := range n {
			if err = ctx.Err(); err != nil {
				return false, errors.Wrapf(err, "[step] interrupted after %d of %d generations", i, n)
			}
			s.engine.Step()
		}
	case Start:
		s.clock.Start(ctx)
		return false, nil
	case Stop:
		s.clock.Stop()
		return false, nil
	case Speed:
		ms, err := cmd.Int(0)
		if err != nil {
			return false, err
		}
		if int64(ms) > maxIntervalMillis {
			return false, errors.Wrapf(ErrBadArguments, "[speed] %d ms exceeds the longest interval", ms)
		}
		return false, s.clock.SetInterval(time.Duration(ms) * time.Millisecond)
	case Place:
		pattern, ok := model.Patterns[strings.ToLower(cmd.Args[0])]
		if !ok {
			return false, errors.Wrapf(ErrBadArguments, "[place] unknown pattern %q", cmd.Args[0])
		}
		row, err := cmd.Int(1)
		if err != nil {
			return false, err
		}
		col, err := cmd.Int(2)
		if err != nil {
			return false, err
		}
		if err = s.engine.Place(pattern, row, col); err != nil {
			return false, err
		}
	case Show:
	case Help:
		fmt.Fprintln(s.out, usage)
		return false, nil
	case Quit:
		s.clock.Stop()
		return true, nil
	}

	s.redraw()
	return false, nil
}

func (s *Session) redraw() {
	v := s.engine.Grid()
	header := fmt.Sprintf("Gen: %d | Grid: %dx%d | Living: %d | Running: %v\n",
		v.Generation(), v.Rows(), v.Columns(), v.Population(), s.clock.Running())
	s.renderer.Frame(header, v)
}
