package input

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownCommand is returned for an unrecognised command word
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBadArguments is returned when a command's arguments cannot be parsed
	ErrBadArguments = errors.New("bad arguments")
)

// Kind names a command
type Kind string

const (
	Toggle Kind = "toggle"
	Resize Kind = "resize"
	Random Kind = "random"
	Reset  Kind = "reset"
	Step   Kind = "step"
	Start  Kind = "start"
	Stop   Kind = "stop"
	Speed  Kind = "speed"
	Place  Kind = "place"
	Show   Kind = "show"
	Help   Kind = "help"
	Quit   Kind = "quit"
)

// argCounts holds the minimum and maximum argument count per command
var argCounts = map[Kind][2]int{
	Toggle: {2, 2},
	Resize: {0, 2},
	Random: {0, 1},
	Reset:  {0, 0},
	Step:   {0, 1},
	Start:  {0, 0},
	Stop:   {0, 0},
	Speed:  {1, 1},
	Place:  {3, 3},
	Show:   {0, 0},
	Help:   {0, 0},
	Quit:   {0, 0},
}

const usage = `commands:
  toggle <row> <col>          flip a cell
  resize [rows] [columns]     new empty grid, missing values keep the current size
  random [probability]        fill randomly (default 0.3)
  reset                       kill every cell
  step [n]                    advance n generations (default 1)
  start | stop                run or pause the simulation clock
  speed <ms>                  set the clock interval
  place <pattern> <row> <col> glider, blinker or block
  show                        redraw the grid
  quit`

// Command is one parsed input line
type Command struct {
	Kind Kind
	Args []string
}

// Parse splits a line into a command and checks its argument count
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.Wrap(ErrUnknownCommand, "[Parse] empty line")
	}

	cmd := Command{Kind: Kind(strings.ToLower(fields[0])), Args: fields[1:]}
	counts, ok := argCounts[cmd.Kind]
	if !ok {
		return Command{}, errors.Wrapf(ErrUnknownCommand, "[Parse] %q", fields[0])
	}
	if len(cmd.Args) < counts[0] || len(cmd.Args) > counts[1] {
		return Command{}, errors.Wrapf(ErrBadArguments, "[Parse] %s takes %d to %d arguments, got %d",
			cmd.Kind, counts[0], counts[1], len(cmd.Args))
	}
	return cmd, nil
}

// Int parses argument i as an integer
func (c Command) Int(i int) (int, error) {
	n, err := strconv.Atoi(c.Args[i])
	if err != nil {
		return 0, errors.Wrapf(ErrBadArguments, "[%s] argument %d: %q is not an integer", c.Kind, i+1, c.Args[i])
	}
	return n, nil
}

// Dimension parses argument i like a form field: a missing, non-numeric or zero
// value falls back to current.
func (c Command) Dimension(i, current int) int {
	if i >= len(c.Args) {
		return current
	}
	n, err := strconv.Atoi(c.Args[i])
	if err != nil || n == 0 {
		return current
	}
	return n
}
