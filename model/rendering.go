package model

import (
	"fmt"
	"io"
	"sync"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClear = "\033[H\033[2J"
)

// Renderer draws a generation snapshot
type Renderer interface {
	// Frame clears the screen and draws header followed by v as one unit
	Frame(header string, v *View)
}

// TerminalRenderer implements basic terminal rendering. Every write, including
// text written through it as an io.Writer, holds one lock, so frames drawn from
// the clock and from the command reader never interleave.
type TerminalRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: out}
}

// Write writes p to the terminal between frames
func (r *TerminalRenderer) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out.Write(p)
}

// Frame clears the screen, then prints header and the snapshot
func (r *TerminalRenderer) Frame(header string, v *View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprint(r.out, ansiClear)
	fmt.Fprint(r.out, header)
	r.display(v)
}

// Display renders the snapshot to the terminal
func (r *TerminalRenderer) Display(v *View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.display(v)
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, ansiClear)
}

func (r *TerminalRenderer) display(v *View) {
	for y := range v.Rows() {
		for x := range v.Columns() {
			if v.Alive(y, x) {
				fmt.Fprint(r.out, gridPosBlock)
			} else {
				fmt.Fprint(r.out, gridPosEmpty)
			}
		}
		fmt.Fprintln(r.out)
	}
}
