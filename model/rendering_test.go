package model

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestTerminalRenderer_Frame(t *testing.T) {
	e, err := NewEngine(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err = e.ToggleCell(0, 1); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	NewTerminalRenderer(out).Frame("Gen: 0\n", e.Grid())

	want := ansiClear + "Gen: 0\n" + gridPosEmpty + gridPosBlock + "\n" + gridPosEmpty + gridPosEmpty + "\n"
	if got := out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTerminalRenderer_ConcurrentFramesDoNotInterleave(t *testing.T) {
	e, err := NewEngine(3, 3, WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	if err = e.Randomize(0.5); err != nil {
		t.Fatal(err)
	}
	v := e.Grid()

	out := &bytes.Buffer{}
	r := NewTerminalRenderer(out)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				r.Frame(fmt.Sprintf("writer %d\n", i), v)
				fmt.Fprintf(r, "> ")
			}
		}()
	}
	wg.Wait()

	body := &bytes.Buffer{}
	NewTerminalRenderer(body).Display(v)

	frames := strings.Split(out.String(), ansiClear)[1:]
	if len(frames) != 200 {
		t.Fatalf("Expected 200 frames, got %d", len(frames))
	}
	for _, f := range frames {
		f = strings.TrimRight(f, "> ")
		header, grid, ok := strings.Cut(f, "\n")
		if !ok || !strings.HasPrefix(header, "writer ") || grid != body.String() {
			t.Fatalf("Expected a whole frame, got %q", f)
		}
	}
}
