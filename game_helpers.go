package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/lifegrid/clock"
	"github.com/sheikhrachel/lifegrid/input"
	"github.com/sheikhrachel/lifegrid/model"
	"github.com/sheikhrachel/lifegrid/utils"
)

type game struct {
	config   utils.Config
	engine   *model.Engine
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	out      io.Writer // locked by renderer
}

// initializeGame sets up the engine and its collaborators
func initializeGame(config utils.Config, out io.Writer) (*game, error) {
	opts := []model.Option{model.WithWorkers(config.Workers)}
	if config.UseMemoryPool {
		opts = append(opts, model.WithGridPool(model.NewGridPool()))
	}
	if config.Seed != 0 {
		opts = append(opts, model.WithSeed(config.Seed))
	}

	engine, err := model.NewEngine(config.Rows, config.Columns, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to create engine")
	}

	renderer := model.NewTerminalRenderer(out)
	return &game{
		config:   config,
		engine:   engine,
		renderer: renderer,
		stats:    utils.NewStats(),
		out:      renderer,
	}, nil
}

// seedInterestingPatterns fills the grid randomly and drops a few known patterns on top
func seedInterestingPatterns(engine *model.Engine, config utils.Config) error {
	if err := engine.Randomize(config.LiveProbability); err != nil {
		return errors.Wrap(err, "[seedInterestingPatterns] failed to randomize")
	}

	rows, columns := engine.Dimensions()
	if rows < 10 || columns < 10 {
		return nil
	}

	type placement struct {
		pattern  model.Pattern
		row, col int
	}
	placements := []placement{
		{model.Glider, 5, 5},
		{model.Blinker, rows / 4, columns / 4},
	}
	if rows >= 15 && columns >= 20 {
		placements = append(placements, placement{model.Glider, 5, columns - 8})
	}
	if columns >= 30 {
		placements = append(placements, placement{model.Blinker, 3 * rows / 4, 3 * columns / 4})
	}

	for _, p := range placements {
		if err := engine.Place(p.pattern, p.row, p.col); err != nil {
			return errors.Wrapf(err, "[seedInterestingPatterns] failed to place %s", p.pattern.Name)
		}
	}
	return nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(g *game) {
	rows, columns := g.engine.Dimensions()
	fmt.Fprintf(g.out, "Features: Memory Pool: %v, Workers: %d, Interval: %v\n",
		g.config.UseMemoryPool, g.config.Workers, g.config.Interval)
	fmt.Fprintf(g.out, "Grid: %dx%d | Initial living cells: %d\n",
		rows, columns, g.engine.Population())
	fmt.Fprintln(g.out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(g.out)
}

// updateGameState updates the stats and returns status information
func updateGameState(
	g *game,
	v *model.View,
	lastFrameTime time.Time,
) (int, float64, string, bool) {
	livingCells := v.Population()
	density := float64(livingCells) / float64(v.Rows()*v.Columns()) * 100

	// Update performance stats
	g.stats.Update(v.Generation(), livingCells, time.Since(lastFrameTime))

	isStagnant := g.engine.IsStagnant()

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// formatGameStatus builds the status header drawn above each frame
func formatGameStatus(
	g *game,
	v *model.View,
	livingCells int,
	density float64,
	status string,
	lastRestartGen int,
) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		v.Generation(), livingCells, density, status)
	fmt.Fprintf(&sb, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.Runtime().Seconds())

	if v.Generation() > lastRestartGen {
		fmt.Fprintf(&sb, "Generations since restart: %d\n", v.Generation()-lastRestartGen)
	}
	sb.WriteString("\n")
	return sb.String()
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if config.RefreshEvery > 0 && generation > 0 && generation%config.RefreshEvery == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// runAutoplay steps the engine on the clock, restarting it when it dies out or stalls
func runAutoplay(ctx context.Context, g *game) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := seedInterestingPatterns(g.engine, g.config); err != nil {
		return err
	}
	displayGameInfo(g)

	var (
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
	)

	onTick := func(v *model.View) {
		frameStart := time.Now()
		livingCells, density, status, isStagnant := updateGameState(g, v, lastFrameTime)
		lastFrameTime = frameStart

		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		g.renderer.Frame(formatGameStatus(g, v, livingCells, density, status, lastRestartGen), v)

		if g.config.MaxGenerations > 0 && v.Generation() >= g.config.MaxGenerations {
			fmt.Fprintf(g.out, "\n🏁 Reached maximum generations limit (%d)\n", g.config.MaxGenerations)
			cancel()
			return
		}

		shouldRestart, reason := checkRestartConditions(livingCells, stagnantCount, v.Generation(), g.config)
		if shouldRestart && g.config.AutoRestart {
			fmt.Fprintf(g.out, "🔄 Restarting due to %s...\n", reason)
			if err := seedInterestingPatterns(g.engine, g.config); err != nil {
				fmt.Fprintf(g.out, "restart failed: %v\n", err)
				cancel()
				return
			}
			lastRestartGen = v.Generation()
			stagnantCount = 0
		}
	}

	clk, err := clock.New(g.engine, g.config.Interval, onTick)
	if err != nil {
		return errors.Wrap(err, "[runAutoplay] failed to create clock")
	}
	return clk.Run(ctx)
}

// runInteractive reads commands from in while the clock runs on demand
func runInteractive(ctx context.Context, g *game, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clk, err := clock.New(g.engine, g.config.Interval, func(v *model.View) {
		g.renderer.Frame(fmt.Sprintf("Gen: %d | Living: %d\n", v.Generation(), v.Population()), v)
	})
	if err != nil {
		return errors.Wrap(err, "[runInteractive] failed to create clock")
	}

	session := input.NewSession(g.engine, clk, g.renderer, g.out)
	displayGameInfo(g)
	if _, err = session.Execute(ctx, "help"); err != nil {
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return session.Serve(egCtx, in)
	})
	eg.Go(func() error {
		<-egCtx.Done()
		clk.Stop()
		return nil
	})

	return eg.Wait()
}
