package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhrachel/lifegrid/utils"
)

func main() {
	opts := newCLIOptions()
	opts.Bind(flag.CommandLine)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Printf("Using default configuration (%v)\n", err)
		config = utils.DefaultConfig()
	}
	opts.Apply(flag.CommandLine, &config)
	if err = config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, err := initializeGame(config, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if config.Interactive {
		err = runInteractive(ctx, g, os.Stdin)
	} else {
		err = runAutoplay(ctx, g)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("\n🛑 Shutting down gracefully...")
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		g.engine.Generation(), g.stats.Runtime().Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation)
}
