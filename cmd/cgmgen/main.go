// Command cgmgen generates synthetic CGM and insulin export files for
// development and testing.
package main

import (
	"flag"
	"fmt"
	"gluco-mcp/cmd/cgmgen/engine"
	"os"
	"time"
)

func main() {
	scenario := flag.String("scenario", "steady", "Scenario to generate: steady, variable, brittle")
	days := flag.Int("days", 30, "Number of days to generate")
	interval := flag.Int("interval", 5, "Minutes between glucose readings")
	out := flag.String("out", "./export.json", "Output file")
	seed := flag.Int64("seed", 0, "Random seed (0 uses the current time)")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:        *scenario,
		Days:            *days,
		IntervalMinutes: *interval,
		Seed:            *seed,
		Now:             time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (%d days, %d min interval) to %s...\n",
		cfg.Scenario, cfg.Days, cfg.IntervalMinutes, *out)

	file, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate export: %v\n", err)
		os.Exit(1)
	}
	if err := engine.Save(*out, file); err != nil {
		fmt.Printf("Failed to save export: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
