package cmd

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"lifeline/internal/life"
)

type benchConfig struct {
	Width       int
	Height      int
	Generations int
	Runs        int
	Workers     int
	Seed        int64
	EdgeWrap    bool
}

type benchResult struct {
	Seed        int64
	Generations int
	Elapsed     time.Duration
	Population  int
}

func (r benchResult) rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Generations) / r.Elapsed.Seconds()
}

func newBenchCommand() *cobra.Command {
	cfg := benchConfig{Width: 256, Height: 256, Generations: 500, Runs: 4, Workers: runtime.NumCPU(), Seed: 1}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Step random boards without a display and report throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := benchmark(cfg)
			if err != nil {
				return err
			}
			printBench(cmd.OutOrStdout(), cfg, results)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&cfg.Width, "width", cfg.Width, "board width in cells")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "board height in cells")
	fs.IntVar(&cfg.Generations, "generations", cfg.Generations, "generations to step per run")
	fs.IntVar(&cfg.Runs, "runs", cfg.Runs, "independent boards to step")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "runs stepped in parallel")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed of the first run; later runs add one each")
	fs.BoolVar(&cfg.EdgeWrap, "edge-wrap", cfg.EdgeWrap, "use toroidal edges")
	return cmd
}

// benchmark steps cfg.Runs boards, each from its own seed, and returns the
// results ordered by seed.
func benchmark(cfg benchConfig) ([]benchResult, error) {
	if cfg.Generations < 0 || cfg.Runs <= 0 {
		return nil, fmt.Errorf("bench: need at least one run and non-negative generations")
	}
	p := pool.NewWithResults[benchResult]().WithErrors().WithMaxGoroutines(max(cfg.Workers, 1))
	for i := 0; i < cfg.Runs; i++ {
		seed := cfg.Seed + int64(i)
		p.Go(func() (benchResult, error) {
			e, err := life.NewRandom(cfg.Width, cfg.Height, seed, life.WithEdgeWrap(cfg.EdgeWrap))
			if err != nil {
				return benchResult{}, err
			}
			start := time.Now()
			for g := 0; g < cfg.Generations; g++ {
				e.Step()
			}
			return benchResult{
				Seed:        seed,
				Generations: e.Generation(),
				Elapsed:     time.Since(start),
				Population:  e.Board().Population(),
			}, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Seed < results[j].Seed })
	return results, nil
}

func printBench(w io.Writer, cfg benchConfig, results []benchResult) {
	fmt.Fprintf(w, "Board %dx%d, %d generations per run, edge wrap %v\n", cfg.Width, cfg.Height, cfg.Generations, cfg.EdgeWrap)
	total := 0.0
	for _, r := range results {
		fmt.Fprintf(w, "  seed %d: %s (%.0f gen/s), final population %d\n", r.Seed, r.Elapsed.Round(time.Millisecond), r.rate(), r.Population)
		total += r.rate()
	}
	if len(results) > 0 {
		fmt.Fprintf(w, "Mean: %.0f gen/s\n", total/float64(len(results)))
	}
}
