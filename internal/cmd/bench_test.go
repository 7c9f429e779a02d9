package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lifeline/internal/life"
)

func TestBenchmarkDeterministic(t *testing.T) {
	cfg := benchConfig{Width: 24, Height: 16, Generations: 20, Runs: 3, Workers: 2, Seed: 10}
	a, err := benchmark(cfg)
	if err != nil {
		t.Fatalf("benchmark: %v", err)
	}
	b, _ := benchmark(cfg)
	if len(a) != 3 {
		t.Fatalf("got %d results, want 3", len(a))
	}
	for i := range a {
		if a[i].Seed != cfg.Seed+int64(i) {
			t.Fatalf("result %d has seed %d", i, a[i].Seed)
		}
		if a[i].Generations != cfg.Generations {
			t.Fatalf("result %d stepped %d generations", i, a[i].Generations)
		}
		if a[i].Population != b[i].Population {
			t.Fatalf("seed %d population differs between runs", a[i].Seed)
		}
	}
}

func TestBenchmarkInvalidBoard(t *testing.T) {
	_, err := benchmark(benchConfig{Width: 0, Height: 4, Generations: 1, Runs: 1, Workers: 1})
	var dimErr *life.InvalidDimensionsError
	if !errors.As(err, &dimErr) {
		t.Fatalf("err = %v, want *life.InvalidDimensionsError", err)
	}
}

func TestBenchCommandOutput(t *testing.T) {
	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"bench", "--width=8", "--height=8", "--generations=5", "--runs=2"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Board 8x8") || strings.Count(out, "seed ") != 2 {
		t.Fatalf("output = %q", out)
	}
}
