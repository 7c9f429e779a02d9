package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"lifeline/internal/app"
	"lifeline/internal/seed"
)

func TestVersionCommand(t *testing.T) {
	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(buf.String(), "lifeline dev") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--frontend=hologram"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "hologram") {
		t.Fatalf("err = %v, want frontend validation error", err)
	}
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "version"})
	if err := root.Execute(); err == nil {
		t.Fatal("missing explicit config file accepted")
	}
}

func TestConfigFileIsRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifeline.yaml")
	if err := os.WriteFile(path, []byte("frontend: hologram\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	root := NewRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--config", path})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "hologram") {
		t.Fatalf("err = %v, want the config file value to be validated", err)
	}
}

func TestBuildEngineRandom(t *testing.T) {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height, cfg.Seed, cfg.EdgeWrap = 12, 7, 5, true
	e, err := buildEngine(cfg, seed.NewStore(afero.NewMemMapFs(), ""), nil)
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	if s := e.Size(); s.W != 12 || s.H != 7 {
		t.Fatalf("size = %v", s)
	}
	if !e.EdgeWrap() {
		t.Fatal("edge wrap setting not applied")
	}
}

func TestBuildEngineFromSeedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "blinker.seed", []byte(`[[false,true,false],[false,true,false],[false,true,false]]`), 0o644)
	cfg := app.NewConfig()
	cfg.SeedFile = "blinker.seed"
	e, err := buildEngine(cfg, seed.NewStore(fs, ""), nil)
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	if got := e.Board().Population(); got != 3 {
		t.Fatalf("population = %d, want 3", got)
	}
}

func TestBuildEngineSeedLoadFailure(t *testing.T) {
	cfg := app.NewConfig()
	cfg.SeedFile = "nope.seed"
	_, err := buildEngine(cfg, seed.NewStore(afero.NewMemMapFs(), ""), nil)
	var loadErr *seed.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want *seed.LoadError", err)
	}
}

func TestBoardSize(t *testing.T) {
	terminal := func() (int, int, bool) { return 82, 24, true }
	noTerminal := func() (int, int, bool) { return 0, 0, false }

	tests := []struct {
		name     string
		frontend string
		w, h     int
		size     func() (int, int, bool)
		wantW    int
		wantH    int
	}{
		{"explicit", app.FrontendTerminal, 10, 5, terminal, 10, 5},
		{"fit terminal", app.FrontendTerminal, 0, 0, terminal, 40, 20},
		{"width only", app.FrontendTerminal, 30, 0, terminal, 30, 20},
		{"no terminal", app.FrontendTerminal, 0, 0, noTerminal, app.DefaultWidth, app.DefaultHeight},
		{"window", app.FrontendWindow, 0, 0, terminal, app.DefaultWidth, app.DefaultHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := app.NewConfig()
			cfg.Frontend, cfg.Width, cfg.Height = tt.frontend, tt.w, tt.h
			w, h := boardSize(cfg, tt.size)
			if w != tt.wantW || h != tt.wantH {
				t.Fatalf("boardSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
