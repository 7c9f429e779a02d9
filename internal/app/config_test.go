package app

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := NewConfig().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	c := NewConfig()
	c.Frontend = "vr"
	c.QueueCapacity = 0
	c.Mutation.Chance = 2
	err := c.Validate()
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	for _, want := range []string{"frontend", "queue capacity", "mutation chance"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	cfg := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.Bind(fs)

	v := viper.New()
	cfg.SetDefaults(v)
	if err := BindFlags(v, fs); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := fs.Parse([]string{"--width=40", "--edge-wrap", "--render-interval=20ms", "--mutate", "--mutation-period=10"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width != 40 || !got.EdgeWrap || got.RenderInterval != 20*time.Millisecond {
		t.Fatalf("flags not applied: %+v", got)
	}
	if !got.Mutation.Enabled || got.Mutation.Period != 10 {
		t.Fatalf("mutation flags not applied: %+v", got.Mutation)
	}
	if got.QueueCapacity != 30 || got.Frontend != FrontendTerminal {
		t.Fatalf("defaults lost: %+v", got)
	}
}

func TestLoadReadsConfigValues(t *testing.T) {
	v := viper.New()
	NewConfig().SetDefaults(v)
	v.Set("frontend", FrontendWindow)
	v.Set("mutation.chance", 0.5)
	v.Set("save_dir", "saves")

	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Frontend != FrontendWindow || got.Mutation.Chance != 0.5 || got.SaveDir != "saves" {
		t.Fatalf("config values not applied: %+v", got)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	v := viper.New()
	NewConfig().SetDefaults(v)
	v.Set("scale", 0)
	if _, err := Load(v); err == nil {
		t.Fatal("Load accepted zero scale")
	}
}
