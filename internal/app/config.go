package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"lifeline/internal/life"
	"lifeline/internal/pipeline"
)

// Frontend names accepted by Config.Frontend.
const (
	FrontendTerminal = "terminal"
	FrontendWindow   = "window"
)

// Fallback board size used when neither the config nor the terminal gives
// one.
const (
	DefaultWidth  = 60
	DefaultHeight = 20
)

// Config represents the runtime parameters for the application.
type Config struct {
	Width    int
	Height   int
	SeedFile string
	Seed     int64
	EdgeWrap bool

	Frontend       string
	Scale          int
	RenderInterval time.Duration
	MaxTPS         int
	QueueCapacity  int

	SaveDir  string
	LogFile  string
	LogLevel string

	Mutation life.MutationConfig
}

// NewConfig returns a Config populated with sensible defaults. Width and
// Height of zero size the board to the terminal.
func NewConfig() *Config {
	return &Config{
		Frontend:       FrontendTerminal,
		Scale:          8,
		RenderInterval: 50 * time.Millisecond,
		QueueCapacity:  pipeline.DefaultCapacity,
		LogLevel:       "INFO",
		Mutation:       life.DefaultMutation(),
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("board size %dx%d must not be negative", c.Width, c.Height))
	}
	if c.Frontend != FrontendTerminal && c.Frontend != FrontendWindow {
		errs = append(errs, fmt.Errorf("unknown frontend %q", c.Frontend))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %d", c.Scale))
	}
	if c.RenderInterval <= 0 {
		errs = append(errs, fmt.Errorf("render interval must be positive, got %s", c.RenderInterval))
	}
	if c.MaxTPS < 0 {
		errs = append(errs, fmt.Errorf("max tps must not be negative, got %d", c.MaxTPS))
	}
	if c.QueueCapacity <= 0 {
		errs = append(errs, fmt.Errorf("queue capacity must be positive, got %d", c.QueueCapacity))
	}
	if c.Mutation.Period <= 0 {
		errs = append(errs, fmt.Errorf("mutation period must be positive, got %d", c.Mutation.Period))
	}
	if c.Mutation.Chance < 0 || c.Mutation.Chance > 1 {
		errs = append(errs, fmt.Errorf("mutation chance must be within [0,1], got %g", c.Mutation.Chance))
	}
	return errors.Join(errs...)
}

// configKey ties a viper key to the flag that overrides it.
type configKey struct {
	key   string
	flag  string
	usage string
}

var configKeys = []configKey{
	{"width", "width", "board width in cells (0 sizes to the terminal)"},
	{"height", "height", "board height in cells (0 sizes to the terminal)"},
	{"seed_file", "seed-file", "seed file to load instead of a random board"},
	{"seed", "seed", "random seed for generated boards (0 uses the clock)"},
	{"edge_wrap", "edge-wrap", "start with toroidal edges"},
	{"frontend", "frontend", "display frontend: terminal or window"},
	{"scale", "scale", "pixel scale multiplier for the window frontend"},
	{"render_interval", "render-interval", "pause between render iterations"},
	{"max_tps", "max-tps", "cap on generations per second (0 is uncapped)"},
	{"queue_capacity", "queue-capacity", "frames buffered between simulation and rendering"},
	{"save_dir", "save-dir", "directory for saved seeds"},
	{"log_file", "log-file", "write JSON logs to this file"},
	{"log_level", "log-level", "log level: DEBUG, INFO, WARN or ERROR"},
	{"mutation.enabled", "mutate", "enable the stochastic birth-rule mutation"},
	{"mutation.period", "mutation-period", "generations between mutation draws"},
	{"mutation.chance", "mutation-chance", "probability that a mutation draw hits"},
}

// Bind attaches the configuration flags to fs using c as the defaults.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, usage("width"))
	fs.IntVar(&c.Height, "height", c.Height, usage("height"))
	fs.StringVar(&c.SeedFile, "seed-file", c.SeedFile, usage("seed_file"))
	fs.Int64Var(&c.Seed, "seed", c.Seed, usage("seed"))
	fs.BoolVar(&c.EdgeWrap, "edge-wrap", c.EdgeWrap, usage("edge_wrap"))
	fs.StringVar(&c.Frontend, "frontend", c.Frontend, usage("frontend"))
	fs.IntVar(&c.Scale, "scale", c.Scale, usage("scale"))
	fs.DurationVar(&c.RenderInterval, "render-interval", c.RenderInterval, usage("render_interval"))
	fs.IntVar(&c.MaxTPS, "max-tps", c.MaxTPS, usage("max_tps"))
	fs.IntVar(&c.QueueCapacity, "queue-capacity", c.QueueCapacity, usage("queue_capacity"))
	fs.StringVar(&c.SaveDir, "save-dir", c.SaveDir, usage("save_dir"))
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, usage("log_file"))
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, usage("log_level"))
	fs.BoolVar(&c.Mutation.Enabled, "mutate", c.Mutation.Enabled, usage("mutation.enabled"))
	fs.IntVar(&c.Mutation.Period, "mutation-period", c.Mutation.Period, usage("mutation.period"))
	fs.Float64Var(&c.Mutation.Chance, "mutation-chance", c.Mutation.Chance, usage("mutation.chance"))
}

func usage(key string) string {
	for _, k := range configKeys {
		if k.key == key {
			return k.usage
		}
	}
	return ""
}

// SetDefaults registers the defaults of c with v.
func (c *Config) SetDefaults(v *viper.Viper) {
	v.SetDefault("width", c.Width)
	v.SetDefault("height", c.Height)
	v.SetDefault("seed_file", c.SeedFile)
	v.SetDefault("seed", c.Seed)
	v.SetDefault("edge_wrap", c.EdgeWrap)
	v.SetDefault("frontend", c.Frontend)
	v.SetDefault("scale", c.Scale)
	v.SetDefault("render_interval", c.RenderInterval)
	v.SetDefault("max_tps", c.MaxTPS)
	v.SetDefault("queue_capacity", c.QueueCapacity)
	v.SetDefault("save_dir", c.SaveDir)
	v.SetDefault("log_file", c.LogFile)
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("mutation.enabled", c.Mutation.Enabled)
	v.SetDefault("mutation.period", c.Mutation.Period)
	v.SetDefault("mutation.chance", c.Mutation.Chance)
}

// BindFlags makes every flag in fs override its viper key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, k := range configKeys {
		f := fs.Lookup(k.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(k.key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", k.flag, err)
		}
	}
	return nil
}

// Load reads the effective configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{
		Width:          v.GetInt("width"),
		Height:         v.GetInt("height"),
		SeedFile:       v.GetString("seed_file"),
		Seed:           v.GetInt64("seed"),
		EdgeWrap:       v.GetBool("edge_wrap"),
		Frontend:       v.GetString("frontend"),
		Scale:          v.GetInt("scale"),
		RenderInterval: v.GetDuration("render_interval"),
		MaxTPS:         v.GetInt("max_tps"),
		QueueCapacity:  v.GetInt("queue_capacity"),
		SaveDir:        v.GetString("save_dir"),
		LogFile:        v.GetString("log_file"),
		LogLevel:       v.GetString("log_level"),
		Mutation: life.MutationConfig{
			Enabled: v.GetBool("mutation.enabled"),
			Period:  v.GetInt("mutation.period"),
			Chance:  v.GetFloat64("mutation.chance"),
		},
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// EngineOptions returns the engine options implied by c.
func (c *Config) EngineOptions() []life.Option {
	return []life.Option{life.WithEdgeWrap(c.EdgeWrap), life.WithMutation(c.Mutation)}
}
