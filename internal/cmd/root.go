package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lifeline/internal/app"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// NewRootCommand builds the lifeline command tree.
func NewRootCommand() *cobra.Command {
	var cfgFile string
	v := viper.New()
	defaults := app.NewConfig()

	root := &cobra.Command{
		Use:   "lifeline",
		Short: "Conway's Game of Life with live operator commands",
		Long: `lifeline steps a Game of Life board as fast as the display keeps up,
buffering frames between the simulation and the renderer.

Keys: S save the board, Q quit, N new random board, L toggle edge wrap,
R restart from the seed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./lifeline.yaml or $HOME/.config/lifeline/lifeline.yaml)")
	defaults.Bind(root.Flags())
	defaults.SetDefaults(v)

	root.AddCommand(newVersionCommand(), newBenchCommand())
	return root
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("lifeline")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lifeline")
	}

	v.SetEnvPrefix("LIFELINE")
	// LIFELINE_MUTATION_PERIOD for mutation.period
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lifeline version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lifeline %s\n", Version)
		},
	}
}
