package main

import (
	"io"
	"os"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oxygene76/vector3/pkg/utils"
)

// app carries the state shared by all commands of one invocation
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool

	config *utils.Config
	logger log.Logger
}

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "vector3",
		Short: "Evaluate 3D vector operations",
		Long: `Apply, measure and aggregate 3-component vectors from the command line,
and run small n-body integrations built on the same vector type.

Vectors are written as "x,y,z". Wrap vectors that start with a minus sign in
parentheses, "(-1,2,3)", or put them after "--".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(logOut)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.vector3/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("format", utils.FormatText, "output format: text, json, yaml or fixed")
	rootCmd.PersistentFlags().Int("precision", -1, "decimal places for text output (-1 for shortest exact)")
	_ = a.v.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
	_ = a.v.BindPFlag("output.precision", rootCmd.PersistentFlags().Lookup("precision"))

	rootCmd.AddCommand(
		applyCmd(a),
		opsCmd(a),
		measureCmd(a),
		centroidCmd(a),
		simulateCmd(a),
	)
	return rootCmd
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := utils.LoadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.config = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if a.verbose {
		level = zerolog.DebugLevel
	}
	opts := []log.Option{log.LevelOption(level), log.ColorOption(false)}
	if cfg.Log.JSON {
		opts = append(opts, log.OutputJSONOption())
	}
	a.logger = log.NewLogger(logOut, opts...)

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", "path", used)
	}
	return nil
}

func (a *app) printer(w io.Writer) *printer {
	return &printer{w: w, format: a.config.Output.Format, precision: a.config.Output.Precision}
}
