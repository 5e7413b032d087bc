// Command resample magnifies images 2x with the interpolation kernels and
// compares them against each other and against library resizers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"interpolation-preview/internal/config"
	"interpolation-preview/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:          "resample",
	Short:        "2x image magnification with classic interpolation kernels",
	Long:         "resample magnifies images 2x with pixel duplication, Mitchell-Netravali, cubic B-spline and Lanczos.",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
		os.Exit(1)
	},
}

var (
	debugFlag  bool
	configFlag string
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().BoolVar(&debugFlag, `debug`, false, `debug logging and error stack traces`)
	rootCmd.PersistentFlags().StringVar(&configFlag, `config`, ``, `TOML configuration file`)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// env is what every subcommand needs.
type env struct {
	cfg    config.Config
	logger *logrus.Logger
}

func loadEnv() (*env, error) {
	cfg := config.Default()
	if configFlag != `` {
		loaded, err := config.Load(configFlag)
		if err != nil {
			return nil, errors.Wrap(err, 0)
		}
		cfg = loaded
	}
	return &env{cfg: cfg, logger: logging.New(os.Stderr, cfg.Log, debugFlag)}, nil
}

func run(fn func() error) {
	var err error
	if fn == nil {
		err = errors.New(`nil command function`)
	} else {
		err = fn()
	}
	if err != nil {
		if stackFramer, ok := err.(interface{ ErrorStack() string }); debugFlag && ok {
			fmt.Fprintln(os.Stderr, stackFramer.ErrorStack())
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}
