package main

import (
	"strings"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"interpolation-preview/internal/algorithms"
	"interpolation-preview/internal/config"
	"interpolation-preview/internal/core"
	"interpolation-preview/internal/io"
)

func init() {
	upscaleCmd.Flags().StringVarP(&upscaleAlgorithm, `algorithm`, `a`, algorithms.Mitchell,
		`one of `+strings.Join(algorithms.Names(), `, `))
	addKernelFlags(upscaleCmd)
	rootCmd.AddCommand(upscaleCmd)
}

var upscaleAlgorithm string

var upscaleCmd = &cobra.Command{
	Use:   `upscale <input> <output>`,
	Short: `magnify an image 2x with one algorithm`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(upscaleFunc(cmd, args))
	},
}

func upscaleFunc(cmd *cobra.Command, args []string) func() error {
	return func() error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		if err := applyKernelFlags(cmd, &e.cfg); err != nil {
			return err
		}
		if !algorithms.IsValidAlgorithm(upscaleAlgorithm) {
			return errors.Errorf(`%w: %s`, algorithms.ErrUnknownAlgorithm, upscaleAlgorithm)
		}

		loader := io.NewImageLoader(e.logger)
		src, err := loader.Open(args[0])
		if err != nil {
			return errors.Wrap(err, 0)
		}

		params := core.DefaultViewState(e.cfg).Params(upscaleAlgorithm)
		out, err := algorithms.Apply(cmd.Context(), upscaleAlgorithm, src, params)
		if err != nil {
			return errors.Wrap(err, 0)
		}
		if err := loader.Write(out, args[1]); err != nil {
			return errors.Wrap(err, 0)
		}

		e.logger.WithFields(logrus.Fields{
			`algorithm`: upscaleAlgorithm,
			`input`:     src.String(),
			`output`:    out.String(),
		}).Info(`Upscaled`)
		return nil
	}
}

var (
	flagB, flagC float64
	flagA        int
	flagEdge     string
)

func addKernelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&flagB, `b`, 0, `Mitchell-Netravali B (default from config)`)
	cmd.Flags().Float64Var(&flagC, `c`, 0, `Mitchell-Netravali C (default from config)`)
	cmd.Flags().IntVar(&flagA, `lanczos-a`, 0, `Lanczos window radius (default from config)`)
	cmd.Flags().StringVar(&flagEdge, `edge`, ``, `edge handling: omit or clamp (default from config)`)
}

// applyKernelFlags overrides cfg with the flags the user set.
func applyKernelFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed(`b`) {
		cfg.Mitchell.B = flagB
	}
	if flags.Changed(`c`) {
		cfg.Mitchell.C = flagC
	}
	if flags.Changed(`lanczos-a`) {
		cfg.Lanczos.A = flagA
	}
	if flags.Changed(`edge`) {
		cfg.Resample.Edge = flagEdge
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, 0)
	}
	return nil
}
