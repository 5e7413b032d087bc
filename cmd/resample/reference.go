package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"interpolation-preview/internal/algorithms"
	"interpolation-preview/internal/core"
	"interpolation-preview/internal/io"
	"interpolation-preview/internal/metrics"
	"interpolation-preview/internal/reference"
	"interpolation-preview/internal/resample"
)

func init() {
	referenceCmd.Flags().StringSliceVarP(&referenceResizers, `resizer`, `r`, nil,
		`library resizers to compare against (default all)`)
	addKernelFlags(referenceCmd)
	rootCmd.AddCommand(referenceCmd)
}

var referenceResizers []string

var referenceCmd = &cobra.Command{
	Use:   `reference <input>`,
	Short: `compare each algorithm with library resizers`,
	Long: `Magnify the input 2x with every algorithm and with library resizers
(nfnt/resize, bild, gift, imaging, rez, x/image/draw, OpenCV) and print how closely they agree.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(referenceFunc(cmd, args))
	},
}

func referenceFunc(cmd *cobra.Command, args []string) func() error {
	return func() error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		if err := applyKernelFlags(cmd, &e.cfg); err != nil {
			return err
		}

		names := referenceResizers
		if len(names) == 0 {
			names = reference.Names()
		}
		resizers := make([]reference.Resizer, 0, len(names))
		for _, name := range names {
			r, err := reference.Get(name)
			if err != nil {
				return errors.Wrap(err, 0)
			}
			resizers = append(resizers, r)
		}

		src, err := io.NewImageLoader(e.logger).Open(args[0])
		if err != nil {
			return errors.Wrap(err, 0)
		}

		view := core.DefaultViewState(e.cfg)
		outputs := make(map[string]*resample.Buffer)
		for _, id := range algorithms.Names() {
			out, err := algorithms.Apply(cmd.Context(), id, src, view.Params(id))
			if err != nil {
				return errors.Wrap(err, 0)
			}
			outputs[id] = out
		}

		eval := metrics.NewEvaluator()
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "resizer\talgorithm\tpsnr\tssim\tmax_abs_diff\n")
		for _, r := range resizers {
			ref, err := r.Upscale2x(src)
			if err != nil {
				e.logger.WithError(err).WithField(`resizer`, r.Name()).Warn(`Reference resizer failed`)
				continue
			}
			for _, id := range algorithms.Names() {
				m := eval.CalculateAll(ref, outputs[id])
				fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.4f\t%.0f\n",
					r.Name(), id, m[`psnr`], m[`ssim`], m[`max_abs_diff`])
			}
		}
		return tw.Flush()
	}
}
