package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"interpolation-preview/internal/resample"
)

func init() {
	kernelsCmd.Flags().IntVarP(&kernelSamples, `samples`, `n`, 4, `samples per unit distance`)
	rootCmd.AddCommand(kernelsCmd)
}

var kernelSamples int

var kernelsCmd = &cobra.Command{
	Use:   `kernels`,
	Short: `print kernel weight tables`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(kernelsFunc(cmd))
	},
}

type namedKernel struct {
	name string
	k    resample.Kernel
}

func kernelsFunc(cmd *cobra.Command) func() error {
	return func() error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		if kernelSamples < 1 {
			return errors.Errorf(`samples must be positive: %d`, kernelSamples)
		}
		kernels := []namedKernel{
			{`box`, resample.Box{}},
			{`mitchell`, resample.MitchellNetravali{B: e.cfg.Mitchell.B, C: e.cfg.Mitchell.C}},
			{`bspline`, resample.CubicBSpline{}},
			{`lanczos`, resample.Lanczos{A: e.cfg.Lanczos.A}},
		}
		writeKernelTable(cmd.OutOrStdout(), kernels, kernelSamples)
		return nil
	}
}

func writeKernelTable(w io.Writer, kernels []namedKernel, samples int) {
	support := 0
	for _, nk := range kernels {
		support = max(support, nk.k.Support())
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "x\t")
	for _, nk := range kernels {
		fmt.Fprintf(tw, "%s\t", nk.name)
	}
	fmt.Fprintln(tw)
	for i := -support * samples; i <= support*samples; i++ {
		x := float64(i) / float64(samples)
		fmt.Fprintf(tw, "%.3f\t", x)
		for _, nk := range kernels {
			fmt.Fprintf(tw, "%.5f\t", nk.k.Weight(x))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
