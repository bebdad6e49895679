package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable prints one row per result.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "blender\titerations\ttotal ms\tmean ms\tstddev ms\tns/value\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.3f\t%.3f\t%.2f\t\n",
			r.Name, r.Iterations, float64(r.Total.Microseconds())/1000, r.MeanMs, r.StdDevMs, r.NsPerValue)
	}
	return tw.Flush()
}

// WriteDensity prints a density report.
func WriteDensity(w io.Writer, d DensityReport) error {
	ratio := 0.0
	if d.Expected > 0 {
		ratio = d.Mean / d.Expected
	}
	_, err := fmt.Fprintf(w, "density over %d squares of side %.0f: mean %.6g stddev %.3g expected %.6g (ratio %.4f)\n",
		d.Samples, d.Side, d.Mean, d.StdDev, d.Expected, ratio)
	return err
}
