package calibration

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func toLineItems(ms []Measurement, pick func(Measurement) float64) []opts.LineData {
	out := make([]opts.LineData, len(ms))
	for i, m := range ms {
		out[i] = opts.LineData{Value: pick(m)}
	}
	return out
}

// RenderChart writes an HTML line chart of the timings in r to w.
func RenderChart(w io.Writer, r Result) error {
	xLabels := make([]string, len(r.Measurements))
	for i, m := range r.Measurements {
		xLabels[i] = strconv.Itoa(m.Size)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Ring product time",
			Subtitle: fmt.Sprintf("threshold=%d", r.Threshold),
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "modpoly calibration", Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "n"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "µs"}),
	)
	line.SetXAxis(xLabels).
		AddSeries("direct", toLineItems(r.Measurements, func(m Measurement) float64 {
			return float64(m.Direct.Microseconds())
		})).
		AddSeries("fft", toLineItems(r.Measurements, func(m Measurement) float64 {
			return float64(m.FFT.Microseconds())
		}))

	if err := line.Render(w); err != nil {
		return fmt.Errorf("calibration: render chart: %w", err)
	}
	return nil
}
