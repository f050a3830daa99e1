// Package candle draws daily candlestick charts on an ntcharts canvas.
//
// The API follows the shape of browser charting widgets: a chart is created
// with fixed styling, series are added to it and loaded in bulk, and the
// chart must be released with Remove before its container gets a new one.
package candle

import (
	"github.com/gogobitcoin/gogobitcoin/internal/model"
)

// Chart is one rendered chart instance.
type Chart struct {
	opts    Options
	series  []*Series
	scale   *TimeScale
	removed bool
}

// New creates a chart sized and styled by opts.
func New(opts Options) *Chart {
	c := &Chart{opts: opts.withDefaults()}
	c.scale = &TimeScale{}
	return c
}

// AddCandlestickSeries attaches an empty candlestick series.
func (c *Chart) AddCandlestickSeries(opts SeriesOptions) *Series {
	if opts == (SeriesOptions{}) {
		opts = DefaultSeriesOptions(c.opts.Palette)
	}
	s := &Series{opts: opts}
	c.series = append(c.series, s)
	return s
}

// TimeScale returns the chart's horizontal scale.
func (c *Chart) TimeScale() *TimeScale {
	return c.scale
}

// ApplyOptions patches the live chart. Palettes and height are fixed at
// construction; patching them has no effect.
func (c *Chart) ApplyOptions(opts ...Option) {
	if c.removed {
		return
	}
	patched := c.opts
	for _, opt := range opts {
		opt(&patched)
	}
	c.opts.Width = patched.Width
	c.opts = c.opts.withDefaults()
}

// Options returns the chart's effective options.
func (c *Chart) Options() Options {
	return c.opts
}

// Remove releases the chart. A removed chart renders nothing and ignores
// further option patches.
func (c *Chart) Remove() {
	c.removed = true
	c.series = nil
}

// Removed reports whether Remove has been called.
func (c *Chart) Removed() bool {
	return c.removed
}

// View renders the chart.
func (c *Chart) View() string {
	if c.removed {
		return ""
	}
	var bars []model.OHLCBar
	var opts SeriesOptions
	if len(c.series) > 0 {
		bars = c.series[0].bars
		opts = c.series[0].opts
	}
	return render(c.opts, opts, c.scale, bars)
}

// Series is a candlestick data series.
type Series struct {
	opts SeriesOptions
	bars []model.OHLCBar
}

// SetData replaces the series data in one step.
func (s *Series) SetData(bars []model.OHLCBar) {
	s.bars = append([]model.OHLCBar(nil), bars...)
}

// Data returns a copy of the series data.
func (s *Series) Data() []model.OHLCBar {
	return append([]model.OHLCBar(nil), s.bars...)
}

// Default spacing between candle columns before FitContent is applied.
const defaultBarSpacing = 2

// TimeScale maps bars onto columns.
type TimeScale struct {
	fit bool
}

// FitContent makes every loaded bar visible, shrinking bar spacing down to
// one column per bar. When even that overflows, the most recent bars win.
func (t *TimeScale) FitContent() {
	t.fit = true
}

// Fitted reports whether FitContent has been applied.
func (t *TimeScale) Fitted() bool {
	return t.fit
}

// visibleRange returns the half-open bar range [from, to) and the column
// spacing to draw n bars into columns.
func (t *TimeScale) visibleRange(n, columns int) (from, to, spacing int) {
	if n == 0 || columns <= 0 {
		return 0, 0, defaultBarSpacing
	}

	spacing = defaultBarSpacing
	if t.fit {
		spacing = columns / n
		if spacing < 1 {
			spacing = 1
		}
		if spacing > 4 {
			spacing = 4
		}
	}

	visible := columns / spacing
	if visible > n {
		visible = n
	}
	return n - visible, n, spacing
}
