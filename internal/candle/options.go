package candle

import "github.com/charmbracelet/lipgloss"

// Palette holds constructor-time colors. Changing palettes means building a
// new chart; there is no way to repaint a live one.
type Palette struct {
	Background lipgloss.Color
	Text       lipgloss.Color
	Grid       lipgloss.Color
	Up         lipgloss.Color
	Down       lipgloss.Color
}

var (
	// LightPalette mirrors a white card: dark text, faint black grid.
	LightPalette = Palette{
		Background: lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#333333"),
		Grid:       lipgloss.Color("#e6e6e6"),
		Up:         lipgloss.Color("#26a69a"),
		Down:       lipgloss.Color("#ef5350"),
	}

	// DarkPalette mirrors a near-black card: white text, faint white grid.
	DarkPalette = Palette{
		Background: lipgloss.Color("#1a1a1a"),
		Text:       lipgloss.Color("#ffffff"),
		Grid:       lipgloss.Color("#313131"),
		Up:         lipgloss.Color("#26a69a"),
		Down:       lipgloss.Color("#ef5350"),
	}
)

const (
	defaultPriceAxisWidth = 10
	minWidth              = 12
	minHeight             = 3
)

// Options configures a chart at construction. Only Width may be changed
// afterwards, through ApplyOptions.
type Options struct {
	Width          int
	Height         int
	Palette        Palette
	PriceAxisWidth int
	TimeVisible    bool
}

// Option patches a live chart's options.
type Option func(*Options)

// WithWidth resizes the chart horizontally.
func WithWidth(width int) Option {
	return func(o *Options) {
		o.Width = width
	}
}

func (o Options) withDefaults() Options {
	if o.PriceAxisWidth <= 0 {
		o.PriceAxisWidth = defaultPriceAxisWidth
	}
	if o.Width < minWidth {
		o.Width = minWidth
	}
	if o.Height < minHeight {
		o.Height = minHeight
	}
	if o.Palette == (Palette{}) {
		o.Palette = LightPalette
	}
	return o
}

// SeriesOptions styles a candlestick series.
type SeriesOptions struct {
	UpColor       lipgloss.Color
	DownColor     lipgloss.Color
	WickUpColor   lipgloss.Color
	WickDownColor lipgloss.Color
	BorderVisible bool
}

// DefaultSeriesOptions colors candles and wicks from p.
func DefaultSeriesOptions(p Palette) SeriesOptions {
	return SeriesOptions{
		UpColor:       p.Up,
		DownColor:     p.Down,
		WickUpColor:   p.Up,
		WickDownColor: p.Down,
	}
}
