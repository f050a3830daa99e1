package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogobitcoin/gogobitcoin/internal/candle"
	"github.com/gogobitcoin/gogobitcoin/internal/model"
)

const historyErrorMessage = "Failed to fetch historical data. Please try again later."

// historyFetchedMsg carries the one-shot history result for a mount session.
type historyFetchedMsg struct {
	mount uint64
	bars  []model.OHLCBar
	err   error
}

// chartInstance is the live chart the widget owns. At most one exists at a
// time and its only allowed mutation is a width change.
type chartInstance interface {
	ApplyOptions(opts ...candle.Option)
	View() string
	Remove()
}

// chartFactory builds a fully loaded instance for a dataset.
type chartFactory func(opts candle.Options, bars []model.OHLCBar) chartInstance

// newCandleChart creates the chart, adds the candlestick series and loads
// the bars in one call. An empty dataset gets an empty series.
func newCandleChart(opts candle.Options, bars []model.OHLCBar) chartInstance {
	c := candle.New(opts)
	series := c.AddCandlestickSeries(candle.DefaultSeriesOptions(opts.Palette))
	if len(bars) > 0 {
		series.SetData(bars)
		c.TimeScale().FitContent()
	}
	return c
}

// chartKey identifies the (dataset, theme) an instance was built for.
type chartKey struct {
	data  uint64
	theme Theme
}

// ChartWidget fetches the history once per mount and keeps exactly one
// chart instance keyed by dataset and theme. A change of either destroys
// the instance before its replacement is built.
type ChartWidget struct {
	fetcher model.HistoryFetcher
	ctx     context.Context
	days    uint
	height  int
	build   chartFactory

	state   model.FetchState[[]model.OHLCBar]
	dataGen uint64

	mount   uint64
	mounted bool

	chart    chartInstance
	key      chartKey
	width    int
	onResize func(width int)
}

// NewChartWidget creates a widget that renders days of history at the
// given chart height.
func NewChartWidget(ctx context.Context, fetcher model.HistoryFetcher, days uint, height int) *ChartWidget {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ChartWidget{
		fetcher: fetcher,
		ctx:     ctx,
		days:    days,
		height:  height,
		build:   newCandleChart,
		state:   model.Loading[[]model.OHLCBar](),
	}
}

// Mount starts a new session and issues the single history fetch.
func (w *ChartWidget) Mount() tea.Cmd {
	w.mount++
	w.mounted = true
	w.teardown()
	w.state = model.Loading[[]model.OHLCBar]()

	mount := w.mount
	fetcher := w.fetcher
	ctx := w.ctx
	days := w.days
	return func() tea.Msg {
		bars, err := fetcher.FetchHistory(ctx, days)
		return historyFetchedMsg{mount: mount, bars: bars, err: err}
	}
}

// Unmount releases the instance and suppresses any late result.
func (w *ChartWidget) Unmount() {
	w.mounted = false
	w.teardown()
}

// State returns the current fetch state.
func (w *ChartWidget) State() model.FetchState[[]model.OHLCBar] { return w.state }

// HasInstance reports whether a live chart instance exists.
func (w *ChartWidget) HasInstance() bool { return w.chart != nil }

func (w *ChartWidget) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(historyFetchedMsg)
	if !ok || !w.mounted || m.mount != w.mount {
		return nil
	}
	if m.err != nil {
		slog.Error("history fetch failed", "error", m.err, "days", w.days)
		w.state = model.Failed[[]model.OHLCBar](historyErrorMessage)
		w.teardown()
		return nil
	}
	bars := m.bars
	if bars == nil {
		bars = []model.OHLCBar{}
	}
	w.state = model.Succeeded(bars)
	w.dataGen++
	return nil
}

// Sync reconciles the instance with the current dataset, theme and width.
func (w *ChartWidget) Sync(theme Theme, width int) {
	if !w.state.IsSuccess() {
		w.teardown()
		return
	}
	if width <= 0 {
		return
	}

	key := chartKey{data: w.dataGen, theme: theme}
	if w.chart != nil && w.key == key {
		if width != w.width {
			w.Resize(width)
		}
		return
	}

	w.teardown()

	w.chart = w.build(candle.Options{
		Width:       width,
		Height:      w.height,
		Palette:     theme.Palette(),
		TimeVisible: true,
	}, w.state.Value)
	w.key = key
	w.width = width

	chart := w.chart
	w.onResize = func(width int) {
		chart.ApplyOptions(candle.WithWidth(width))
		w.width = width
	}
}

// Resize forwards a container width change to the live instance, if any.
func (w *ChartWidget) Resize(width int) {
	if w.onResize != nil && width > 0 {
		w.onResize(width)
	}
}

// teardown clears the resize listener and releases the instance.
func (w *ChartWidget) teardown() {
	w.onResize = nil
	if w.chart != nil {
		w.chart.Remove()
		w.chart = nil
	}
	w.key = chartKey{}
	w.width = 0
}

// View renders the chart area at the given size.
func (w *ChartWidget) View(width int, st Styles) string {
	switch {
	case w.state.IsFailure():
		return st.Error.Render(w.state.Err)
	case w.state.IsLoading():
		return renderLoadingPlaceholder(width, w.height, st)
	case w.chart == nil:
		return ""
	default:
		return w.chart.View()
	}
}
