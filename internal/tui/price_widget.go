package tui

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gogobitcoin/gogobitcoin/internal/model"
	"github.com/gogobitcoin/gogobitcoin/internal/schedule"
)

const priceErrorMessage = "Failed to fetch Bitcoin price. Please try again later."

// priceFetchedMsg carries one resolved price request. mount identifies the
// mount session that issued it.
type priceFetchedMsg struct {
	mount uint64
	price model.PricePoint
	err   error
}

// PriceWidget polls the spot price on a fixed interval and renders the
// latest outcome. Whichever request resolves last wins; nothing guards
// against an older request overwriting a newer one.
type PriceWidget struct {
	fetcher model.PriceFetcher
	ctx     context.Context
	task    *schedule.Task

	state    model.FetchState[model.PricePoint]
	last     model.PricePoint
	hasValue bool
	// errMsg outlives later attempts and is cleared only by a success.
	errMsg string

	mount   uint64
	mounted bool
}

// NewPriceWidget creates a widget that polls through task. A nil task
// fetches once per mount and never polls.
func NewPriceWidget(ctx context.Context, fetcher model.PriceFetcher, task *schedule.Task) *PriceWidget {
	if ctx == nil {
		ctx = context.Background()
	}
	return &PriceWidget{
		fetcher: fetcher,
		ctx:     ctx,
		task:    task,
		state:   model.Loading[model.PricePoint](),
	}
}

// Mount begins a new session: starts polling and issues the first fetch.
func (w *PriceWidget) Mount() tea.Cmd {
	w.mount++
	w.mounted = true
	w.errMsg = ""
	if w.task != nil {
		if err := w.task.Start(); err != nil {
			slog.Warn("price polling not started", "error", err)
		}
	}
	return w.fetch()
}

// Unmount stops polling. Results still in flight are discarded on arrival.
func (w *PriceWidget) Unmount() {
	w.mounted = false
	if w.task != nil {
		w.task.Stop()
	}
}

// Mounted reports whether the widget is in a live session.
func (w *PriceWidget) Mounted() bool { return w.mounted }

// State returns the current fetch state.
func (w *PriceWidget) State() model.FetchState[model.PricePoint] { return w.state }

// Last returns the most recent successfully fetched price.
func (w *PriceWidget) Last() (model.PricePoint, bool) { return w.last, w.hasValue }

// Owns reports whether f belongs to this widget's polling task.
func (w *PriceWidget) Owns(f schedule.Fire) bool {
	return w.task != nil && w.task.Owns(f)
}

func (w *PriceWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case schedule.Fire:
		if !w.mounted || !w.Owns(msg) {
			return nil
		}
		return w.fetch()
	case priceFetchedMsg:
		if !w.mounted || msg.mount != w.mount {
			return nil
		}
		if msg.err != nil {
			slog.Error("price fetch failed", "error", msg.err)
			w.state = model.Failed[model.PricePoint](priceErrorMessage)
			w.errMsg = priceErrorMessage
			return nil
		}
		w.last = msg.price
		w.hasValue = true
		w.errMsg = ""
		w.state = model.Succeeded(msg.price)
	}
	return nil
}

// fetch marks the widget loading and returns the request command.
func (w *PriceWidget) fetch() tea.Cmd {
	w.state = model.Loading[model.PricePoint]()
	mount := w.mount
	fetcher := w.fetcher
	ctx := w.ctx
	return func() tea.Msg {
		p, err := fetcher.FetchPrice(ctx)
		return priceFetchedMsg{mount: mount, price: p, err: err}
	}
}

// ShowsPlaceholder reports whether the widget renders the loading placeholder.
func (w *PriceWidget) ShowsPlaceholder() bool {
	return w.errMsg == "" && !w.hasValue
}

// View renders the price block. A failure shows only the error until a
// later fetch succeeds, even while retries are in flight. Before the first
// success it shows a loading placeholder.
func (w *PriceWidget) View(width int, st Styles) string {
	if w.errMsg != "" {
		return st.Error.Render(w.errMsg)
	}
	if !w.hasValue {
		return renderLoadingPlaceholder(width, 2, st)
	}

	arrow, change, up := formatChange(w.last.Change24hPercent)
	changeStyle := st.Up
	if !up {
		changeStyle = st.Down
	}

	var b strings.Builder
	b.WriteString(st.Price.Render(formatCurrency(w.last.USD)))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		changeStyle.Render(arrow+" "),
		changeStyle.Render(change),
	))
	return b.String()
}
