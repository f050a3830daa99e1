package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/gogobitcoin/gogobitcoin/internal/model"
)

// SnapshotOptions configures a single rendered frame.
type SnapshotOptions struct {
	Width       int
	Theme       Theme
	HistoryDays uint
	ChartHeight int
	Now         func() time.Time
}

// Snapshot fetches the price and the history concurrently, feeds both
// results through the dashboard widgets and returns one rendered frame.
// Fetch errors stay local to their widget and show up in the frame.
func Snapshot(ctx context.Context, prices model.PriceFetcher, history model.HistoryFetcher, opts SnapshotOptions) (string, error) {
	g, gctx := errgroup.WithContext(ctx)

	shell, err := NewShell(ShellConfig{
		Context:     gctx,
		Prices:      prices,
		History:     history,
		HistoryDays: opts.HistoryDays,
		ChartHeight: opts.ChartHeight,
		Theme:       opts.Theme,
		Now:         opts.Now,
	})
	if err != nil {
		return "", err
	}
	defer shell.Teardown()

	cmds := shell.mount()
	msgs := make([]tea.Msg, len(cmds))
	for i, cmd := range cmds {
		g.Go(func() error {
			msgs[i] = cmd()
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return "", err
	}

	shell.Update(tea.WindowSizeMsg{Width: opts.Width})
	for _, msg := range msgs {
		shell.Update(msg)
	}
	return shell.View(opts.Width, 0), nil
}
