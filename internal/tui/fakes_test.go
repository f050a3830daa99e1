package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogobitcoin/gogobitcoin/internal/candle"
	"github.com/gogobitcoin/gogobitcoin/internal/model"
)

var errUpstream = errors.New("upstream unavailable")

type priceResult struct {
	price model.PricePoint
	err   error
}

// fakePrices returns scripted results in call order and repeats the last.
type fakePrices struct {
	mu      sync.Mutex
	results []priceResult
	calls   int
}

func (f *fakePrices) FetchPrice(_ context.Context) (model.PricePoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := min(f.calls, len(f.results)-1)
	f.calls++
	return f.results[i].price, f.results[i].err
}

type fakeHistory struct {
	mu    sync.Mutex
	bars  []model.OHLCBar
	err   error
	calls int
	days  uint
}

func (f *fakeHistory) FetchHistory(_ context.Context, days uint) ([]model.OHLCBar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.days = days
	if f.err != nil {
		return nil, f.err
	}
	return f.bars, nil
}

// chartLog records every instance lifecycle event in order.
type chartLog struct {
	events []string
	live   map[int]*fakeChart
	next   int
}

func newChartLog() *chartLog {
	return &chartLog{live: map[int]*fakeChart{}}
}

func (l *chartLog) factory(opts candle.Options, bars []model.OHLCBar) chartInstance {
	l.next++
	c := &fakeChart{id: l.next, log: l, width: opts.Width, palette: opts.Palette, bars: len(bars)}
	l.live[c.id] = c
	l.events = append(l.events, fmt.Sprintf("create %d", c.id))
	return c
}

func (l *chartLog) count(prefix string) int {
	n := 0
	for _, e := range l.events {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

type fakeChart struct {
	id      int
	log     *chartLog
	width   int
	palette candle.Palette
	bars    int
}

func (c *fakeChart) ApplyOptions(opts ...candle.Option) {
	o := candle.Options{Width: c.width}
	for _, opt := range opts {
		opt(&o)
	}
	c.width = o.Width
	c.log.events = append(c.log.events, fmt.Sprintf("resize %d %d", c.id, c.width))
}

func (c *fakeChart) View() string {
	return fmt.Sprintf("chart %d (%d bars)", c.id, c.bars)
}

func (c *fakeChart) Remove() {
	delete(c.log.live, c.id)
	c.log.events = append(c.log.events, fmt.Sprintf("remove %d", c.id))
}

func testBars() []model.OHLCBar {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCBar, 5)
	for i := range bars {
		o := 60000 + float64(i)*250
		bars[i] = model.OHLCBar{
			Date:  start.AddDate(0, 0, i),
			Open:  o,
			High:  o + 400,
			Low:   o - 300,
			Close: o + 150,
		}
	}
	return bars
}
