package candle

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/gogobitcoin/gogobitcoin/internal/model"
)

func testBars(n int) []model.OHLCBar {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCBar, 0, n)
	for i := 0; i < n; i++ {
		open := 100 + float64(i)
		closePrice := open + 2
		if i%2 == 1 {
			closePrice = open - 2
		}
		bars = append(bars, model.OHLCBar{
			Date:  start.AddDate(0, 0, i),
			Open:  open,
			High:  open + 5,
			Low:   open - 5,
			Close: closePrice,
		})
	}
	return bars
}

func TestChart_RendersCandles(t *testing.T) {
	t.Parallel()

	c := New(Options{Width: 60, Height: 12, Palette: DarkPalette, TimeVisible: true})
	s := c.AddCandlestickSeries(DefaultSeriesOptions(DarkPalette))
	s.SetData(testBars(10))
	c.TimeScale().FitContent()

	view := c.View()
	if !strings.ContainsRune(view, runeBody) {
		t.Fatal("expected candle bodies in rendered chart")
	}
	if got := lipgloss.Height(view); got != 12 {
		t.Fatalf("view height = %d, want 12", got)
	}
	if got := lipgloss.Width(view); got != 60 {
		t.Fatalf("view width = %d, want 60", got)
	}
	if !strings.Contains(ansi.Strip(view), "Mar 01") {
		t.Fatal("expected first date on the time axis")
	}
}

func TestChart_EmptySeriesRendersGrid(t *testing.T) {
	t.Parallel()

	c := New(Options{Width: 40, Height: 8})
	c.AddCandlestickSeries(SeriesOptions{})

	view := c.View()
	if view == "" {
		t.Fatal("empty chart should still render")
	}
	if strings.ContainsRune(view, runeBody) {
		t.Fatal("empty chart should not draw candles")
	}
	if !strings.ContainsRune(view, runeGrid) {
		t.Fatal("empty chart should draw grid lines")
	}
}

func TestChart_ApplyOptionsResizesWidthOnly(t *testing.T) {
	t.Parallel()

	c := New(Options{Width: 40, Height: 8, Palette: LightPalette})
	c.ApplyOptions(WithWidth(72))

	opts := c.Options()
	if opts.Width != 72 {
		t.Fatalf("width = %d, want 72", opts.Width)
	}
	if opts.Height != 8 {
		t.Fatalf("height = %d, want 8 (unchanged)", opts.Height)
	}
	if opts.Palette != LightPalette {
		t.Fatal("palette changed by width patch")
	}
	if got := lipgloss.Width(c.View()); got != 72 {
		t.Fatalf("view width = %d, want 72", got)
	}
}

func TestChart_RemoveReleases(t *testing.T) {
	t.Parallel()

	c := New(Options{Width: 40, Height: 8})
	c.AddCandlestickSeries(SeriesOptions{}).SetData(testBars(3))
	c.Remove()

	if !c.Removed() {
		t.Fatal("Removed() = false after Remove")
	}
	if got := c.View(); got != "" {
		t.Fatalf("removed chart view = %q, want empty", got)
	}

	c.ApplyOptions(WithWidth(90))
	if c.Options().Width == 90 {
		t.Fatal("removed chart accepted an option patch")
	}
}

func TestSeries_SetDataCopies(t *testing.T) {
	t.Parallel()

	bars := testBars(2)
	s := &Series{}
	s.SetData(bars)
	bars[0].Open = -1

	if got := s.Data()[0].Open; got == -1 {
		t.Fatal("series shares backing array with caller")
	}
}

func TestTimeScale_VisibleRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		fit         bool
		n, columns  int
		wantFrom    int
		wantTo      int
		wantSpacing int
	}{
		{"default spacing shows latest", false, 30, 20, 20, 30, 2},
		{"fit spreads few bars", true, 5, 20, 0, 5, 4},
		{"fit fills columns", true, 10, 30, 0, 10, 3},
		{"fit overflow keeps latest", true, 30, 20, 10, 30, 1},
		{"no bars", true, 0, 20, 0, 0, 2},
	}

	for _, tt := range tests {
		ts := &TimeScale{fit: tt.fit}
		from, to, spacing := ts.visibleRange(tt.n, tt.columns)
		if from != tt.wantFrom || to != tt.wantTo || spacing != tt.wantSpacing {
			t.Fatalf("%s: visibleRange = (%d, %d, %d), want (%d, %d, %d)",
				tt.name, from, to, spacing, tt.wantFrom, tt.wantTo, tt.wantSpacing)
		}
	}
}

func TestPriceBounds_FlatSeries(t *testing.T) {
	t.Parallel()

	lo, hi := priceBounds([]model.OHLCBar{{Open: 5, High: 5, Low: 5, Close: 5}})
	if hi <= lo {
		t.Fatalf("priceBounds = (%v, %v), want hi > lo", lo, hi)
	}
}
