package candle

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/gogobitcoin/gogobitcoin/internal/model"
)

const (
	runeWick = '│'
	runeBody = '┃'
	runeGrid = '┈'
	runeAxis = '│'
)

func render(o Options, so SeriesOptions, ts *TimeScale, bars []model.OHLCBar) string {
	width, height := o.Width, o.Height

	plotW := max(2, width-o.PriceAxisWidth)
	plotH := height
	if o.TimeVisible {
		plotH--
	}
	plotH = max(2, plotH)

	cv := canvas.New(width, height)
	base := lipgloss.NewStyle().Background(o.Palette.Background)
	gridStyle := base.Foreground(o.Palette.Grid)
	textStyle := base.Foreground(o.Palette.Text)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			setCell(&cv, x, y, ' ', base)
		}
	}

	rows := gridRows(plotH)
	for _, y := range rows {
		for x := 0; x < plotW; x++ {
			setCell(&cv, x, y, runeGrid, gridStyle)
		}
	}
	for y := 0; y < plotH; y++ {
		setCell(&cv, plotW, y, runeAxis, gridStyle)
	}

	from, to, spacing := ts.visibleRange(len(bars), plotW)
	visible := bars[from:to]
	if len(visible) == 0 {
		return cv.View()
	}

	lo, hi := priceBounds(visible)
	rowOf := func(price float64) int {
		r := int(math.Round((hi - price) / (hi - lo) * float64(plotH-1)))
		return min(max(r, 0), plotH-1)
	}

	offset := max(0, plotW-len(visible)*spacing)
	for i, bar := range visible {
		x := offset + i*spacing
		bodyColor, wickColor := so.UpColor, so.WickUpColor
		if !bar.Up() {
			bodyColor, wickColor = so.DownColor, so.WickDownColor
		}

		for y := rowOf(bar.High); y <= rowOf(bar.Low); y++ {
			setCell(&cv, x, y, runeWick, base.Foreground(wickColor))
		}
		top, bottom := rowOf(math.Max(bar.Open, bar.Close)), rowOf(math.Min(bar.Open, bar.Close))
		for y := top; y <= bottom; y++ {
			setCell(&cv, x, y, runeBody, base.Foreground(bodyColor))
		}
	}

	labelW := width - plotW - 1
	for _, y := range rows {
		price := hi - float64(y)/float64(plotH-1)*(hi-lo)
		setString(&cv, plotW+1, y, clip(formatAxisPrice(price), labelW), textStyle)
	}

	if o.TimeVisible {
		y := height - 1
		first := visible[0].Date.Format("Jan 02")
		last := visible[len(visible)-1].Date.Format("Jan 02")
		setString(&cv, offset, y, clip(first, plotW), textStyle)
		if len(visible) > 1 && plotW-len(last) > offset+len(first) {
			setString(&cv, plotW-len(last), y, last, textStyle)
		}
	}

	return cv.View()
}

// gridRows returns up to five evenly spaced rows, top and bottom included.
func gridRows(plotH int) []int {
	rows := make([]int, 0, 5)
	seen := make(map[int]bool, 5)
	for i := 0; i <= 4; i++ {
		y := i * (plotH - 1) / 4
		if !seen[y] {
			seen[y] = true
			rows = append(rows, y)
		}
	}
	return rows
}

func priceBounds(bars []model.OHLCBar) (lo, hi float64) {
	lo, hi = bars[0].Low, bars[0].High
	for _, b := range bars[1:] {
		lo = math.Min(lo, b.Low)
		hi = math.Max(hi, b.High)
	}
	if hi <= lo {
		hi, lo = lo+1, lo-1
	}
	return lo, hi
}

func formatAxisPrice(p float64) string {
	if math.Abs(p) >= 1000 {
		return humanize.Comma(int64(math.Round(p)))
	}
	return humanize.FtoaWithDigits(p, 2)
}

func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

func setCell(cv *canvas.Model, x, y int, r rune, st lipgloss.Style) {
	cv.SetRuneWithStyle(canvas.Point{X: x, Y: y}, r, st)
}

func setString(cv *canvas.Model, x, y int, s string, st lipgloss.Style) {
	for i, r := range s {
		setCell(cv, x+i, y, r, st)
	}
}
