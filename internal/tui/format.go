package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// formatCurrency renders a USD amount with grouping and two decimals,
// e.g. "$67,123.45".
func formatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + "$" + s
	}
	return sign + "$" + humanize.Comma(n) + "." + frac
}

// formatChange renders a 24h change as an absolute percentage plus the
// arrow for its direction. up is false only for a negative change.
func formatChange(pct float64) (arrow, text string, up bool) {
	up = pct >= 0
	arrow = "▲"
	if !up {
		arrow = "▼"
	}
	return arrow, fmt.Sprintf("%.2f%% (24h)", math.Abs(pct)), up
}
