package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gogobitcoin/gogobitcoin/internal/model"
)

// FetchHistory returns daily OHLC bars for the last days days. Upstream
// order is preserved; an empty array yields an empty, non-nil slice.
func (c *Client) FetchHistory(ctx context.Context, days uint) ([]model.OHLCBar, error) {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("days", strconv.FormatUint(uint64(days), 10))

	var raw [][]float64
	if err := c.getJSON(ctx, "/coins/"+coinID+"/ohlc", q, &raw); err != nil {
		return nil, fetchErr("history", err)
	}

	bars := make([]model.OHLCBar, 0, len(raw))
	for i, tuple := range raw {
		if len(tuple) != 5 {
			return nil, fetchErr("history", fmt.Errorf("record %d has %d fields, want 5", i, len(tuple)))
		}
		bars = append(bars, model.OHLCBar{
			Date:  model.DayOf(int64(tuple[0])),
			Open:  tuple[1],
			High:  tuple[2],
			Low:   tuple[3],
			Close: tuple[4],
		})
	}
	return bars, nil
}
