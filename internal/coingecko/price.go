package coingecko

import (
	"context"
	"errors"
	"net/url"

	"github.com/gogobitcoin/gogobitcoin/internal/model"
)

type simplePriceResponse struct {
	Bitcoin *struct {
		USD          *float64 `json:"usd"`
		USD24hChange *float64 `json:"usd_24h_change"`
	} `json:"bitcoin"`
}

// FetchPrice returns the current BTC/USD price and its 24h change. Either
// both fields are populated or the call fails.
func (c *Client) FetchPrice(ctx context.Context) (model.PricePoint, error) {
	q := url.Values{}
	q.Set("ids", coinID)
	q.Set("vs_currencies", vsCurrency)
	q.Set("include_24hr_change", "true")

	var resp simplePriceResponse
	if err := c.getJSON(ctx, "/simple/price", q, &resp); err != nil {
		return model.PricePoint{}, fetchErr("price", err)
	}

	if resp.Bitcoin == nil {
		return model.PricePoint{}, fetchErr("price", errors.New("missing bitcoin object"))
	}
	if resp.Bitcoin.USD == nil || resp.Bitcoin.USD24hChange == nil {
		return model.PricePoint{}, fetchErr("price", errors.New("missing usd or usd_24h_change"))
	}

	return model.PricePoint{
		USD:              *resp.Bitcoin.USD,
		Change24hPercent: *resp.Bitcoin.USD24hChange,
	}, nil
}
