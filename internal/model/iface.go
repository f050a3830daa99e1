package model

import "context"

// PriceFetcher returns the current spot price and its 24h change.
type PriceFetcher interface {
	FetchPrice(ctx context.Context) (PricePoint, error)
}

// HistoryFetcher returns daily OHLC bars covering the last days days.
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, days uint) ([]OHLCBar, error)
}
