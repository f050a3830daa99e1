package model

import "time"

// PricePoint is a single spot-price observation. It is replaced wholesale on
// every poll and never kept as history.
type PricePoint struct {
	USD              float64
	Change24hPercent float64
}

// OHLCBar is one daily candle. Date is the UTC calendar day at midnight.
type OHLCBar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Up reports whether the bar closed at or above its open.
func (b OHLCBar) Up() bool {
	return b.Close >= b.Open
}

// DayOf truncates a unix-millisecond timestamp to its UTC calendar day.
func DayOf(timestampMillis int64) time.Time {
	t := time.UnixMilli(timestampMillis).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
