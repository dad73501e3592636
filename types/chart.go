package types

import (
	"time"
)

type ChartPoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// DayRange is the lookback window of a price chart.
type DayRange int

const (
	Range1D   DayRange = 1
	Range7D   DayRange = 7
	Range30D  DayRange = 30
	Range90D  DayRange = 90
	Range365D DayRange = 365

	DefaultDayRange = Range7D
)

var DayRanges = []DayRange{Range1D, Range7D, Range30D, Range90D, Range365D}

func (r DayRange) Valid() bool {
	for _, v := range DayRanges {
		if v == r {
			return true
		}
	}
	return false
}

func (r DayRange) Label() string {
	switch r {
	case Range1D:
		return "24h"
	case Range7D:
		return "7d"
	case Range30D:
		return "30d"
	case Range90D:
		return "90d"
	case Range365D:
		return "1y"
	}
	return ""
}
