package chart

import (
	"errors"
	"sort"

	"github.com/openwx/wxcharts/feed"
)

// ErrCategoryUnavailable is returned when the feed document does not carry
// a category's plot group.
var ErrCategoryUnavailable = errors.New("category not present in feed document")

// Merge injects one category of a feed document into a built
// configuration: unit label and minimum-range hint verbatim, the window's
// time span onto the x-axis, and the series data arrays by reference.
// Series whose feed key is absent are removed from the series list
// entirely; categories left with multiple simultaneous series get
// descending tooltip row ordering.
func Merge(opts *Options, doc *feed.Document, c feed.Category) error {
	plot := doc.Plot(c)
	if plot == nil {
		return ErrCategoryUnavailable
	}

	if opts.YAxis.Title == nil {
		opts.YAxis.Title = &Title{}
	}
	opts.YAxis.Title.Text = plot.Units
	opts.Tooltip.ValueSuffix = plot.Units
	if plot.MinRange != nil {
		opts.YAxis.MinRange = clonePtr(plot.MinRange)
	}

	start := float64(doc.Timespan.Start)
	stop := float64(doc.Timespan.Stop)
	opts.XAxis.Min = &start
	opts.XAxis.Max = &stop

	merged := opts.Series[:0]
	for _, s := range opts.Series {
		data, ok := plot.Series[s.Key]
		if !ok || data == nil {
			continue
		}
		// reference the feed's arrays, never copy them
		s.Data = data.Data
		s.Ranges = data.Ranges
		merged = append(merged, s)
	}
	opts.Series = merged

	if len(opts.Series) > 1 {
		opts.Tooltip.OrderDescending = true
	}
	return nil
}

// TooltipRow is one line of a shared tooltip.
type TooltipRow struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TooltipRowsAt returns the tooltip rows of a merged configuration at one
// timestamp, ordered by descending value. Band series contribute their
// maximum; series without a value at the timestamp are skipped.
func TooltipRowsAt(opts *Options, at int64) []TooltipRow {
	rows := make([]TooltipRow, 0, len(opts.Series))
	for _, s := range opts.Series {
		if v, ok := valueAt(s, at); ok {
			rows = append(rows, TooltipRow{Name: s.Name, Value: v})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})
	return rows
}

func valueAt(s Series, at int64) (float64, bool) {
	for _, p := range s.Ranges {
		if p.Time == at && p.Max != nil {
			return *p.Max, true
		}
	}
	for _, p := range s.Data {
		if p.Time == at && p.Value != nil {
			return *p.Value, true
		}
	}
	return 0, false
}
