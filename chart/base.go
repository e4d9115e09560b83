package chart

import "github.com/openwx/wxcharts/feed"

// the shared base every category configuration starts from; never mutated,
// only cloned
var base = newBase()

func newBase() *Options {
	return &Options{
		Chart: Chart{
			Type:            "spline",
			BackgroundColor: "#f9f9f9",
			ZoomType:        "x",
		},
		XAxis: Axis{Type: "datetime"},
		YAxis: Axis{Title: &Title{}},
		Legend: &Legend{
			Enabled: boolPtr(true),
		},
		Tooltip: Tooltip{
			Shared:      true,
			XDateFormat: "%e %B %Y %H:%M",
		},
		PlotOptions: &PlotOptions{
			Series: &SeriesDefaults{
				Marker: &Marker{Enabled: boolPtr(false)},
			},
		},
	}
}

// Base returns a deep copy of the shared base configuration.
func Base() *Options {
	return base.Clone()
}

// rangeSelector returns the two-window selector for a report window.
func rangeSelector(w feed.Window) *RangeSelector {
	switch w {
	case feed.WindowYear:
		return &RangeSelector{
			Selected: intPtr(2),
			Buttons: []Button{
				{Type: "month", Count: 1, Text: "1m"},
				{Type: "month", Count: 6, Text: "6m"},
				{Type: "year", Count: 1, Text: "1y"},
			},
		}
	default:
		return &RangeSelector{
			Selected: intPtr(2),
			Buttons: []Button{
				{Type: "day", Count: 1, Text: "1d"},
				{Type: "day", Count: 3, Text: "3d"},
				{Type: "day", Count: 7, Text: "7d"},
			},
		}
	}
}

func boolPtr(v bool) *bool       { return &v }
func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }
