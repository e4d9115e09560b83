// Package chart builds the per-category Highcharts configurations and
// merges them with feed documents.
package chart

import (
	"encoding/json"

	"github.com/openwx/wxcharts/feed"
)

// Options is the configuration object handed to the charting library. It
// is assembled by cloning a shared base and layering per-category visual
// settings before the feed's data arrays are injected.
type Options struct {
	Chart         Chart          `json:"chart"`
	Title         Title          `json:"title"`
	XAxis         Axis           `json:"xAxis"`
	YAxis         Axis           `json:"yAxis"`
	Legend        *Legend        `json:"legend,omitempty"`
	Tooltip       Tooltip        `json:"tooltip"`
	PlotOptions   *PlotOptions   `json:"plotOptions,omitempty"`
	RangeSelector *RangeSelector `json:"rangeSelector,omitempty"`
	Colors        []string       `json:"colors,omitempty"`
	Series        []Series       `json:"series"`
}

// Chart selects the render target and default series type.
type Chart struct {
	Type            string `json:"type,omitempty"`
	RenderTo        string `json:"renderTo,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	ZoomType        string `json:"zoomType,omitempty"`
}

// Title is a chart or axis caption.
type Title struct {
	Text string `json:"text"`
}

// Axis describes one chart axis.
type Axis struct {
	Type         string   `json:"type,omitempty"`
	Title        *Title   `json:"title,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	MinRange     *float64 `json:"minRange,omitempty"`
	TickInterval *float64 `json:"tickInterval,omitempty"`
	Opposite     bool     `json:"opposite,omitempty"`
}

// Legend toggles the series legend.
type Legend struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// Tooltip describes the hover tooltip. OrderDescending asks the page shim
// to sort shared tooltip rows by descending value at the hovered
// timestamp.
type Tooltip struct {
	Shared          bool   `json:"shared,omitempty"`
	ValueSuffix     string `json:"valueSuffix,omitempty"`
	ValueDecimals   *int   `json:"valueDecimals,omitempty"`
	XDateFormat     string `json:"xDateFormat,omitempty"`
	OrderDescending bool   `json:"orderDescending,omitempty"`
}

// PlotOptions carries series-type defaults.
type PlotOptions struct {
	Series *SeriesDefaults `json:"series,omitempty"`
	Column *ColumnDefaults `json:"column,omitempty"`
}

// SeriesDefaults applies to every series of the chart.
type SeriesDefaults struct {
	Marker *Marker `json:"marker,omitempty"`
}

// Marker configures data point markers.
type Marker struct {
	Enabled *bool    `json:"enabled,omitempty"`
	Radius  *float64 `json:"radius,omitempty"`
}

// ColumnDefaults applies to column series.
type ColumnDefaults struct {
	PointPadding *float64 `json:"pointPadding,omitempty"`
	GroupPadding *float64 `json:"groupPadding,omitempty"`
}

// RangeSelector configures the time-window selector buttons.
type RangeSelector struct {
	Enabled  *bool    `json:"enabled,omitempty"`
	Selected *int     `json:"selected,omitempty"`
	Buttons  []Button `json:"buttons,omitempty"`
}

// Button is one range-selector button.
type Button struct {
	Type  string `json:"type"`
	Count int    `json:"count,omitempty"`
	Text  string `json:"text"`
}

// Series is one visual series. Key names the feed series backing it; the
// merge step resolves Key into Data or Ranges and drops entries whose key
// the feed does not carry.
type Series struct {
	Key         string
	Name        string
	Type        string
	Color       string
	DashStyle   string
	FillOpacity *float64
	ZIndex      *int
	Data        []feed.Point
	Ranges      []feed.RangePoint
}

// MarshalJSON implements json.Marshaler. Band series emit their range
// points as the data array.
func (s Series) MarshalJSON() ([]byte, error) {
	type wire struct {
		Name        string      `json:"name"`
		Type        string      `json:"type,omitempty"`
		Color       string      `json:"color,omitempty"`
		DashStyle   string      `json:"dashStyle,omitempty"`
		FillOpacity *float64    `json:"fillOpacity,omitempty"`
		ZIndex      *int        `json:"zIndex,omitempty"`
		Data        interface{} `json:"data"`
	}
	w := wire{
		Name:        s.Name,
		Type:        s.Type,
		Color:       s.Color,
		DashStyle:   s.DashStyle,
		FillOpacity: s.FillOpacity,
		ZIndex:      s.ZIndex,
	}
	if s.Ranges != nil {
		w.Data = s.Ranges
	} else if s.Data != nil {
		w.Data = s.Data
	} else {
		w.Data = []feed.Point{}
	}
	return json.Marshal(w)
}

// Clone returns a deep copy. Mutating the copy never changes the
// original; the per-point data arrays are shared on purpose since they are
// owned by the feed document, never by a configuration.
func (o *Options) Clone() *Options {
	c := *o

	c.XAxis = o.XAxis.clone()
	c.YAxis = o.YAxis.clone()

	if o.Legend != nil {
		l := Legend{Enabled: clonePtr(o.Legend.Enabled)}
		c.Legend = &l
	}
	c.Tooltip.ValueDecimals = clonePtr(o.Tooltip.ValueDecimals)

	if o.PlotOptions != nil {
		p := PlotOptions{}
		if o.PlotOptions.Series != nil {
			s := SeriesDefaults{}
			if o.PlotOptions.Series.Marker != nil {
				m := Marker{
					Enabled: clonePtr(o.PlotOptions.Series.Marker.Enabled),
					Radius:  clonePtr(o.PlotOptions.Series.Marker.Radius),
				}
				s.Marker = &m
			}
			p.Series = &s
		}
		if o.PlotOptions.Column != nil {
			col := ColumnDefaults{
				PointPadding: clonePtr(o.PlotOptions.Column.PointPadding),
				GroupPadding: clonePtr(o.PlotOptions.Column.GroupPadding),
			}
			p.Column = &col
		}
		c.PlotOptions = &p
	}

	if o.RangeSelector != nil {
		r := RangeSelector{
			Enabled:  clonePtr(o.RangeSelector.Enabled),
			Selected: clonePtr(o.RangeSelector.Selected),
		}
		if o.RangeSelector.Buttons != nil {
			r.Buttons = make([]Button, len(o.RangeSelector.Buttons))
			copy(r.Buttons, o.RangeSelector.Buttons)
		}
		c.RangeSelector = &r
	}

	if o.Colors != nil {
		c.Colors = make([]string, len(o.Colors))
		copy(c.Colors, o.Colors)
	}
	if o.Series != nil {
		c.Series = make([]Series, len(o.Series))
		for i, s := range o.Series {
			s.FillOpacity = clonePtr(s.FillOpacity)
			s.ZIndex = clonePtr(s.ZIndex)
			c.Series[i] = s
		}
	}
	return &c
}

func (a Axis) clone() Axis {
	c := a
	if a.Title != nil {
		t := *a.Title
		c.Title = &t
	}
	c.Min = clonePtr(a.Min)
	c.Max = clonePtr(a.Max)
	c.MinRange = clonePtr(a.MinRange)
	c.TickInterval = clonePtr(a.TickInterval)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
