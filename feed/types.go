// Package feed defines the JSON feed documents produced per report window
// and the builders deriving them from the station archive.
package feed

import (
	"encoding/json"
	"fmt"
)

// Window is one of the two report windows a feed document covers.
type Window string

// Report windows.
const (
	WindowWeek Window = "week"
	WindowYear Window = "year"
)

// Category is one of the nine observation categories a document carries.
type Category string

// Observation categories.
const (
	CategoryTemperature Category = "temperature"
	CategoryWindchill   Category = "windchill"
	CategoryHumidity    Category = "humidity"
	CategoryBarometer   Category = "barometer"
	CategoryWind        Category = "wind"
	CategoryWindDir     Category = "winddir"
	CategoryRain        Category = "rain"
	CategoryRadiation   Category = "radiation"
	CategoryUV          Category = "uv"
)

// Categories lists all nine observation categories in display order.
var Categories = [...]Category{
	CategoryTemperature,
	CategoryWindchill,
	CategoryHumidity,
	CategoryBarometer,
	CategoryWind,
	CategoryWindDir,
	CategoryRain,
	CategoryRadiation,
	CategoryUV,
}

// Point is a single chart point. It marshals as [time, value], with a nil
// Value rendered as null.
type Point struct {
	Time  int64 // epoch milliseconds
	Value *float64
}

// MarshalJSON implements json.Marshaler.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{p.Time, p.Value})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 || raw[0] == nil {
		return fmt.Errorf("point: expected [time, value], got %s", data)
	}
	p.Time = int64(*raw[0])
	p.Value = raw[1]
	return nil
}

// RangePoint is a single band point. It marshals as [time, min, max].
type RangePoint struct {
	Time int64 // epoch milliseconds
	Min  *float64
	Max  *float64
}

// MarshalJSON implements json.Marshaler.
func (p RangePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{p.Time, p.Min, p.Max})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *RangePoint) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 || raw[0] == nil {
		return fmt.Errorf("range point: expected [time, min, max], got %s", data)
	}
	p.Time = int64(*raw[0])
	p.Min = raw[1]
	p.Max = raw[2]
	return nil
}

// Series is one named data vector of a plot. Exactly one of Data and
// Ranges is populated; Ranges carries min/max band points.
type Series struct {
	Data   []Point
	Ranges []RangePoint
}

// MarshalJSON implements json.Marshaler.
func (s Series) MarshalJSON() ([]byte, error) {
	if s.Ranges != nil {
		return json.Marshal(struct {
			Data []RangePoint `json:"data"`
		}{s.Ranges})
	}
	data := s.Data
	if data == nil {
		data = []Point{}
	}
	return json.Marshal(struct {
		Data []Point `json:"data"`
	}{data})
}

// UnmarshalJSON implements json.Unmarshaler. The point arity of the first
// row decides whether the series holds plain points or band points.
func (s *Series) UnmarshalJSON(data []byte) error {
	var probe struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if len(probe.Data) == 0 {
		s.Data = []Point{}
		return nil
	}
	var first []*float64
	if err := json.Unmarshal(probe.Data[0], &first); err != nil {
		return err
	}
	if len(first) == 3 {
		var full struct {
			Data []RangePoint `json:"data"`
		}
		if err := json.Unmarshal(data, &full); err != nil {
			return err
		}
		s.Ranges = full.Data
		return nil
	}
	var full struct {
		Data []Point `json:"data"`
	}
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	s.Data = full.Data
	return nil
}

// Plot groups the series of one observation category together with its
// display unit and the optional minimum axis range hint.
type Plot struct {
	Units    string             `json:"units"`
	MinRange *float64           `json:"minRange,omitempty"`
	Series   map[string]*Series `json:"series"`
}

// Timespan is the document's window in epoch milliseconds.
type Timespan struct {
	Start int64 `json:"start"`
	Stop  int64 `json:"stop"`
}

// Document is one feed document as produced per report window. Optional
// categories are nil when upstream data does not support them.
type Document struct {
	UTCOffset int      `json:"utcoffset"` // seconds
	Timespan  Timespan `json:"timespan"`

	Temperature *Plot `json:"temperatureplot,omitempty"`
	Windchill   *Plot `json:"windchillplot,omitempty"`
	Humidity    *Plot `json:"humidityplot,omitempty"`
	Barometer   *Plot `json:"barometerplot,omitempty"`
	Wind        *Plot `json:"windplot,omitempty"`
	WindDir     *Plot `json:"winddirplot,omitempty"`
	Rain        *Plot `json:"rainplot,omitempty"`
	Radiation   *Plot `json:"radiationplot,omitempty"`
	UV          *Plot `json:"uvplot,omitempty"`
}

// Plot returns the plot group of one category, nil when the document does
// not carry it.
func (d *Document) Plot(c Category) *Plot {
	switch c {
	case CategoryTemperature:
		return d.Temperature
	case CategoryWindchill:
		return d.Windchill
	case CategoryHumidity:
		return d.Humidity
	case CategoryBarometer:
		return d.Barometer
	case CategoryWind:
		return d.Wind
	case CategoryWindDir:
		return d.WindDir
	case CategoryRain:
		return d.Rain
	case CategoryRadiation:
		return d.Radiation
	case CategoryUV:
		return d.UV
	}
	return nil
}
