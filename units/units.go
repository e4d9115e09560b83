package units

import (
	"errors"
	"fmt"

	"github.com/openwx/wxcharts/config"
)

// Group classifies observation types sharing a display unit.
type Group string

// Unit groups.
const (
	GroupTemperature Group = "group_temperature"
	GroupPressure    Group = "group_pressure"
	GroupRain        Group = "group_rain"
	GroupSpeed       Group = "group_speed"
	GroupPercent     Group = "group_percent"
	GroupDirection   Group = "group_direction"
	GroupRadiation   Group = "group_radiation"
	GroupUV          Group = "group_uv"
)

// Config paths
const (
	PathGroups = "units.groups"
)

// ErrUnknownUnit is returned when a conversion between two units is not
// defined.
var ErrUnknownUnit = errors.New("unknown unit")

// default display unit per group, overridable via units.groups.<group>
var defaultUnits = map[Group]string{
	GroupTemperature: "degree_C",
	GroupPressure:    "hPa",
	GroupRain:        "mm",
	GroupSpeed:       "km_per_hour",
	GroupPercent:     "percent",
	GroupDirection:   "degree_compass",
	GroupRadiation:   "watt_per_meter_squared",
	GroupUV:          "uv_index",
}

var displayUnits map[Group]string

func init() {
	displayUnits = make(map[Group]string, len(defaultUnits))
	for g, u := range defaultUnits {
		displayUnits[g] = u
	}
	config.OnInitialize(func() {
		overrides := config.Viper.GetStringMapString(PathGroups)
		for g := range defaultUnits {
			if u, ok := overrides[string(g)]; ok && u != "" {
				displayUnits[g] = u
			}
		}
	})
}

// observation type -> unit group
var obsGroups = map[string]Group{
	"outTemp":     GroupTemperature,
	"dewpoint":    GroupTemperature,
	"appTemp":     GroupTemperature,
	"windchill":   GroupTemperature,
	"heatindex":   GroupTemperature,
	"outHumidity": GroupPercent,
	"barometer":   GroupPressure,
	"windSpeed":   GroupSpeed,
	"windGust":    GroupSpeed,
	"wind":        GroupSpeed,
	"windDir":     GroupDirection,
	"rain":        GroupRain,
	"radiation":   GroupRadiation,
	"insolation":  GroupRadiation,
	"UV":          GroupUV,
}

// unit -> display label, copied verbatim into feed documents
var labels = map[string]string{
	"degree_C":               "°C",
	"degree_F":               "°F",
	"hPa":                    "hPa",
	"mbar":                   "mbar",
	"inHg":                   "inHg",
	"mm":                     "mm",
	"inch":                   "in",
	"km_per_hour":            "km/h",
	"mile_per_hour":          "mph",
	"meter_per_second":       "m/s",
	"knot":                   "knots",
	"percent":                "%",
	"degree_compass":         "°",
	"watt_per_meter_squared": "W/m²",
	"uv_index":               "",
}

// decimal places used when rounding values of a group
var decimals = map[Group]int{
	GroupTemperature: 1,
	GroupPressure:    1,
	GroupRain:        1,
	GroupSpeed:       1,
	GroupPercent:     0,
	GroupDirection:   0,
	GroupRadiation:   0,
	GroupUV:          1,
}

// ObsGroup returns the unit group an observation type belongs to, and
// whether the observation type is known.
func ObsGroup(obsType string) (Group, bool) {
	g, ok := obsGroups[obsType]
	return g, ok
}

// DisplayUnit returns the configured display unit for a group.
func DisplayUnit(g Group) string {
	return displayUnits[g]
}

// Label returns the display label for a unit.
func Label(unit string) string {
	return labels[unit]
}

// ObsLabel returns the display label for an observation type's configured
// display unit.
func ObsLabel(obsType string) string {
	g, ok := obsGroups[obsType]
	if !ok {
		return ""
	}
	return labels[displayUnits[g]]
}

// Decimals returns the number of decimal places used when rounding values
// of obsType.
func Decimals(obsType string) int {
	g, ok := obsGroups[obsType]
	if !ok {
		return 1
	}
	return decimals[g]
}

// Convert converts value between two units of the same group. Converting a
// unit onto itself is the identity. An undefined pairing yields
// ErrUnknownUnit.
func Convert(value float64, from, to string) (float64, error) {
	if from == to {
		return value, nil
	}

	// linear conversions: display = value*factor + offset
	type linear struct {
		factor float64
		offset float64
	}
	conversions := map[string]map[string]linear{
		"degree_C": {"degree_F": {1.8, 32}},
		"degree_F": {"degree_C": {1 / 1.8, -32 / 1.8}},
		"hPa":      {"inHg": {0.0295299875, 0}, "mbar": {1, 0}},
		"mbar":     {"inHg": {0.0295299875, 0}, "hPa": {1, 0}},
		"inHg":     {"hPa": {33.86389, 0}, "mbar": {33.86389, 0}},
		"mm":       {"inch": {1 / 25.4, 0}},
		"inch":     {"mm": {25.4, 0}},
		"km_per_hour": {
			"mile_per_hour":    {0.621371192, 0},
			"meter_per_second": {1 / 3.6, 0},
			"knot":             {0.539956803, 0},
		},
		"mile_per_hour": {
			"km_per_hour":      {1.609344, 0},
			"meter_per_second": {0.44704, 0},
			"knot":             {0.868976242, 0},
		},
		"meter_per_second": {
			"km_per_hour":   {3.6, 0},
			"mile_per_hour": {2.23693629, 0},
			"knot":          {1.94384449, 0},
		},
		"knot": {
			"km_per_hour":      {1.852, 0},
			"mile_per_hour":    {1.15077945, 0},
			"meter_per_second": {0.514444444, 0},
		},
	}

	m, ok := conversions[from]
	if !ok {
		return 0, fmt.Errorf("convert %q to %q: %w", from, to, ErrUnknownUnit)
	}
	l, ok := m[to]
	if !ok {
		return 0, fmt.Errorf("convert %q to %q: %w", from, to, ErrUnknownUnit)
	}
	return value*l.factor + l.offset, nil
}
