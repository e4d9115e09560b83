package chart

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/openwx/wxcharts/feed"
)

// ErrUnknownCategory is returned for categories outside the fixed set.
var ErrUnknownCategory = fmt.Errorf("unknown chart category")

// series palette
const (
	colorRed    = "#B44242"
	colorBlue   = "#4242B4"
	colorSteel  = "#4282B4"
	colorTeal   = "#42B4B4"
	colorOrange = "#B48042"
	colorPurple = "#B442B4"
)

// Build derives the visual configuration of one observation category for a
// report window. The shared base is cloned first and the category's
// settings are layered on top, so configurations never alias each other.
func Build(c feed.Category, w feed.Window) (*Options, error) {
	p, err := patch(c, w)
	if err != nil {
		return nil, err
	}

	opts := Base()
	opts.RangeSelector = rangeSelector(w)
	if err := mergo.Merge(opts, p, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("build %s/%s: %w", c, w, err)
	}
	return opts, nil
}

// patch returns the per-category settings layered over the base. Series
// are listed band-before-average so an average line always draws on top of
// its range band.
func patch(c feed.Category, w feed.Window) (Options, error) {
	year := w == feed.WindowYear

	switch c {
	case feed.CategoryTemperature:
		if year {
			return Options{
				Title: Title{Text: "Temperature"},
				Series: []Series{
					band("outTempminmax", "Temperature Range", colorRed),
					average("outTempaverage", "Average Temperature", colorRed),
					band("appTempminmax", "Apparent Temperature Range", colorOrange),
					average("appTempaverage", "Average Apparent Temperature", colorOrange),
				},
			}, nil
		}
		return Options{
			Title: Title{Text: "Temperature"},
			Series: []Series{
				{Key: "outTemp", Name: "Temperature", Color: colorRed},
				{Key: "dewpoint", Name: "Dew Point", Color: colorTeal},
				{Key: "appTemp", Name: "Apparent Temperature", Color: colorOrange},
			},
		}, nil

	case feed.CategoryWindchill:
		if year {
			return Options{
				Title: Title{Text: "Wind Chill / Heat Index"},
				Series: []Series{
					average("windchillaverage", "Average Wind Chill", colorSteel),
					average("heatindexaverage", "Average Heat Index", colorRed),
					average("appTempaverage", "Average Apparent Temperature", colorOrange),
				},
			}, nil
		}
		return Options{
			Title: Title{Text: "Wind Chill / Heat Index"},
			Series: []Series{
				{Key: "windchill", Name: "Wind Chill", Color: colorSteel},
				{Key: "heatindex", Name: "Heat Index", Color: colorRed},
				{Key: "appTemp", Name: "Apparent Temperature", Color: colorOrange},
			},
		}, nil

	case feed.CategoryHumidity:
		o := Options{
			Title: Title{Text: "Humidity"},
			YAxis: Axis{Min: floatPtr(0), Max: floatPtr(100)},
		}
		if year {
			o.Series = []Series{
				band("outHumidityminmax", "Humidity Range", colorBlue),
				average("outHumidityaverage", "Average Humidity", colorBlue),
			}
		} else {
			o.Series = []Series{{Key: "outHumidity", Name: "Humidity", Color: colorBlue}}
		}
		return o, nil

	case feed.CategoryBarometer:
		o := Options{Title: Title{Text: "Barometer"}}
		if year {
			o.Series = []Series{
				band("barometerminmax", "Barometric Pressure Range", colorSteel),
				average("barometeraverage", "Average Barometric Pressure", colorSteel),
			}
		} else {
			o.Series = []Series{{Key: "barometer", Name: "Barometer", Color: colorSteel}}
		}
		return o, nil

	case feed.CategoryWind:
		o := Options{
			Title: Title{Text: "Wind Speed"},
			YAxis: Axis{Min: floatPtr(0)},
		}
		if year {
			o.Series = []Series{
				average("windGustmax", "Max Gust", colorRed),
				average("windSpeedmax", "Max Wind Speed", colorOrange),
				average("windSpeedaverage", "Average Wind Speed", colorSteel),
			}
		} else {
			o.Series = []Series{
				{Key: "windSpeed", Name: "Wind Speed", Color: colorSteel},
				{Key: "windGust", Name: "Wind Gust", Color: colorRed},
			}
		}
		return o, nil

	case feed.CategoryWindDir:
		// compass axis, fixed regardless of feed content
		o := Options{
			Title: Title{Text: "Wind Direction"},
			YAxis: Axis{
				Min:          floatPtr(0),
				Max:          floatPtr(360),
				TickInterval: floatPtr(90),
			},
		}
		o.Series = []Series{{Key: "windDir", Name: "Wind Direction", Type: "scatter", Color: colorSteel}}
		return o, nil

	case feed.CategoryRain:
		o := Options{
			Chart: Chart{Type: "column"},
			Title: Title{Text: "Rainfall"},
			YAxis: Axis{Min: floatPtr(0)},
			PlotOptions: &PlotOptions{
				Column: &ColumnDefaults{
					PointPadding: floatPtr(0),
					GroupPadding: floatPtr(0.05),
				},
			},
		}
		key := "rain"
		if year {
			key = "rainsum"
		}
		o.Series = []Series{{Key: key, Name: "Rainfall", Color: colorBlue}}
		return o, nil

	case feed.CategoryRadiation:
		o := Options{
			Title: Title{Text: "Solar Radiation"},
			YAxis: Axis{Min: floatPtr(0)},
		}
		if year {
			o.Series = []Series{
				average("radiationmax", "Max Solar Radiation", colorRed),
				average("radiationaverage", "Average Solar Radiation", colorOrange),
			}
		} else {
			o.Series = []Series{
				{Key: "radiation", Name: "Solar Radiation", Color: colorRed},
				{Key: "insolation", Name: "Theoretical Max Solar Radiation", Color: colorSteel, DashStyle: "ShortDash"},
			}
		}
		return o, nil

	case feed.CategoryUV:
		o := Options{
			Title: Title{Text: "UV Index"},
			YAxis: Axis{Min: floatPtr(0)},
		}
		if year {
			o.Series = []Series{
				average("uvmax", "Max UV Index", colorPurple),
				average("uvaverage", "Average UV Index", colorTeal),
			}
		} else {
			o.Series = []Series{{Key: "UV", Name: "UV Index", Color: colorPurple}}
		}
		return o, nil
	}

	return Options{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
}

func band(key, name, color string) Series {
	return Series{
		Key:         key,
		Name:        name,
		Type:        "arearange",
		Color:       color,
		FillOpacity: floatPtr(0.3),
		ZIndex:      intPtr(0),
	}
}

func average(key, name, color string) Series {
	return Series{
		Key:    key,
		Name:   name,
		Type:   "spline",
		Color:  color,
		ZIndex: intPtr(1),
	}
}
