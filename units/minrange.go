package units

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/openwx/wxcharts/config"
)

// Config paths
const (
	PathMinRange = "minrange"
)

var minRanges map[string]float64

func init() {
	config.OnInitialize(loadMinRanges)
}

// MinRange returns the minimum y-axis range configured for an observation
// type, converted into the observation's display unit. It returns nil when
// no (valid) range is configured.
func MinRange(obsType string) *float64 {
	r, ok := minRanges[obsType]
	if !ok {
		return nil
	}
	return &r
}

// loadMinRanges parses the minrange configuration section. A value is
// either a bare number, interpreted in the display unit, or a
// [value, unit] pair converted into the display unit. Entries that cannot
// be parsed or converted are discarded.
func loadMinRanges() {
	minRanges = make(map[string]float64)
	section := config.Viper.GetStringMap(PathMinRange)
	for obsType, raw := range section {
		obsType = canonicalObsType(obsType)
		g, ok := obsGroups[obsType]
		if !ok {
			log.WithField("observation", obsType).Debug("Discarding min-range for unknown observation type.")
			continue
		}
		switch v := raw.(type) {
		case []interface{}:
			if len(v) < 2 {
				continue
			}
			value, err := strconv.ParseFloat(cast.ToString(v[0]), 64)
			if err != nil {
				continue
			}
			converted, err := Convert(value, cast.ToString(v[1]), displayUnits[g])
			if err != nil {
				log.WithError(err).WithField("observation", obsType).Debug("Discarding inconvertible min-range.")
				continue
			}
			minRanges[obsType] = converted
		default:
			value, err := strconv.ParseFloat(cast.ToString(v), 64)
			if err != nil {
				continue
			}
			minRanges[obsType] = value
		}
	}
}

// canonicalObsType restores the case viper lowercases away from config
// keys.
func canonicalObsType(key string) string {
	for obs := range obsGroups {
		if strings.EqualFold(obs, key) {
			return obs
		}
	}
	return key
}
