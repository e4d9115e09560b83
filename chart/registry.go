package chart

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/openwx/wxcharts/config"
	"github.com/openwx/wxcharts/feed"
)

// PathTargets is the configuration path of the list of chart categories to
// render. Unset means every category.
const PathTargets = "render.targets"

var (
	targets  map[feed.Category]bool
	targetsM sync.RWMutex
)

func init() {
	config.OnInitialize(loadTargets)
}

func loadTargets() {
	names := config.Viper.GetStringSlice(PathTargets)

	targetsM.Lock()
	defer targetsM.Unlock()

	targets = make(map[feed.Category]bool, len(feed.Categories))
	if len(names) == 0 {
		for _, c := range feed.Categories {
			targets[c] = true
		}
		return
	}
	for _, n := range names {
		c := feed.Category(n)
		if _, err := patch(c, feed.WindowWeek); err != nil {
			logrus.WithField("category", n).Warn("Ignoring unknown render target!")
			continue
		}
		targets[c] = true
	}
}

// Enabled reports whether a category is configured for rendering. Before
// configuration is loaded every known category is enabled.
func Enabled(c feed.Category) bool {
	targetsM.RLock()
	defer targetsM.RUnlock()
	if targets == nil {
		_, err := patch(c, feed.WindowWeek)
		return err == nil
	}
	return targets[c]
}

// EnabledCategories returns the configured render targets in display
// order.
func EnabledCategories() []feed.Category {
	targetsM.RLock()
	defer targetsM.RUnlock()

	if targets == nil {
		return feed.Categories[:]
	}
	out := make([]feed.Category, 0, len(targets))
	for _, c := range feed.Categories {
		if targets[c] {
			out = append(out, c)
		}
	}
	return out
}
