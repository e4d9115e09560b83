// Package generator runs the periodic report cycle: it builds the feed
// documents from the station archive, renders them to disk and publishes
// them into the feed cache.
package generator

import (
	"context"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openwx/wxcharts/archive"
	"github.com/openwx/wxcharts/config"
	"github.com/openwx/wxcharts/feed"
	"github.com/openwx/wxcharts/feedcache"
)

// Configuration paths of the report cycle.
const (
	PathInterval     = "report.interval"
	PathYearStaleAge = "report.yearstaleage"
	PathOutputDir    = "report.outputdir"
)

// Defaults of the report cycle.
const (
	DefaultInterval     = 5 * time.Minute
	DefaultYearStaleAge = time.Hour
	DefaultOutputDir    = "reports"
)

// Generator owns one report cycle.
type Generator struct {
	archive   *archive.Archive
	interval  time.Duration
	staleAge  time.Duration
	outputDir string

	lastYear time.Time
}

// New assembles a generator over the station archive, configured from
// `report.*`.
func New(a *archive.Archive) *Generator {
	g := &Generator{
		archive:   a,
		interval:  config.Viper.GetDuration(PathInterval),
		staleAge:  config.Viper.GetDuration(PathYearStaleAge),
		outputDir: config.Viper.GetString(PathOutputDir),
	}
	if g.interval <= 0 {
		g.interval = DefaultInterval
	}
	if g.staleAge <= 0 {
		g.staleAge = DefaultYearStaleAge
	}
	if g.outputDir == "" {
		g.outputDir = DefaultOutputDir
	}
	return g
}

// Run executes report cycles until the context is cancelled. The first
// cycle runs immediately.
func (g *Generator) Run(ctx context.Context) {
	logrus.WithFields(logrus.Fields{
		"interval":  g.interval,
		"outputdir": g.outputDir,
	}).Info("Starting report cycle.")

	g.prime(ctx)
	g.cycle(ctx, time.Now())

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Report cycle stopped.")
			return
		case <-ticker.C:
			g.cycle(ctx, time.Now())
		}
	}
}

// prime publishes the documents written by the previous run, so a restart
// serves feeds before the first cycle completes. Missing or malformed
// files just leave the window unpublished until the cycle fills it.
func (g *Generator) prime(ctx context.Context) {
	for _, w := range []feed.Window{feed.WindowWeek, feed.WindowYear} {
		doc, err := feed.Load(ctx, filepath.Join(g.outputDir, string(w)+".json"))
		if err != nil {
			logrus.WithError(err).WithField("window", w).Debug("No previous feed document recovered.")
			continue
		}
		feedcache.Publish(w, doc)
		logrus.WithField("window", w).Info("Recovered previous feed document.")
	}
}

// cycle builds the week document and, when the last one has gone stale,
// the year document. Failures keep the previously published documents.
func (g *Generator) cycle(ctx context.Context, now time.Time) {
	g.generate(ctx, feed.WindowWeek, now, feed.BuildWeek)

	if now.Sub(g.lastYear) >= g.staleAge {
		if g.generate(ctx, feed.WindowYear, now, feed.BuildYear) {
			g.lastYear = now
		}
	}
}

type buildFunc func(context.Context, *archive.Archive, time.Time) (*feed.Document, error)

func (g *Generator) generate(ctx context.Context, w feed.Window, now time.Time, build buildFunc) bool {
	log := logrus.WithField("window", w)

	doc, err := build(ctx, g.archive, now)
	if err != nil {
		log.WithError(err).Error("Could not build feed document!")
		return false
	}
	out, err := render(w, doc)
	if err != nil {
		log.WithError(err).Error("Could not render feed document!")
		return false
	}
	if err := writeAtomic(g.outputDir, string(w)+".json", out); err != nil {
		log.WithError(err).Error("Could not write feed document!")
		return false
	}

	feedcache.Publish(w, doc)
	log.Debug("Feed document published.")
	return true
}
