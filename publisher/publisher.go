// Package publisher regenerates the stale pages of a site.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/locker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/wanli28/ConnectionKit/common/loggers"
	"github.com/wanli28/ConnectionKit/sitelib"
)

// Regenerator produces the published artifact of a page.
type Regenerator interface {
	Regenerate(ctx context.Context, snap sitelib.PageSnapshot) error
}

// RegeneratorFunc adapts a function to Regenerator.
type RegeneratorFunc func(ctx context.Context, snap sitelib.PageSnapshot) error

func (f RegeneratorFunc) Regenerate(ctx context.Context, snap sitelib.PageSnapshot) error {
	return f(ctx, snap)
}

// Config configures a Publisher.
type Config struct {
	Site        *sitelib.Site
	Regenerator Regenerator

	// Number of concurrent regenerations. Defaults to publish.workers of
	// the site config.
	Workers int

	// Where to register the publish metrics. Nothing is registered if nil.
	Registerer prometheus.Registerer
}

// Publisher runs publish passes over a site.
type Publisher struct {
	s       *sitelib.Site
	regen   Regenerator
	workers int
	log     loggers.Logger

	// Held per page while it is regenerated.
	locks *locker.Locker

	metrics *metrics
}

type metrics struct {
	regenerated prometheus.Counter
	failed      prometheus.Counter
	duration    prometheus.Histogram
	stale       prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		regenerated: f.NewCounter(prometheus.CounterOpts{
			Namespace: "sitetree",
			Subsystem: "publish",
			Name:      "pages_regenerated_total",
			Help:      "Pages regenerated successfully.",
		}),
		failed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "sitetree",
			Subsystem: "publish",
			Name:      "pages_failed_total",
			Help:      "Page regenerations that failed.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sitetree",
			Subsystem: "publish",
			Name:      "pass_duration_seconds",
			Help:      "Duration of publish passes.",
			Buckets:   prometheus.DefBuckets,
		}),
		stale: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "sitetree",
			Subsystem: "publish",
			Name:      "stale_pages",
			Help:      "Pages left stale after the last publish pass.",
		}),
	}
}

// New creates a new Publisher.
func New(cfg Config) (*Publisher, error) {
	if cfg.Site == nil {
		return nil, errors.New("publisher: must provide a Site")
	}
	if cfg.Regenerator == nil {
		return nil, errors.New("publisher: must provide a Regenerator")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = cfg.Site.Conf.Publish.Workers
	}
	if workers <= 0 {
		workers = 1
	}

	return &Publisher{
		s:       cfg.Site,
		regen:   cfg.Regenerator,
		workers: workers,
		log:     cfg.Site.Log,
		locks:   locker.NewLocker(),
		metrics: newMetrics(cfg.Registerer),
	}, nil
}

// Result is the outcome of a publish pass.
type Result struct {
	// Pages regenerated and cleared, in publish order.
	Regenerated []sitelib.PageID

	// Pages whose regeneration failed. They are still stale.
	Failed []sitelib.PageID

	Duration time.Duration
}

// Publish regenerates every stale page that can be published and clears
// it once its artifact was produced. Failed pages stay stale for the next
// pass; their errors are joined in the returned error.
//
// The pages are snapshotted before any regeneration starts, so the site
// must not be changed while Publish runs.
func (p *Publisher) Publish(ctx context.Context) (Result, error) {
	start := p.s.Clock.Now()

	stale := p.s.StaleInPublishOrder()
	snaps := make([]sitelib.PageSnapshot, len(stale))
	for i, page := range stale {
		snaps[i] = page.Snapshot()
	}

	var (
		regenerated = atomic.NewInt64(0)
		failed      = atomic.NewInt64(0)
		errs        = make([]error, len(snaps))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, snap := range snaps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			err := p.regenerate(ctx, snap)
			errs[i] = err
			if err != nil {
				failed.Inc()
				p.metrics.failed.Inc()
				p.log.Warnf("publish %s: %s", snap.Path, err)
				return nil
			}
			regenerated.Inc()
			p.metrics.regenerated.Inc()
			return nil
		})
	}

	// Workers never return errors, failures are collected per page.
	_ = g.Wait()

	var result Result
	var joined []error
	for i, snap := range snaps {
		if errs[i] != nil {
			result.Failed = append(result.Failed, snap.ID)
			joined = append(joined, fmt.Errorf("page %q: %w", snap.Path, errs[i]))
			continue
		}
		result.Regenerated = append(result.Regenerated, snap.ID)
	}
	result.Duration = p.s.Clock.Since(start)

	p.metrics.duration.Observe(result.Duration.Seconds())
	p.metrics.stale.Set(float64(p.s.Tracker().Len()))
	p.log.Infof("published %d pages, %d failed in %s", regenerated.Load(), failed.Load(), result.Duration)

	return result, errors.Join(joined...)
}

func (p *Publisher) regenerate(ctx context.Context, snap sitelib.PageSnapshot) error {
	id := string(snap.ID)
	p.locks.Lock(id)
	defer p.locks.Unlock(id)

	if err := p.regen.Regenerate(ctx, snap); err != nil {
		return err
	}
	p.s.Clear(snap.ID)
	return nil
}
