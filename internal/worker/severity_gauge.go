// Package worker runs the background jobs of the service.
package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/confguard/confguard/internal/diff"
	"github.com/confguard/confguard/internal/domain/baseline"
	"github.com/confguard/confguard/internal/domain/deviation"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/pkg/metrics"
)

// SeverityGauge periodically summarizes the store into prometheus
// gauges: deviation events per severity and devices with an active
// baseline. It only reads the local store; devices are never contacted.
type SeverityGauge struct {
	deviations deviation.Repository
	baselines  baseline.Repository
	schedule   string
	logger     *logger.Logger
	cron       *cron.Cron
}

// NewSeverityGauge creates the gauge refresher. schedule uses cron
// syntax, including @every descriptors.
func NewSeverityGauge(deviations deviation.Repository, baselines baseline.Repository, schedule string, log *logger.Logger) *SeverityGauge {
	return &SeverityGauge{
		deviations: deviations,
		baselines:  baselines,
		schedule:   schedule,
		logger:     log,
		cron:       cron.New(),
	}
}

// Start refreshes once immediately, then on the configured schedule
func (g *SeverityGauge) Start() error {
	g.refresh()

	if _, err := g.cron.AddFunc(g.schedule, g.refresh); err != nil {
		return err
	}
	g.cron.Start()

	g.logger.Infof("Severity gauge worker started (schedule %s)", g.schedule)
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish
func (g *SeverityGauge) Stop() {
	ctx := g.cron.Stop()
	<-ctx.Done()
}

func (g *SeverityGauge) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := g.deviations.CountBySeverity(ctx)
	if err != nil {
		g.logger.ErrorWithErr(err, "Failed to count deviation events")
		return
	}
	// Zero severities with no stored events so stale values clear
	for _, sev := range []diff.Severity{diff.SeverityInfo, diff.SeverityWarn, diff.SeverityCritical} {
		metrics.SetDeviationEvents(string(sev), float64(counts[string(sev)]))
	}

	active, err := g.baselines.CountActive(ctx)
	if err != nil {
		g.logger.ErrorWithErr(err, "Failed to count active baselines")
		return
	}
	metrics.SetActiveBaselines(float64(active))
}
