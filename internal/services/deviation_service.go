package services

import (
	"context"
	"regexp"

	"github.com/confguard/confguard/internal/diff"
	"github.com/confguard/confguard/internal/domain/deviation"
	"github.com/confguard/confguard/internal/domain/ignore"
	"github.com/confguard/confguard/internal/pkg/errors"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/pkg/metrics"
)

// DeviationService implements deviation.Service
type DeviationService struct {
	repo    deviation.Repository
	ignores ignore.Repository
	logger  *logger.Logger
}

// NewDeviationService creates a new deviation service
func NewDeviationService(repo deviation.Repository, ignores ignore.Repository, log *logger.Logger) deviation.Service {
	return &DeviationService{
		repo:    repo,
		ignores: ignores,
		logger:  log,
	}
}

// Record ingests a newly retrieved configuration for a device
func (s *DeviationService) Record(ctx context.Context, deviceID int64, text string) (*deviation.Result, error) {
	patterns, err := s.compiledIgnores(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.Record(ctx, deviceID, text, ContentHash(text), func(baseText, candidate string) deviation.Assessment {
		d := diff.Lines(baseText, candidate)

		changed := d.Changed()
		if len(patterns) > 0 {
			changed = filterIgnored(changed, patterns)
		}

		return deviation.Assessment{
			Severity: diff.Classify(changed),
			Stats:    deviation.Stats{Added: d.Added, Removed: d.Removed},
		}
	})
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to record snapshot")
		return nil, err
	}

	metrics.RecordDetection(string(res.Severity))
	if res.Severity != diff.SeverityInfo {
		s.logger.WithFields(map[string]interface{}{
			"device_id":   deviceID,
			"snapshot_id": res.SnapshotID,
			"severity":    res.Severity,
			"added":       res.Stats.Added,
			"removed":     res.Stats.Removed,
		}).Warn("Configuration deviation detected")
	}

	return res, nil
}

// ListByDevice retrieves a device's deviation events, newest first
func (s *DeviationService) ListByDevice(ctx context.Context, deviceID int64) ([]*deviation.Event, error) {
	return s.repo.ListByDevice(ctx, deviceID)
}

// AddIgnore registers a line-exclusion regex for a device
func (s *DeviationService) AddIgnore(ctx context.Context, deviceID int64, regex, actor string) (int64, error) {
	if _, err := regexp.Compile(regex); err != nil {
		return 0, errors.BadRequest("invalid regex: " + err.Error())
	}
	return s.ignores.Add(ctx, deviceID, regex, actor)
}

// ListIgnores retrieves a device's ignore patterns
func (s *DeviationService) ListIgnores(ctx context.Context, deviceID int64) ([]*ignore.Pattern, error) {
	return s.ignores.ListByDevice(ctx, deviceID)
}

func (s *DeviationService) compiledIgnores(ctx context.Context, deviceID int64) ([]*regexp.Regexp, error) {
	stored, err := s.ignores.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	var patterns []*regexp.Regexp
	for _, p := range stored {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			// Patterns are validated on insert; a bad row is skipped
			// rather than blocking ingestion
			s.logger.WithFields(map[string]interface{}{
				"device_id": deviceID,
				"regex":     p.Regex,
			}).Warn("Skipping unparseable ignore pattern")
			continue
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

func filterIgnored(changed []string, patterns []*regexp.Regexp) []string {
	kept := changed[:0]
	for _, line := range changed {
		ignored := false
		for _, re := range patterns {
			if re.MatchString(line) {
				ignored = true
				break
			}
		}
		if !ignored {
			kept = append(kept, line)
		}
	}
	return kept
}
