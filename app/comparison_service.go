package app

import (
	"context"
	"math/rand/v2"
	"time"

	"bootcompare/domain/core"
	"bootcompare/domain/stats"
	"bootcompare/internal"
	"bootcompare/internal/errors"
	"bootcompare/ports"
)

// ComparatorFactory builds a comparator seeded for one run
type ComparatorFactory func(seed uint64) ports.Comparator

// ComparisonService runs one bootstrap comparison with an audit record
type ComparisonService struct {
	newComparator ComparatorFactory
	profiler      ports.SampleProfiler
	logger        *internal.Logger
}

// ComparisonRequest defines the inputs of a comparison run
type ComparisonRequest struct {
	Dist1       stats.Sample
	Dist2       stats.Sample
	Simulations stats.SimulationCount // 0 means stats.DefaultSimulations
	Seed        uint64                // 0 picks a random seed, reported back for replay
	Alpha       float64               // 0 means 0.05
	RunID       core.RunID            // optional, generated if empty
}

// ComparisonReport is the complete output of a comparison run
type ComparisonReport struct {
	RunID       core.RunID            `json:"run_id"`
	Fingerprint core.InputFingerprint `json:"fingerprint"`
	Seed        uint64                `json:"seed"`
	Alpha       float64               `json:"alpha"`
	Profile1    stats.SampleProfile   `json:"dist_1_profile"`
	Profile2    stats.SampleProfile   `json:"dist_2_profile"`
	Comparison  *stats.Comparison     `json:"comparison"`
	Significant bool                  `json:"significant"`
	Warning     string                `json:"warning,omitempty"`
	StartedAt   core.Timestamp        `json:"started_at"`
	RuntimeMs   int64                 `json:"runtime_ms"`
}

// NewComparisonService creates a comparison service
func NewComparisonService(newComparator ComparatorFactory, profiler ports.SampleProfiler, logger *internal.Logger) *ComparisonService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ComparisonService{
		newComparator: newComparator,
		profiler:      profiler,
		logger:        logger.Named("compare"),
	}
}

// RunComparison validates, profiles and compares the two samples.
// A degenerate comparison still yields a report (Comparison.Degenerate set,
// Warning filled in) and a nil error; the sentinel p-value decides Significant.
func (s *ComparisonService) RunComparison(ctx context.Context, req ComparisonRequest) (*ComparisonReport, error) {
	startTime := time.Now()
	req = withDefaults(req)

	if err := req.Dist1.Validate("dist_1"); err != nil {
		return nil, errors.Wrap(err, "invalid comparison request")
	}
	if err := req.Dist2.Validate("dist_2"); err != nil {
		return nil, errors.Wrap(err, "invalid comparison request")
	}
	if err := req.Simulations.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid comparison request")
	}
	if req.Alpha <= 0 || req.Alpha >= 1 {
		return nil, errors.InvalidInput("alpha must be in (0, 1)")
	}

	report := &ComparisonReport{
		RunID:       req.RunID,
		Fingerprint: core.ComputeInputFingerprint(req.Dist1, req.Dist2, int(req.Simulations), req.Seed),
		Seed:        req.Seed,
		Alpha:       req.Alpha,
		StartedAt:   core.NewTimestamp(startTime),
	}

	var err error
	if report.Profile1, err = s.profiler.Profile(req.Dist1); err != nil {
		return nil, errors.Wrap(err, "failed to profile dist_1")
	}
	if report.Profile2, err = s.profiler.Profile(req.Dist2); err != nil {
		return nil, errors.Wrap(err, "failed to profile dist_2")
	}

	cmp, err := s.newComparator(req.Seed).Run(ctx, req.Dist1, req.Dist2, req.Simulations)
	switch {
	case err == nil:
	case core.IsDegenerateVarianceError(err) && cmp != nil:
		report.Warning = err.Error()
		s.logger.Warn("run %s: %v", req.RunID, err)
	default:
		return nil, errors.Wrapf(err, "comparison run %s failed", req.RunID)
	}

	report.Comparison = cmp
	report.Significant = float64(cmp.PValue) < req.Alpha
	report.RuntimeMs = time.Since(startTime).Milliseconds()

	s.logger.Info("run %s fingerprint=%s n=%d p_1=%.4f ties=%d z=%.3f p=%.4g (%dms)",
		req.RunID, core.Hash(report.Fingerprint).Short(), req.Simulations,
		cmp.Dist1.P(), cmp.Ties, cmp.ZStatistic, float64(cmp.PValue), report.RuntimeMs)

	return report, nil
}

func withDefaults(req ComparisonRequest) ComparisonRequest {
	if req.Simulations == 0 {
		req.Simulations = stats.DefaultSimulations
	}
	for req.Seed == 0 {
		req.Seed = rand.Uint64()
	}
	if req.Alpha == 0 {
		req.Alpha = 0.05
	}
	if req.RunID == "" {
		req.RunID = core.NewRunID()
	}
	return req
}
