package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/suppository-service/internal/compounding"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/metrics"
	"github.com/guttosm/suppository-service/internal/service/cache"
)

const resultCacheName = "results"

// Outcome bundles everything derived from one set of inputs.
// Outcomes may be served from cache and shared between callers, so they must
// be treated as read-only.
type Outcome struct {
	Result      model.CalculationResult `json:"result"`
	Coaching    model.CoachingReport    `json:"coaching"`
	Export      []model.ExportField     `json:"export"`
	Explanation []string                `json:"explanation"`
	Cached      bool                    `json:"-"`
}

// Calculator defines the interface for displacement calculations.
type Calculator interface {
	// Calculate normalizes raw input, fills unset overage and rounding from
	// the configured defaults, and runs the five-step calculation.
	Calculate(ctx context.Context, raw model.RawBatchInput) (Outcome, error)
	// InvalidateCache clears cached outcomes.
	InvalidateCache()
}

// Option configures a CalculatorService.
type Option func(*CalculatorService)

// CalculatorService implements Calculator on top of the compounding package.
type CalculatorService struct {
	defaultOverage float64
	defaultStep    float64
	cache          cache.Cache[Outcome]
}

// NewCalculatorService creates a new CalculatorService with the given options.
func NewCalculatorService(opts ...Option) *CalculatorService {
	s := &CalculatorService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithDefaults sets the overage fraction and rounding step applied when a
// request leaves them unset.
func WithDefaults(overage, roundingStep float64) Option {
	return func(s *CalculatorService) {
		s.defaultOverage = overage
		s.defaultStep = roundingStep
	}
}

// WithCache enables outcome caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *CalculatorService) {
		if capacity > 0 {
			s.cache = NewShardedCache[Outcome](resultCacheName, capacity, ttl, 0)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache[Outcome]) Option {
	return func(s *CalculatorService) {
		s.cache = c
	}
}

// Calculate implements Calculator.
func (s *CalculatorService) Calculate(ctx context.Context, raw model.RawBatchInput) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	start := time.Now()

	in, err := compounding.Normalize(s.applyDefaults(raw))
	if err != nil {
		metrics.RecordCalculation(time.Since(start), errorStatus(err), "")
		return Outcome{}, err
	}

	var key string
	if s.cache != nil {
		key = Fingerprint(in)
		if out, ok := s.cache.Get(key); ok {
			out.Cached = true
			return out, nil
		}
	}

	res, err := compounding.Calculate(in)
	if err != nil {
		metrics.RecordCalculation(time.Since(start), errorStatus(err), in.Mode().String())
		return Outcome{}, err
	}

	out := Outcome{
		Result:      res,
		Coaching:    compounding.Coach(in, res),
		Export:      compounding.Export(res),
		Explanation: compounding.Explain(res),
	}

	metrics.RecordCalculation(time.Since(start), "success", res.Mode.String())
	if res.Capacity.ExceedsMoldCapacity {
		metrics.RecordCapacityWarning("exceeds_mold_capacity")
	}
	if res.Capacity.APIVolumeExceedsBlank {
		metrics.RecordCapacityWarning("api_volume_exceeds_blank")
	}

	if s.cache != nil {
		s.cache.Set(key, out)
	}
	return out, nil
}

// InvalidateCache implements Calculator.
func (s *CalculatorService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func (s *CalculatorService) applyDefaults(raw model.RawBatchInput) model.RawBatchInput {
	if raw.OverageFraction == nil && s.defaultOverage != 0 {
		v := s.defaultOverage
		raw.OverageFraction = &v
	}
	if raw.RoundingStepG == nil && s.defaultStep != 0 {
		v := s.defaultStep
		raw.RoundingStepG = &v
	}
	return raw
}

// errorStatus maps a calculation error to a metrics status label.
func errorStatus(err error) string {
	var inputErr *compounding.InputError
	if errors.As(err, &inputErr) {
		return string(inputErr.Kind)
	}
	return "error"
}

// Fingerprint returns a canonical cache key for normalized inputs. Inputs
// that differ only in float formatting produce the same key.
func Fingerprint(in model.BatchInputs) string {
	var b strings.Builder
	b.Grow(64 + 48*len(in.Components))

	b.WriteString(strconv.Itoa(in.UnitCount))
	for _, v := range []float64{in.BlankWeightPerUnitG, in.BaseDensityGPerML, in.OverageFraction, in.RoundingStepG} {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	for _, c := range in.Components {
		b.WriteByte('|')
		b.WriteString(strconv.Quote(c.Name))
		for _, v := range []float64{c.AmountPerUnitG, c.DensityGPerML, c.DisplacementFactor} {
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return b.String()
}

var _ Calculator = (*CalculatorService)(nil)
