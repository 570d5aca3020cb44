// Scramble metrics comparing a grid with its transformed version
package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"arnold-cat-map/internal/catmap"
)

// ErrDimensionMismatch is returned when the compared grids differ in size.
var ErrDimensionMismatch = errors.New("image dimensions mismatch")

// Metric defines the interface for comparison metrics
type Metric interface {
	// Calculate computes the metric value
	Calculate(original, processed *catmap.Grid) (float64, error)

	GetName() string
	GetDescription() string

	// GetRange returns the value range (min, max)
	GetRange() (float64, float64)

	// IsHigherBetter reports whether higher values mean closer to the original
	IsHigherBetter() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}
	e.RegisterDefaultMetrics()
	return e
}

// RegisterDefaultMetrics registers all default metrics
func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("mse", NewMSE())
	e.Register("psnr", NewPSNR())
	e.Register("displaced", NewDisplaced())
}

func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Names returns the registered metric names in sorted order.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calculate calculates a specific metric
func (e *Evaluator) Calculate(name string, original, processed *catmap.Grid) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}
	return metric.Calculate(original, processed)
}

// CalculateAll calculates all registered metrics, skipping failures
func (e *Evaluator) CalculateAll(original, processed *catmap.Grid) map[string]float64 {
	results := make(map[string]float64)
	for name, metric := range e.metrics {
		if value, err := metric.Calculate(original, processed); err == nil {
			results[name] = value
		}
	}
	return results
}

// MetricInfo provides metadata about a metric
type MetricInfo struct {
	Name         string
	Description  string
	Range        [2]float64 // [min, max]
	HigherBetter bool
}

func (e *Evaluator) GetMetricInfo() map[string]MetricInfo {
	info := make(map[string]MetricInfo)
	for name, metric := range e.metrics {
		lo, hi := metric.GetRange()
		info[name] = MetricInfo{
			Name:         metric.GetName(),
			Description:  metric.GetDescription(),
			Range:        [2]float64{lo, hi},
			HigherBetter: metric.IsHigherBetter(),
		}
	}
	return info
}

// Report summarises how far a result has drifted from its original.
type Report struct {
	Scramble  float64 // 0 identical, 100 fully scrambled
	Level     string
	Metrics   map[string]float64
	Timestamp string
}

// GenerateReport computes all metrics and a scramble score.
func (e *Evaluator) GenerateReport(original, processed *catmap.Grid) Report {
	values := e.CalculateAll(original, processed)
	score := e.scrambleScore(values)

	var level string
	switch {
	case score == 0:
		level = "identical"
	case score < 25:
		level = "light"
	case score < 75:
		level = "moderate"
	default:
		level = "heavy"
	}

	return Report{
		Scramble:  score,
		Level:     level,
		Metrics:   values,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	}
}

// scrambleScore maps the metrics onto 0..100 with higher meaning further
// from the original.
func (e *Evaluator) scrambleScore(values map[string]float64) float64 {
	weights := map[string]float64{
		"displaced": 0.6,
		"psnr":      0.4,
	}

	totalWeight, weightedSum := 0.0, 0.0
	for name, weight := range weights {
		value, ok := values[name]
		if !ok {
			continue
		}
		weightedSum += (1 - e.normalizeMetric(name, value)) * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight * 100
}

// normalizeMetric maps a value onto 0..1 where 1 means identical.
func (e *Evaluator) normalizeMetric(name string, value float64) float64 {
	metric, exists := e.metrics[name]
	if !exists {
		return 0
	}

	lo, hi := metric.GetRange()
	value = math.Max(lo, math.Min(hi, value))
	if hi == lo {
		return 1
	}

	normalized := (value - lo) / (hi - lo)
	if !metric.IsHigherBetter() {
		normalized = 1 - normalized
	}
	return normalized
}

func checkPair(original, processed *catmap.Grid) error {
	if err := original.Validate(); err != nil {
		return err
	}
	if err := processed.Validate(); err != nil {
		return err
	}
	if original.Width != processed.Width || original.Height != processed.Height {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			original.Width, original.Height, processed.Width, processed.Height)
	}
	return nil
}
