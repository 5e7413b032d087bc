// Quality metrics comparing interpolation results
package metrics

import (
	"fmt"
	"sort"
	"time"

	"interpolation-preview/internal/resample"
)

// Metric defines the interface for quality metrics
type Metric interface {
	// Calculate computes the metric value for two buffers of equal size
	Calculate(reference, processed *resample.Buffer) (float64, error)

	GetName() string
	GetDescription() string

	// GetRange returns the practical value range (min, max)
	GetRange() (float64, float64)

	IsHigherBetter() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates an evaluator with the default metrics registered
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}
	e.RegisterDefaultMetrics()
	return e
}

func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("psnr", NewPSNR())
	e.Register("ssim", NewSSIM())
	e.Register("mse", NewMSE())
	e.Register("max_abs_diff", NewMaxAbsDiff())
	e.Register("sharpness", NewSharpness())
}

func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Names returns the registered metric names sorted.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Evaluator) Calculate(name string, reference, processed *resample.Buffer) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}
	return metric.Calculate(reference, processed)
}

// CalculateAll calculates all registered metrics, skipping failures
func (e *Evaluator) CalculateAll(reference, processed *resample.Buffer) map[string]float64 {
	results := make(map[string]float64)
	for name, metric := range e.metrics {
		if value, err := metric.Calculate(reference, processed); err == nil {
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
		min, max := metric.GetRange()
		info[name] = MetricInfo{
			Name:         metric.GetName(),
			Description:  metric.GetDescription(),
			Range:        [2]float64{min, max},
			HigherBetter: metric.IsHigherBetter(),
		}
	}
	return info
}

// QualityReport contains a comparison summary
type QualityReport struct {
	OverallScore float64            `json:"overall_score"`
	Metrics      map[string]float64 `json:"metrics"`
	Analysis     QualityAnalysis    `json:"analysis"`
	Timestamp    string             `json:"timestamp"`
}

// QualityAnalysis provides interpretation of metrics
type QualityAnalysis struct {
	QualityLevel string   `json:"quality_level"` // "excellent", "good", "fair", "poor"
	Issues       []string `json:"issues"`
}

func (e *Evaluator) GenerateReport(reference, processed *resample.Buffer) QualityReport {
	metrics := e.CalculateAll(reference, processed)
	return QualityReport{
		OverallScore: e.calculateOverallScore(metrics),
		Metrics:      metrics,
		Analysis:     e.analyzeQuality(metrics),
		Timestamp:    time.Now().Format("2006-01-02 15:04:05"),
	}
}

// calculateOverallScore is a weighted mean of normalized metrics, in percent
func (e *Evaluator) calculateOverallScore(metrics map[string]float64) float64 {
	weights := map[string]float64{
		"psnr": 0.4,
		"ssim": 0.4,
		"mse":  0.2,
	}

	totalWeight := 0.0
	weightedSum := 0.0
	for name, weight := range weights {
		if value, exists := metrics[name]; exists {
			weightedSum += e.normalizeMetric(name, value) * weight
			totalWeight += weight
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return (weightedSum / totalWeight) * 100
}

// normalizeMetric maps a value into 0..1 where 1 is best
func (e *Evaluator) normalizeMetric(name string, value float64) float64 {
	metric, exists := e.metrics[name]
	if !exists {
		return 0
	}

	min, max := metric.GetRange()
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	if max == min {
		return 1.0
	}

	normalized := (value - min) / (max - min)
	if !metric.IsHigherBetter() {
		normalized = 1.0 - normalized
	}
	return normalized
}

func (e *Evaluator) analyzeQuality(metrics map[string]float64) QualityAnalysis {
	analysis := QualityAnalysis{
		Issues: make([]string, 0),
	}

	overallScore := e.calculateOverallScore(metrics)
	switch {
	case overallScore >= 90:
		analysis.QualityLevel = "excellent"
	case overallScore >= 75:
		analysis.QualityLevel = "good"
	case overallScore >= 60:
		analysis.QualityLevel = "fair"
	default:
		analysis.QualityLevel = "poor"
	}

	if psnr, exists := metrics["psnr"]; exists && psnr < 20 {
		analysis.Issues = append(analysis.Issues, "Low PSNR: results differ strongly from the reference")
	}
	if ssim, exists := metrics["ssim"]; exists && ssim < 0.7 {
		analysis.Issues = append(analysis.Issues, "Low SSIM: structure is not preserved")
	}
	if sharp, exists := metrics["sharpness"]; exists && sharp < 0.5 {
		analysis.Issues = append(analysis.Issues, "Edges are much softer than in the reference")
	}
	return analysis
}
