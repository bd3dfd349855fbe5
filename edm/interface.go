package edm

import "context"

// ChangeDetector types calculate change points.
type ChangeDetector interface {
	DetectChanges(context.Context, []float64) ([]ChangePoint, error)
}

// ChangePoint is a single breakout location. Statistic is only populated
// by the single change detectors.
type ChangePoint struct {
	Index     int           `json:"index" yaml:"index"`
	Statistic float64       `json:"statistic,omitempty" yaml:"statistic,omitempty"`
	Info      AlgorithmInfo `json:"algorithm" yaml:"algorithm"`
}

type AlgorithmInfo struct {
	Name    string            `json:"name" yaml:"name"`
	Version int               `json:"version" yaml:"version"`
	Options []AlgorithmOption `json:"options" yaml:"options"`
}

type AlgorithmOption struct {
	Name  string      `json:"name" yaml:"name"`
	Value interface{} `json:"value" yaml:"value"`
}
