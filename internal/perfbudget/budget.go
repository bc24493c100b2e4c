// Package perfbudget compares page-weight and Core Web Vitals measurements
// against a YAML budget file and grades each metric for CI.
package perfbudget

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Threshold grades one metric: at or below Warning passes, above Budget is critical.
type Threshold struct {
	Warning float64 `yaml:"warning"`
	Budget  float64 `yaml:"budget"`
}

// SizeBudgets are byte budgets for the built assets.
type SizeBudgets struct {
	JavaScript Threshold `yaml:"javascript"`
	CSS        Threshold `yaml:"css"`
	Images     Threshold `yaml:"images"`
	Total      Threshold `yaml:"total"`
}

// WebVitalBudgets are Core Web Vitals budgets. Timings are milliseconds; CLS is unitless.
type WebVitalBudgets struct {
	LCP  Threshold `yaml:"lcp"`
	FID  Threshold `yaml:"fid"`
	CLS  Threshold `yaml:"cls"`
	TTFB Threshold `yaml:"ttfb"`
}

// Budget is the parsed budget file.
type Budget struct {
	Sizes     SizeBudgets     `yaml:"sizes"`
	WebVitals WebVitalBudgets `yaml:"web_vitals"`
}

// Load reads and validates a budget file.
func Load(path string) (*Budget, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading budget file: %w", err)
	}
	var b Budget
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("parsing budget file %s: %w", path, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate rejects missing or inverted thresholds.
func (b *Budget) Validate() error {
	var errs []error
	for _, m := range b.metrics() {
		switch {
		case m.threshold.Budget <= 0:
			errs = append(errs, fmt.Errorf("%s: budget must be positive", m.name))
		case m.threshold.Warning < 0 || m.threshold.Warning > m.threshold.Budget:
			errs = append(errs, fmt.Errorf("%s: warning must be between 0 and budget", m.name))
		}
	}
	return errors.Join(errs...)
}

type metricDef struct {
	name      string
	unit      Unit
	threshold Threshold
	value     func(Measurements) float64
}

func (b *Budget) metrics() []metricDef {
	return []metricDef{
		{"javascript", UnitBytes, b.Sizes.JavaScript, func(m Measurements) float64 { return float64(m.JavaScriptBytes) }},
		{"css", UnitBytes, b.Sizes.CSS, func(m Measurements) float64 { return float64(m.CSSBytes) }},
		{"images", UnitBytes, b.Sizes.Images, func(m Measurements) float64 { return float64(m.ImageBytes) }},
		{"total", UnitBytes, b.Sizes.Total, func(m Measurements) float64 { return float64(m.TotalBytes()) }},
		{"lcp", UnitMillis, b.WebVitals.LCP, func(m Measurements) float64 { return m.LCPMillis }},
		{"fid", UnitMillis, b.WebVitals.FID, func(m Measurements) float64 { return m.FIDMillis }},
		{"cls", UnitScore, b.WebVitals.CLS, func(m Measurements) float64 { return m.CLS }},
		{"ttfb", UnitMillis, b.WebVitals.TTFB, func(m Measurements) float64 { return m.TTFBMillis }},
	}
}
