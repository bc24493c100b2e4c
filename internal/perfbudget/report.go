package perfbudget

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Level is a metric's grade.
type Level string

const (
	LevelPass     Level = "pass"
	LevelWarn     Level = "warn"
	LevelCritical Level = "critical"
)

// Unit controls how a value is printed.
type Unit string

const (
	UnitBytes  Unit = "bytes"
	UnitMillis Unit = "ms"
	UnitScore  Unit = ""
)

// Classify grades value against t.
func Classify(value float64, t Threshold) Level {
	switch {
	case value > t.Budget:
		return LevelCritical
	case value > t.Warning:
		return LevelWarn
	default:
		return LevelPass
	}
}

// Result is one graded metric.
type Result struct {
	Metric  string
	Unit    Unit
	Value   float64
	Warning float64
	Budget  float64
	Level   Level
}

// Report holds every graded metric in budget-file order.
type Report struct {
	Results []Result
}

// Evaluate grades m against b.
func Evaluate(b *Budget, m Measurements) Report {
	defs := b.metrics()
	r := Report{Results: make([]Result, 0, len(defs))}
	for _, d := range defs {
		v := d.value(m)
		r.Results = append(r.Results, Result{
			Metric:  d.name,
			Unit:    d.unit,
			Value:   v,
			Warning: d.threshold.Warning,
			Budget:  d.threshold.Budget,
			Level:   Classify(v, d.threshold),
		})
	}
	return r
}

// Count returns how many results have level l.
func (r Report) Count(l Level) int {
	n := 0
	for _, res := range r.Results {
		if res.Level == l {
			n++
		}
	}
	return n
}

// HasCritical reports whether any metric is over budget.
func (r Report) HasCritical() bool {
	return r.Count(LevelCritical) > 0
}

func formatValue(v float64, u Unit) string {
	switch u {
	case UnitBytes:
		return fmt.Sprintf("%.1f KiB", v/1024)
	case UnitMillis:
		return fmt.Sprintf("%.0f ms", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}

// Write prints the report as an aligned table followed by a summary line.
func (r Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE\tWARNING\tBUDGET\tSTATUS")
	for _, res := range r.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			res.Metric,
			formatValue(res.Value, res.Unit),
			formatValue(res.Warning, res.Unit),
			formatValue(res.Budget, res.Unit),
			strings.ToUpper(string(res.Level)),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d passed, %d warnings, %d critical\n",
		r.Count(LevelPass), r.Count(LevelWarn), r.Count(LevelCritical))
	return err
}
