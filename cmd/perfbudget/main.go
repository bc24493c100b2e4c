// Command perfbudget grades the frontend build against perf-budget.yaml.
// In production mode it exits non-zero when any metric is over budget.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"referral-network-api/internal/perfbudget"
)

func main() {
	configPath := flag.String("config", "perf-budget.yaml", "path to the budget file")
	env := flag.String("env", os.Getenv("PERF_BUDGET_ENV"), "environment; production fails on critical metrics")
	flag.Parse()

	budget, err := perfbudget.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load budget: %v", err)
	}

	report := perfbudget.Evaluate(budget, perfbudget.Simulated())
	if err := report.Write(os.Stdout); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}

	if report.HasCritical() {
		if strings.EqualFold(strings.TrimSpace(*env), "production") {
			log.Printf("performance budget exceeded")
			os.Exit(1)
		}
		log.Printf("performance budget exceeded (not failing outside production)")
	}
}
