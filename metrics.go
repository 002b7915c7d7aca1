package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/crillab/gophercast/solver"
)

// newMetricsRegistry returns a registry holding the statistics of res.
func newMetricsRegistry(res solver.Result) *prometheus.Registry {
	gauge := func(name, help string, val float64) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "gophercast", Name: name, Help: help})
		g.Set(val)
		return g
	}
	feasible := 0.0
	if res.Status == solver.Feasible {
		feasible = 1
	}
	cuts := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gophercast",
		Name:      "cuts",
		Help:      "Number of sibling loops aborted by each cut.",
	}, []string{"cut"})
	cuts.WithLabelValues("optimality").Set(float64(res.Stats.NbOptimalityCuts))
	cuts.WithLabelValues("feasibility").Set(float64(res.Stats.NbFeasibilityCuts))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		gauge("nodes_generated", "Number of nodes generated by expansion.", float64(res.Stats.NbGenerated)),
		gauge("nodes_visited", "Number of nodes explored.", float64(res.Stats.NbVisited)),
		gauge("improvements", "Number of times the best solution was replaced.", float64(res.Stats.NbImprovements)),
		gauge("feasible", "1 if a solution was found, 0 otherwise.", feasible),
		gauge("solution_cost", "Cost of the best solution, 0 if none.", float64(res.Cost)),
		gauge("solve_seconds", "Time spent searching.", res.Stats.Elapsed.Seconds()),
		cuts,
	)
	return reg
}

// writeMetrics writes the statistics of res to path, in the Prometheus text format.
func writeMetrics(path string, res solver.Result) error {
	if err := prometheus.WriteToTextfile(path, newMetricsRegistry(res)); err != nil {
		return fmt.Errorf("could not write metrics to %q: %w", path, err)
	}
	return nil
}
