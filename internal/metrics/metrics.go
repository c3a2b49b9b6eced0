package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CellUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grid_cell_upserts_total",
		Help: "Cell writes by table and outcome.",
	}, []string{"table", "outcome"})

	OperationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grid_operation_failures_total",
		Help: "Failed grid operations by table and failure kind.",
	}, []string{"table", "kind"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grid_cache_lookups_total",
		Help: "Materialized grid cache lookups by result.",
	}, []string{"result"})
)
