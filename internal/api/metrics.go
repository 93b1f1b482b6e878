package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// analysesTotal counts pipeline runs by workflow and outcome
	// (ok | empty | rejected | error).
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procdash_analyses_total",
			Help: "Total analysis runs by workflow and outcome",
		},
		[]string{"workflow", "outcome"},
	)

	// processedRowsTotal counts rows in processed record sets.
	processedRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procdash_processed_rows_total",
			Help: "Total rows emitted by processed record sets",
		},
		[]string{"workflow"},
	)

	// uploadBytesTotal counts received upload payload bytes.
	uploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procdash_upload_bytes_total",
			Help: "Total bytes received in spreadsheet uploads",
		},
		[]string{"workflow"},
	)
)
