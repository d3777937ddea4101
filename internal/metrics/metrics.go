// Package metrics exposes the link layer's prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// LinksCreatedTotal counts successfully persisted links
	LinksCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "linkgraph_links_created_total",
			Help: "Total number of links created",
		},
	)

	// LinksRemovedTotal counts removed links
	LinksRemovedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "linkgraph_links_removed_total",
			Help: "Total number of links removed",
		},
	)

	// CreateRejectedTotal counts soft rejections by reason
	CreateRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkgraph_create_rejected_total",
			Help: "Total number of link creations rejected without error",
		},
		[]string{"reason"},
	)

	// CreateFailedTotal counts fatal validation failures by stage
	CreateFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkgraph_create_failed_total",
			Help: "Total number of link creations failed by validation stage",
		},
		[]string{"stage"},
	)

	// RuleWarningsTotal counts business-rule warnings by link type
	RuleWarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkgraph_rule_warnings_total",
			Help: "Total number of business-rule warnings attached to created links",
		},
		[]string{"link_type"},
	)
)

// Soft rejection reasons.
const (
	ReasonExactDuplicate     = "exact-duplicate"
	ReasonCanonicalDuplicate = "canonical-duplicate"
)

// Fatal validation stages.
const (
	StageCompatibility = "compatibility"
	StageExistence     = "existence"
	StageStore         = "store"
)

func init() {
	prometheus.MustRegister(LinksCreatedTotal)
	prometheus.MustRegister(LinksRemovedTotal)
	prometheus.MustRegister(CreateRejectedTotal)
	prometheus.MustRegister(CreateFailedTotal)
	prometheus.MustRegister(RuleWarningsTotal)
}
