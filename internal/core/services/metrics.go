package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kanso_store_mutations_total",
		Help: "Settled habit store mutations by kind",
	}, []string{"kind"})

	storeRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kanso_store_rejections_total",
		Help: "Mutations rejected by validation, by kind",
	}, []string{"kind"})

	storesHydratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kanso_stores_hydrated_total",
		Help: "Habit stores loaded into the registry",
	})
)
