package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchDuration tracks wall time of a full BestMove call by depth.
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gobang_search_duration_seconds",
		Help:    "AI move search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~30s
	}, []string{"depth"})

	searchNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gobang_search_nodes_total",
		Help: "Positions visited by the AI search",
	})

	movesPlayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gobang_moves_total",
		Help: "Moves applied to the session board by player and outcome",
	}, []string{"player", "outcome"})

	movesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gobang_moves_rejected_total",
		Help: "Moves rejected by the session by reason",
	}, []string{"reason"})

	gamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gobang_games_started_total",
		Help: "Sessions started by mode",
	}, []string{"mode"})

	wsClients = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gobang_ws_clients",
		Help: "Connected WebSocket clients by feed",
	}, []string{"feed"})
)
