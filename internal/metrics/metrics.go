package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label names
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelResult     = "result"
	LabelDifficulty = "difficulty"
	LabelSource     = "source"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Engine Metrics
var (
	SnapshotLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_loads_total",
			Help: "Total number of state snapshot loads",
		},
		[]string{LabelResult},
	)

	QuestsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quests_completed_total",
			Help: "Total number of quests completed",
		},
	)

	QuestCompletionsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quest_completions_dropped_total",
			Help: "Completion attempts dropped by the in-flight guard",
		},
	)

	RewardsRepaired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rewards_repaired_total",
			Help: "Missing reward items re-granted by the verification sweep",
		},
	)

	Purchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_total",
			Help: "Total number of shop purchase attempts",
		},
		[]string{LabelResult},
	)

	EntrobucksEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "entrobucks_earned_total",
			Help: "Total entrobucks credited",
		},
	)

	EntrobucksSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "entrobucks_spent_total",
			Help: "Total entrobucks debited",
		},
	)

	DropRolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drop_rolls_total",
			Help: "Total number of minigame drop rolls",
		},
		[]string{LabelDifficulty, LabelResult},
	)

	ModifiersActivated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "modifiers_activated_total",
			Help: "Total number of modifier activations",
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published",
		},
		[]string{"type"},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_handler_errors_total",
			Help: "Total number of event handler errors",
		},
		[]string{"type"},
	)
)
