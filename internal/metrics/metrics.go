// Package metrics exposes prometheus collectors for the simulation loop.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomz197/voidfighter/internal/world"
)

const namespace = "voidfighter"

// Recorder owns a private registry so several recorders can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	sessions     prometheus.Gauge
	shots        *prometheus.CounterVec
	emptyTrigger prometheus.Counter
	kills        prometheus.Counter
	playerHits   prometheus.Counter
	gameOvers    prometheus.Counter
	dropped      prometheus.Counter
}

// New creates a recorder with Go runtime and process collectors attached.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks run across all sessions.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent inside one simulation tick.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently running a world.",
		}),
		shots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shots_fired_total",
			Help:      "Player projectiles fired, by weapon.",
		}, []string{"weapon"}),
		emptyTrigger: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_trigger_total",
			Help:      "Trigger pulls on a weapon without ammo.",
		}),
		kills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enemies_destroyed_total",
			Help:      "Enemy ships destroyed.",
		}),
		playerHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_hits_total",
			Help:      "Enemy projectiles that struck a player.",
		}),
		gameOvers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "game_overs_total",
			Help:      "Player ships destroyed.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_dropped_total",
			Help:      "Snapshots a slow spectator could not accept.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.ticks, r.tickDuration, r.sessions, r.shots, r.emptyTrigger,
		r.kills, r.playerHits, r.gameOvers, r.dropped,
	)
	return r
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveTick records one tick and the events it raised.
func (r *Recorder) ObserveTick(d time.Duration, events []world.Event) {
	r.ticks.Inc()
	r.tickDuration.Observe(d.Seconds())

	for _, ev := range events {
		switch ev.Type {
		case world.EventFired:
			r.shots.WithLabelValues(ev.Weapon).Inc()
		case world.EventNoAmmo:
			r.emptyTrigger.Inc()
		case world.EventEnemyDestroyed:
			r.kills.Inc()
		case world.EventPlayerHit:
			r.playerHits.Inc()
		case world.EventGameOver:
			r.gameOvers.Inc()
		}
	}
}

// SessionStarted increments the active session gauge.
func (r *Recorder) SessionStarted() { r.sessions.Inc() }

// SessionEnded decrements the active session gauge.
func (r *Recorder) SessionEnded() { r.sessions.Dec() }

// SnapshotDropped counts a snapshot a spectator was too slow to take.
func (r *Recorder) SnapshotDropped() { r.dropped.Inc() }
