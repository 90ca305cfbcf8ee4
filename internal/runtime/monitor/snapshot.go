package monitor

import (
	"net/http"
	"time"

	"github.com/drblury/slapulse/internal/runtime/jsoncodec"
	"github.com/drblury/slapulse/internal/runtime/sampling"
)

// Snapshot is a point-in-time view of the monitor's state, suitable for a
// debug endpoint or operational tooling.
type Snapshot struct {
	Endpoint                 string                  `json:"endpoint"`
	EndpointSLASeconds       float64                 `json:"endpoint_sla_seconds"`
	EstimatedSecondsToBreach int64                   `json:"estimated_seconds_to_breach"`
	Samples                  []sampling.TimingSample `json:"samples"`
	CollectedAt              time.Time               `json:"collected_at"`
}

// Snapshot returns an independent copy of the monitor's current state.
func (m *Monitor) Snapshot() Snapshot {
	return Snapshot{
		Endpoint:                 m.cfg.EndpointName,
		EndpointSLASeconds:       m.cfg.EndpointSLA.Seconds(),
		EstimatedSecondsToBreach: m.Estimate(),
		Samples:                  m.window.Snapshot(),
		CollectedAt:              time.Now().UTC(),
	}
}

// SnapshotHandler serves the monitor's Snapshot as JSON, for mounting on a
// debug port.
func (m *Monitor) SnapshotHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := jsoncodec.Encode(w, m.Snapshot()); err != nil {
			m.log.Error("Failed to encode monitor snapshot", err, nil)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})
}
