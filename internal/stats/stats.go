// Package stats implements the optional HTTP introspection surface:
// /healthz and /api/streams. Grounded on the health and API services, with
// the relay/transcode-specific endpoints dropped since this server has no
// such subsystems; /api/streams is adapted from the registry's
// app/name-keyed stream list to this server's sequential uint16 ids.
package stats

import (
	"encoding/json"
	"net/http"
	"time"

	"rvideo/internal/registry"
)

// Service exposes server state over plain HTTP for operators and
// integration tests. It never touches frame data and is entirely optional:
// the root package only starts it when StatsAddr is configured.
type Service struct {
	reg       *registry.Registry
	startTime time.Time
}

// New returns a Service bound to reg.
func New(reg *registry.Registry) *Service {
	return &Service{reg: reg, startTime: time.Now()}
}

// RegisterRoutes adds this service's routes to mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/streams", s.handleStreams)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// StreamInfo is the /api/streams entry for one registered stream.
type StreamInfo struct {
	StreamID        uint16 `json:"stream_id"`
	Format          string `json:"format"`
	Width           uint16 `json:"width"`
	Height          uint16 `json:"height"`
	SubscriberCount int    `json:"subscriber_count"`
}

// StreamsResponse is the /api/streams payload.
type StreamsResponse struct {
	UptimeSeconds int64        `json:"uptime_seconds"`
	Streams       []StreamInfo `json:"streams"`
}

func (s *Service) handleStreams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	resp := StreamsResponse{
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Streams:       s.listStreams(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Service) listStreams() []StreamInfo {
	ids := s.reg.Snapshot()
	out := make([]StreamInfo, 0, len(ids))
	for _, id := range ids {
		st, ok := s.reg.Lookup(id)
		if !ok {
			continue
		}
		info := st.Info()
		out = append(out, StreamInfo{
			StreamID:        info.StreamID,
			Format:          info.Format.String(),
			Width:           info.Width,
			Height:          info.Height,
			SubscriberCount: st.SubscriberCount(),
		})
	}
	return out
}
