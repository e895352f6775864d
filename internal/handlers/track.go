package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xnorik/xnorik-backend/internal/models"
	"github.com/xnorik/xnorik-backend/internal/tracking"
	"github.com/xnorik/xnorik-backend/internal/workflow"
)

// TrackHandler serves the public tracking endpoints. No authentication:
// holding the code is the only credential.
type TrackHandler struct {
	resolver *tracking.Resolver
	watcher  *tracking.Watcher
}

// NewTrackHandler creates a new tracking handler
func NewTrackHandler(resolver *tracking.Resolver, watcher *tracking.Watcher) *TrackHandler {
	return &TrackHandler{resolver: resolver, watcher: watcher}
}

// trackResponse is the public view of a lookup. A miss is a normal result,
// not a failure.
type trackResponse struct {
	Found    bool                  `json:"found"`
	Message  string                `json:"message,omitempty"`
	Record   *models.ServiceRecord `json:"record,omitempty"`
	Progress int                   `json:"progress,omitempty"`
}

// Lookup resolves a tracking code to its service record.
func (h *TrackHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	record, found, err := h.resolver.Resolve(r.Context(), r.PathValue("code"))
	if err != nil {
		http.Error(w, "Failed to look up tracking code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !found {
		json.NewEncoder(w).Encode(trackResponse{
			Found:   false,
			Message: "No se encontró ningún servicio con ese código",
		})
		return
	}

	json.NewEncoder(w).Encode(trackResponse{
		Found:    true,
		Record:   record,
		Progress: workflow.Progress(record),
	})
}

// Live streams status changes for a tracking code as Server-Sent Events.
// The subscription is released when the client disconnects.
func (h *TrackHandler) Live(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	record, found, err := h.resolver.Resolve(r.Context(), r.PathValue("code"))
	if err != nil {
		http.Error(w, "Failed to look up tracking code", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "No service matches that tracking code", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	changes, err := h.watcher.Watch(r.Context(), record)
	if err != nil {
		http.Error(w, "Failed to open live subscription", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Initial snapshot so the client renders the current state immediately.
	writeEvent(w, "snapshot", trackResponse{
		Found:    true,
		Record:   record,
		Progress: workflow.Progress(record),
	})
	flusher.Flush()

	for change := range changes {
		writeEvent(w, "status", change)
		flusher.Flush()
	}
}

func writeEvent(w http.ResponseWriter, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	w.Write([]byte("event: " + event + "\n"))
	w.Write([]byte("data: " + string(data) + "\n\n"))
}
