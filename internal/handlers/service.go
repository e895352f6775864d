package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xnorik/xnorik-backend/internal/db"
	"github.com/xnorik/xnorik-backend/internal/middleware"
	"github.com/xnorik/xnorik-backend/internal/models"
	"github.com/xnorik/xnorik-backend/internal/status"
	"github.com/xnorik/xnorik-backend/internal/tracking"
	"github.com/xnorik/xnorik-backend/internal/workflow"
)

// codeGenerationAttempts bounds the retry loop when a freshly generated
// tracking code collides with an existing record.
const codeGenerationAttempts = 3

// ServiceHandler handles service-record requests
type ServiceHandler struct {
	services db.ServiceCollection
}

// NewServiceHandler creates a new service-record handler
func NewServiceHandler(services db.ServiceCollection) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// Create registers a new service record for the calling technician. The
// record is seeded with a pending status event and a fresh tracking code.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetTechnicianFromContext(r.Context())
	if !ok {
		http.Error(w, "Technician context not found", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req models.CreateServiceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	for field, value := range req.RequiredFields() {
		if strings.TrimSpace(value) == "" {
			http.Error(w, "Field is required: "+field, http.StatusBadRequest)
			return
		}
	}

	code, err := h.uniqueTrackingCode(r)
	if err != nil {
		http.Error(w, "Failed to generate tracking code", http.StatusInternalServerError)
		return
	}

	seed := workflow.NewSeedEvent(time.Now())
	record := models.ServiceRecord{
		TrackingCode:      code,
		OwnerID:           claims.TechnicianID,
		ClientName:        req.ClientName,
		ClientAddress:     req.ClientAddress,
		ClientIDNumber:    req.ClientIDNumber,
		ClientPhone:       req.ClientPhone,
		ClientEmail:       req.ClientEmail,
		TechnicianName:    req.TechnicianName,
		TechnicianPhone:   req.TechnicianPhone,
		TechnicianEmail:   req.TechnicianEmail,
		OperatingSystem:   req.OperatingSystem,
		ComputerBrand:     req.ComputerBrand,
		ComputerType:      req.ComputerType,
		MaintenanceType:   req.MaintenanceType,
		KeyboardState:     req.KeyboardState,
		ScreenState:       req.ScreenState,
		MouseState:        req.MouseState,
		DVDState:          req.DVDState,
		CaseState:         req.CaseState,
		WorksCorrectly:    req.WorksCorrectly,
		Observations:      req.Observations,
		CurrentStatus:     seed.Status,
		MaintenanceStates: []models.StatusEvent{seed},
	}

	id, err := h.services.InsertService(r.Context(), record)
	if err != nil {
		http.Error(w, "Failed to create service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"id":            id,
		"tracking_code": record.TrackingCode,
	})
}

// List returns the records owned by the calling technician, newest first.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetTechnicianFromContext(r.Context())
	if !ok {
		http.Error(w, "Technician context not found", http.StatusUnauthorized)
		return
	}

	records, err := h.services.FindServicesByOwner(r.Context(), claims.TechnicianID)
	if err != nil {
		http.Error(w, "Failed to load services", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.ServiceRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// Get returns one record owned by the calling technician.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, ok := h.ownedRecord(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// Start begins maintenance on a pending record, moving it to diagnosis.
func (h *ServiceHandler) Start(w http.ResponseWriter, r *http.Request) {
	record, ok := h.ownedRecord(w, r)
	if !ok {
		return
	}

	from := record.CurrentStatus
	event, err := workflow.Start(record, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	h.persistTransition(w, r, record, from, event)
}

// Advance moves a record one stage forward, with optional technician notes.
func (h *ServiceHandler) Advance(w http.ResponseWriter, r *http.Request) {
	record, ok := h.ownedRecord(w, r)
	if !ok {
		return
	}

	var req models.AdvanceStatusRequest
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
	}

	from := record.CurrentStatus
	event, err := workflow.Advance(record, req.Notes, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	h.persistTransition(w, r, record, from, event)
}

// Delete removes a record. Any authenticated technician may delete any
// record, matching the current product behavior.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := middleware.GetTechnicianFromContext(r.Context()); !ok {
		http.Error(w, "Technician context not found", http.StatusUnauthorized)
		return
	}

	err := h.services.DeleteService(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Service deleted successfully"})
}

// ownedRecord loads the record from the path id and enforces ownership.
// On failure it writes the error response and returns false.
func (h *ServiceHandler) ownedRecord(w http.ResponseWriter, r *http.Request) (*models.ServiceRecord, bool) {
	claims, ok := middleware.GetTechnicianFromContext(r.Context())
	if !ok {
		http.Error(w, "Technician context not found", http.StatusUnauthorized)
		return nil, false
	}

	record, err := h.services.FindServiceByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "Failed to load service", http.StatusInternalServerError)
		return nil, false
	}

	if record.OwnerID != claims.TechnicianID {
		http.Error(w, "Access denied", http.StatusForbidden)
		return nil, false
	}
	return record, true
}

// persistTransition writes an applied transition through the store and
// responds with the updated record. A stale-status race surfaces as a
// conflict; the in-memory mutation is never returned on failure.
func (h *ServiceHandler) persistTransition(w http.ResponseWriter, r *http.Request, record *models.ServiceRecord, from models.MaintenanceStatus, event models.StatusEvent) {
	err := h.services.AppendStatus(r.Context(), record.ID.Hex(), from, event)
	if err != nil {
		if errors.Is(err, db.ErrStaleStatus) {
			http.Error(w, "Service status changed concurrently", http.StatusConflict)
			return
		}
		if errors.Is(err, db.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	label, _, _ := status.Describe(event.Status)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":  "Cambiado a " + label,
		"record":   record,
		"progress": workflow.Progress(record),
	})
}

// uniqueTrackingCode generates a code and retries on collision. The unique
// store index is the real guard; this just keeps collisions off the happy path.
func (h *ServiceHandler) uniqueTrackingCode(r *http.Request) (string, error) {
	var code string
	for attempt := 0; attempt < codeGenerationAttempts; attempt++ {
		generated, err := tracking.GenerateCode()
		if err != nil {
			return "", err
		}
		code = generated

		n, err := h.services.CountByTrackingCode(r.Context(), code)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return code, nil
		}
	}
	return code, nil
}
