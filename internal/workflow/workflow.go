package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/xnorik/xnorik-backend/internal/models"
	"github.com/xnorik/xnorik-backend/internal/status"
)

var (
	ErrAlreadyStarted = errors.New("maintenance already started")
	ErrCompleted      = errors.New("maintenance already completed")
	ErrUnknownStatus  = errors.New("unknown maintenance status")
)

// NewSeedEvent returns the initial pending event every record is created with.
func NewSeedEvent(now time.Time) models.StatusEvent {
	return models.StatusEvent{
		Status:    models.StatusPending,
		UpdatedAt: now,
		Notes:     "Servicio creado",
	}
}

// Start moves a pending record into diagnosis. Any other current status is
// rejected and the record is left unchanged.
func Start(rec *models.ServiceRecord, now time.Time) (models.StatusEvent, error) {
	if rec.CurrentStatus != models.StatusPending {
		if rec.CurrentStatus == models.StatusCompleted {
			return models.StatusEvent{}, ErrCompleted
		}
		return models.StatusEvent{}, ErrAlreadyStarted
	}

	event := models.StatusEvent{
		Status:    models.StatusDiagnosis,
		UpdatedAt: now,
		Notes:     "Mantenimiento iniciado",
	}
	apply(rec, event)
	return event, nil
}

// Advance moves a record exactly one stage forward in the workflow order.
// Skipping stages is not supported. When notes is empty a default label is
// generated from the target stage. A completed record is rejected and left
// unchanged.
func Advance(rec *models.ServiceRecord, notes string, now time.Time) (models.StatusEvent, error) {
	if status.IndexOf(rec.CurrentStatus) < 0 {
		return models.StatusEvent{}, fmt.Errorf("%w: %q", ErrUnknownStatus, rec.CurrentStatus)
	}

	next, ok := status.Next(rec.CurrentStatus)
	if !ok {
		return models.StatusEvent{}, ErrCompleted
	}

	if notes == "" {
		label, _, _ := status.Describe(next)
		notes = "Cambiado a " + label
	}

	event := models.StatusEvent{
		Status:    next,
		UpdatedAt: now,
		Notes:     notes,
	}
	apply(rec, event)
	return event, nil
}

// Progress returns the completion percentage for the record's current status.
func Progress(rec *models.ServiceRecord) int {
	if rec == nil || rec.CurrentStatus == "" {
		return 0
	}
	return status.Progress(rec.CurrentStatus)
}

func apply(rec *models.ServiceRecord, event models.StatusEvent) {
	rec.CurrentStatus = event.Status
	rec.MaintenanceStates = append(rec.MaintenanceStates, event)
}
