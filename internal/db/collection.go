package db

import (
	"context"

	"github.com/xnorik/xnorik-backend/internal/models"
)

// ServiceCollection defines the interface for service-record operations.
type ServiceCollection interface {
	InsertService(ctx context.Context, record models.ServiceRecord) (string, error)
	FindServiceByID(ctx context.Context, id string) (*models.ServiceRecord, error)
	FindServicesByOwner(ctx context.Context, ownerID string) ([]models.ServiceRecord, error)
	FindServiceByTrackingCode(ctx context.Context, code string) (*models.ServiceRecord, error)
	CountByTrackingCode(ctx context.Context, code string) (int64, error)
	AppendStatus(ctx context.Context, id string, from models.MaintenanceStatus, event models.StatusEvent) error
	DeleteService(ctx context.Context, id string) error
	WatchService(ctx context.Context, id string) (ServiceStream, error)
	WatchServices(ctx context.Context) (ServiceStream, error)
}

// ServiceStream is a live stream of record snapshots, pushed by the store
// on every matching change until explicitly closed.
type ServiceStream interface {
	Next(ctx context.Context) bool
	Record() (*models.ServiceRecord, error)
	Close(ctx context.Context) error
}

// TechnicianCollection defines the interface for technician account operations.
type TechnicianCollection interface {
	InsertTechnician(ctx context.Context, tech models.Technician) error
	FindTechnicianByID(ctx context.Context, id string) (*models.Technician, error)
	FindTechnicianByUsername(ctx context.Context, username string) (*models.Technician, error)
	FindTechnicianByEmail(ctx context.Context, email string) (*models.Technician, error)
	UpdateLastLogin(ctx context.Context, id string) error
}
