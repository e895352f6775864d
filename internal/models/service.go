package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceStatus represents one stage of the repair workflow.
type MaintenanceStatus string

const (
	StatusPending   MaintenanceStatus = "pending"
	StatusDiagnosis MaintenanceStatus = "diagnosis"
	StatusCleaning  MaintenanceStatus = "cleaning"
	StatusRepair    MaintenanceStatus = "repair"
	StatusTesting   MaintenanceStatus = "testing"
	StatusCompleted MaintenanceStatus = "completed"
)

// StatusEvent is one entry of a record's status history. Events are
// appended on every transition and never reordered or removed.
type StatusEvent struct {
	Status    MaintenanceStatus `json:"status" bson:"status"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
	Notes     string            `json:"notes,omitempty" bson:"notes,omitempty"`
}

// ServiceRecord represents a computer-repair service tracked by the system.
type ServiceRecord struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TrackingCode     string             `json:"tracking_code" bson:"tracking_code"`
	OwnerID          string             `json:"owner_id" bson:"owner_id"`
	ClientName       string             `json:"client_name" bson:"client_name"`
	ClientAddress    string             `json:"client_address" bson:"client_address"`
	ClientIDNumber   string             `json:"client_id_number" bson:"client_id_number"`
	ClientPhone      string             `json:"client_phone" bson:"client_phone"`
	ClientEmail      string             `json:"client_email" bson:"client_email"`
	TechnicianName   string             `json:"technician_name" bson:"technician_name"`
	TechnicianPhone  string             `json:"technician_phone" bson:"technician_phone"`
	TechnicianEmail  string             `json:"technician_email" bson:"technician_email"`
	OperatingSystem  string             `json:"operating_system" bson:"operating_system"`
	ComputerBrand    string             `json:"computer_brand" bson:"computer_brand"`
	ComputerType     string             `json:"computer_type" bson:"computer_type"`
	MaintenanceType  string             `json:"maintenance_type" bson:"maintenance_type"`
	KeyboardState    string             `json:"keyboard_state" bson:"keyboard_state"`
	ScreenState      string             `json:"screen_state" bson:"screen_state"`
	MouseState       string             `json:"mouse_state" bson:"mouse_state"`
	DVDState         string             `json:"dvd_state" bson:"dvd_state"`
	CaseState        string             `json:"case_state" bson:"case_state"`
	WorksCorrectly   string             `json:"works_correctly" bson:"works_correctly"`
	Observations     string             `json:"observations" bson:"observations"`
	CurrentStatus    MaintenanceStatus  `json:"current_status" bson:"current_status"`
	MaintenanceStates []StatusEvent     `json:"maintenance_states" bson:"maintenance_states"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}

// CreateServiceRequest carries the descriptive fields for a new service record.
// The tracking code, owner, timestamps and status seed are assigned server-side.
type CreateServiceRequest struct {
	ClientName      string `json:"client_name"`
	ClientAddress   string `json:"client_address"`
	ClientIDNumber  string `json:"client_id_number"`
	ClientPhone     string `json:"client_phone"`
	ClientEmail     string `json:"client_email"`
	TechnicianName  string `json:"technician_name"`
	TechnicianPhone string `json:"technician_phone"`
	TechnicianEmail string `json:"technician_email"`
	OperatingSystem string `json:"operating_system"`
	ComputerBrand   string `json:"computer_brand"`
	ComputerType    string `json:"computer_type"`
	MaintenanceType string `json:"maintenance_type"`
	KeyboardState   string `json:"keyboard_state"`
	ScreenState     string `json:"screen_state"`
	MouseState      string `json:"mouse_state"`
	DVDState        string `json:"dvd_state"`
	CaseState       string `json:"case_state"`
	WorksCorrectly  string `json:"works_correctly"`
	Observations    string `json:"observations"`
}

// RequiredFields returns the request's descriptive fields that must be
// non-empty, keyed by their JSON names.
func (r *CreateServiceRequest) RequiredFields() map[string]string {
	return map[string]string{
		"client_name":      r.ClientName,
		"client_address":   r.ClientAddress,
		"client_id_number": r.ClientIDNumber,
		"client_phone":     r.ClientPhone,
		"client_email":     r.ClientEmail,
		"technician_name":  r.TechnicianName,
		"technician_phone": r.TechnicianPhone,
		"technician_email": r.TechnicianEmail,
		"operating_system": r.OperatingSystem,
		"computer_brand":   r.ComputerBrand,
		"computer_type":    r.ComputerType,
		"maintenance_type": r.MaintenanceType,
		"keyboard_state":   r.KeyboardState,
		"screen_state":     r.ScreenState,
		"mouse_state":      r.MouseState,
		"dvd_state":        r.DVDState,
		"case_state":       r.CaseState,
		"works_correctly":  r.WorksCorrectly,
		"observations":     r.Observations,
	}
}

// AdvanceStatusRequest carries the optional technician notes for a transition.
type AdvanceStatusRequest struct {
	Notes string `json:"notes"`
}
