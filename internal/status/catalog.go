package status

import "github.com/xnorik/xnorik-backend/internal/models"

// Stage describes one step of the repair workflow as shown to clients.
type Stage struct {
	Key         models.MaintenanceStatus
	Label       string
	Description string
	Progress    int
}

// catalog is the single source of truth for stage ordering, labels and
// progress percentages. Never modified at runtime.
var catalog = []Stage{
	{Key: models.StatusPending, Label: "Pendiente", Description: "Servicio creado, esperando iniciar", Progress: 0},
	{Key: models.StatusDiagnosis, Label: "Diagnóstico", Description: "Analizando problemas y necesidades", Progress: 20},
	{Key: models.StatusCleaning, Label: "Limpieza", Description: "Limpieza interna y externa del equipo", Progress: 40},
	{Key: models.StatusRepair, Label: "Reparación", Description: "Realizando reparaciones necesarias", Progress: 60},
	{Key: models.StatusTesting, Label: "Pruebas", Description: "Probando el funcionamiento del equipo", Progress: 80},
	{Key: models.StatusCompleted, Label: "Completado", Description: "Mantenimiento finalizado con éxito", Progress: 100},
}

// Stages returns the ordered workflow stages.
func Stages() []Stage {
	out := make([]Stage, len(catalog))
	copy(out, catalog)
	return out
}

// IndexOf returns the position of a status in the workflow order, or -1
// for an unknown status.
func IndexOf(s models.MaintenanceStatus) int {
	for i, stage := range catalog {
		if stage.Key == s {
			return i
		}
	}
	return -1
}

// Next returns the stage following the given status. The second return
// value is false when the status is terminal or unknown.
func Next(s models.MaintenanceStatus) (models.MaintenanceStatus, bool) {
	i := IndexOf(s)
	if i < 0 || i >= len(catalog)-1 {
		return "", false
	}
	return catalog[i+1].Key, true
}

// Progress returns the completion percentage for a status, 0 for unknown.
func Progress(s models.MaintenanceStatus) int {
	i := IndexOf(s)
	if i < 0 {
		return 0
	}
	return catalog[i].Progress
}

// Describe returns the human label and description for a status. The
// third return value is false for an unknown status.
func Describe(s models.MaintenanceStatus) (string, string, bool) {
	i := IndexOf(s)
	if i < 0 {
		return "", "", false
	}
	return catalog[i].Label, catalog[i].Description, true
}

// IsTerminal reports whether the status is the final workflow stage.
func IsTerminal(s models.MaintenanceStatus) bool {
	return s == models.StatusCompleted
}
