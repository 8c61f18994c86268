// Package appointments exposes the clinic's appointment book. The backend
// owns the records under /doctor-appointments; this package translates
// between the backend vocabulary (SCHEDULED, CONFIRMED, ...) and the
// dashboard's display vocabulary (Agendada, Confirmada, ...).
package appointments

import "github.com/gestox/gestox/internal/platform/enum"

// Status is a backend appointment status code.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

// AllStatuses is the declared backend universe; the mapping table must
// cover it (enforced in tests).
var AllStatuses = []Status{
	StatusScheduled, StatusConfirmed, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusNoShow,
}

// DisplayStatus is the dashboard label for a status.
type DisplayStatus string

var statusTable = enum.NewMapping(
	enum.Pair[Status, DisplayStatus]{Backend: StatusScheduled, Display: "Agendada"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusConfirmed, Display: "Confirmada"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusInProgress, Display: "Em Andamento"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusCompleted, Display: "Concluída"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusCancelled, Display: "Cancelada"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusNoShow, Display: "Faltou"},
)

// Display maps a backend status to its dashboard label; unknown codes
// degrade to the fallback label instead of crashing a screen.
func (s Status) Display() DisplayStatus { return statusTable.Forward(s) }

// ParseDisplay maps a dashboard label back to its backend code.
func ParseDisplay(d DisplayStatus) Status { return statusTable.Reverse(d) }

// Record is the backend wire shape.
type Record struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
	Date      string `json:"appointmentDate"`
	Time      string `json:"appointmentTime"`
	Status    Status `json:"status"`
	Reason    string `json:"reason,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// View is the display shape rendered by the dashboard.
type View struct {
	ID          string        `json:"id"`
	PacienteID  string        `json:"paciente_id"`
	MedicoID    string        `json:"medico_id"`
	Data        string        `json:"data"`
	Hora        string        `json:"hora"`
	Status      DisplayStatus `json:"status"`
	Motivo      string        `json:"motivo,omitempty"`
	Observacoes string        `json:"observacoes,omitempty"`
}

func (r Record) ToView() View {
	return View{
		ID:          r.ID,
		PacienteID:  r.PatientID,
		MedicoID:    r.DoctorID,
		Data:        r.Date,
		Hora:        r.Time,
		Status:      r.Status.Display(),
		Motivo:      r.Reason,
		Observacoes: r.Notes,
	}
}

func (v View) ToRecord() Record {
	return Record{
		ID:        v.ID,
		PatientID: v.PacienteID,
		DoctorID:  v.MedicoID,
		Date:      v.Data,
		Time:      v.Hora,
		Status:    ParseDisplay(v.Status),
		Reason:    v.Motivo,
		Notes:     v.Observacoes,
	}
}
