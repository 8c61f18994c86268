package doctors

import "github.com/gestox/gestox/internal/platform/enum"

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusOnLeave  Status = "ON_LEAVE"
	StatusInactive Status = "INACTIVE"
)

var AllStatuses = []Status{StatusActive, StatusOnLeave, StatusInactive}

type DisplayStatus string

var statusTable = enum.NewMapping(
	enum.Pair[Status, DisplayStatus]{Backend: StatusActive, Display: "Ativo"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusOnLeave, Display: "De Licença"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusInactive, Display: "Inativo"},
)

func (s Status) Display() DisplayStatus   { return statusTable.Forward(s) }
func ParseDisplay(d DisplayStatus) Status { return statusTable.Reverse(d) }

// Record is the backend wire shape.
type Record struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Specialty string `json:"specialty,omitempty"`
	CRM       string `json:"licenseNumber,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Status    Status `json:"status"`
}

// View is the display shape.
type View struct {
	ID            string        `json:"id"`
	Nome          string        `json:"nome"`
	Especialidade string        `json:"especialidade,omitempty"`
	CRM           string        `json:"crm,omitempty"`
	Telefone      string        `json:"telefone,omitempty"`
	Email         string        `json:"email,omitempty"`
	Status        DisplayStatus `json:"status"`
}

func (r Record) ToView() View {
	return View{
		ID:            r.ID,
		Nome:          r.FullName,
		Especialidade: r.Specialty,
		CRM:           r.CRM,
		Telefone:      r.Phone,
		Email:         r.Email,
		Status:        r.Status.Display(),
	}
}

func (v View) ToRecord() Record {
	return Record{
		ID:        v.ID,
		FullName:  v.Nome,
		Specialty: v.Especialidade,
		CRM:       v.CRM,
		Phone:     v.Telefone,
		Email:     v.Email,
		Status:    ParseDisplay(v.Status),
	}
}
