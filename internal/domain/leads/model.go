package leads

import "github.com/gestox/gestox/internal/platform/enum"

type Status string

const (
	StatusNew       Status = "NEW"
	StatusContacted Status = "CONTACTED"
	StatusQualified Status = "QUALIFIED"
	StatusWon       Status = "WON"
	StatusLost      Status = "LOST"
)

var AllStatuses = []Status{
	StatusNew, StatusContacted, StatusQualified, StatusWon, StatusLost,
}

type DisplayStatus string

var statusTable = enum.NewMapping(
	enum.Pair[Status, DisplayStatus]{Backend: StatusNew, Display: "Novo"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusContacted, Display: "Contatado"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusQualified, Display: "Qualificado"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusWon, Display: "Ganho"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusLost, Display: "Perdido"},
)

func (s Status) Display() DisplayStatus   { return statusTable.Forward(s) }
func ParseDisplay(d DisplayStatus) Status { return statusTable.Reverse(d) }

// Record is the backend wire shape.
type Record struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	PropertyID string `json:"propertyId,omitempty"`
	Source     string `json:"source,omitempty"`
	Status     Status `json:"status"`
	Notes      string `json:"notes,omitempty"`
}

// View is the display shape.
type View struct {
	ID          string        `json:"id"`
	Nome        string        `json:"nome"`
	Telefone    string        `json:"telefone,omitempty"`
	Email       string        `json:"email,omitempty"`
	ImovelID    string        `json:"imovel_id,omitempty"`
	Origem      string        `json:"origem,omitempty"`
	Status      DisplayStatus `json:"status"`
	Observacoes string        `json:"observacoes,omitempty"`
}

func (r Record) ToView() View {
	return View{
		ID:          r.ID,
		Nome:        r.FullName,
		Telefone:    r.Phone,
		Email:       r.Email,
		ImovelID:    r.PropertyID,
		Origem:      r.Source,
		Status:      r.Status.Display(),
		Observacoes: r.Notes,
	}
}

func (v View) ToRecord() Record {
	return Record{
		ID:         v.ID,
		FullName:   v.Nome,
		Phone:      v.Telefone,
		Email:      v.Email,
		PropertyID: v.ImovelID,
		Source:     v.Origem,
		Status:     ParseDisplay(v.Status),
		Notes:      v.Observacoes,
	}
}
