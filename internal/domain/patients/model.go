package patients

import "github.com/gestox/gestox/internal/platform/enum"

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusArchived Status = "ARCHIVED"
)

var AllStatuses = []Status{StatusActive, StatusInactive, StatusArchived}

type DisplayStatus string

var statusTable = enum.NewMapping(
	enum.Pair[Status, DisplayStatus]{Backend: StatusActive, Display: "Ativo"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusInactive, Display: "Inativo"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusArchived, Display: "Arquivado"},
)

func (s Status) Display() DisplayStatus   { return statusTable.Forward(s) }
func ParseDisplay(d DisplayStatus) Status { return statusTable.Reverse(d) }

// Record is the backend wire shape.
type Record struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	BirthDate string `json:"birthDate,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Document  string `json:"documentNumber,omitempty"`
	Status    Status `json:"status"`
	Notes     string `json:"notes,omitempty"`
}

// View is the display shape.
type View struct {
	ID             string        `json:"id"`
	Nome           string        `json:"nome"`
	DataNascimento string        `json:"data_nascimento,omitempty"`
	Telefone       string        `json:"telefone,omitempty"`
	Email          string        `json:"email,omitempty"`
	CPF            string        `json:"cpf,omitempty"`
	Status         DisplayStatus `json:"status"`
	Observacoes    string        `json:"observacoes,omitempty"`
}

func (r Record) ToView() View {
	return View{
		ID:             r.ID,
		Nome:           r.FullName,
		DataNascimento: r.BirthDate,
		Telefone:       r.Phone,
		Email:          r.Email,
		CPF:            r.Document,
		Status:         r.Status.Display(),
		Observacoes:    r.Notes,
	}
}

func (v View) ToRecord() Record {
	return Record{
		ID:        v.ID,
		FullName:  v.Nome,
		BirthDate: v.DataNascimento,
		Phone:     v.Telefone,
		Email:     v.Email,
		Document:  v.CPF,
		Status:    ParseDisplay(v.Status),
		Notes:     v.Observacoes,
	}
}
