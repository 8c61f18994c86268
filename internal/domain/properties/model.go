package properties

import "github.com/gestox/gestox/internal/platform/enum"

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusReserved  Status = "RESERVED"
	StatusSold      Status = "SOLD"
	StatusRented    Status = "RENTED"
	StatusInactive  Status = "INACTIVE"
)

var AllStatuses = []Status{
	StatusAvailable, StatusReserved, StatusSold, StatusRented, StatusInactive,
}

type DisplayStatus string

var statusTable = enum.NewMapping(
	enum.Pair[Status, DisplayStatus]{Backend: StatusAvailable, Display: "Disponível"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusReserved, Display: "Reservado"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusSold, Display: "Vendido"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusRented, Display: "Alugado"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusInactive, Display: "Inativo"},
)

func (s Status) Display() DisplayStatus   { return statusTable.Forward(s) }
func ParseDisplay(d DisplayStatus) Status { return statusTable.Reverse(d) }

// Record is the backend wire shape.
type Record struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Address     string  `json:"address,omitempty"`
	City        string  `json:"city,omitempty"`
	Price       float64 `json:"price"`
	Bedrooms    int     `json:"bedrooms,omitempty"`
	Bathrooms   int     `json:"bathrooms,omitempty"`
	AreaM2      float64 `json:"areaM2,omitempty"`
	Status      Status  `json:"status"`
	Description string  `json:"description,omitempty"`
}

// View is the display shape.
type View struct {
	ID        string        `json:"id"`
	Titulo    string        `json:"titulo"`
	Endereco  string        `json:"endereco,omitempty"`
	Cidade    string        `json:"cidade,omitempty"`
	Preco     float64       `json:"preco"`
	Quartos   int           `json:"quartos,omitempty"`
	Banheiros int           `json:"banheiros,omitempty"`
	Area      float64       `json:"area_m2,omitempty"`
	Status    DisplayStatus `json:"status"`
	Descricao string        `json:"descricao,omitempty"`
}

func (r Record) ToView() View {
	return View{
		ID:        r.ID,
		Titulo:    r.Title,
		Endereco:  r.Address,
		Cidade:    r.City,
		Preco:     r.Price,
		Quartos:   r.Bedrooms,
		Banheiros: r.Bathrooms,
		Area:      r.AreaM2,
		Status:    r.Status.Display(),
		Descricao: r.Description,
	}
}

func (v View) ToRecord() Record {
	return Record{
		ID:          v.ID,
		Title:       v.Titulo,
		Address:     v.Endereco,
		City:        v.Cidade,
		Price:       v.Preco,
		Bedrooms:    v.Quartos,
		Bathrooms:   v.Banheiros,
		AreaM2:      v.Area,
		Status:      ParseDisplay(v.Status),
		Description: v.Descricao,
	}
}
