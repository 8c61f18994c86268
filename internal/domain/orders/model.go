package orders

import "github.com/gestox/gestox/internal/platform/enum"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

var AllStatuses = []Status{
	StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled,
}

type DisplayStatus string

var statusTable = enum.NewMapping(
	enum.Pair[Status, DisplayStatus]{Backend: StatusPending, Display: "Pendente"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusPaid, Display: "Pago"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusShipped, Display: "Enviado"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusDelivered, Display: "Entregue"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusCancelled, Display: "Cancelado"},
)

func (s Status) Display() DisplayStatus   { return statusTable.Forward(s) }
func ParseDisplay(d DisplayStatus) Status { return statusTable.Reverse(d) }

// Item is one order line in the backend shape.
type Item struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Record is the backend wire shape.
type Record struct {
	ID            string  `json:"id"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	Items         []Item  `json:"items,omitempty"`
	Total         float64 `json:"totalAmount"`
	Status        Status  `json:"status"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

// ItemView is one order line in the display shape.
type ItemView struct {
	ProdutoID     string  `json:"produto_id"`
	Quantidade    int     `json:"quantidade"`
	PrecoUnitario float64 `json:"preco_unitario"`
}

// View is the display shape.
type View struct {
	ID       string        `json:"id"`
	Cliente  string        `json:"cliente"`
	Telefone string        `json:"telefone,omitempty"`
	Itens    []ItemView    `json:"itens,omitempty"`
	Total    float64       `json:"total"`
	Status   DisplayStatus `json:"status"`
	CriadoEm string        `json:"criado_em,omitempty"`
}

func (r Record) ToView() View {
	itens := make([]ItemView, 0, len(r.Items))
	for _, it := range r.Items {
		itens = append(itens, ItemView{
			ProdutoID:     it.ProductID,
			Quantidade:    it.Quantity,
			PrecoUnitario: it.UnitPrice,
		})
	}
	return View{
		ID:       r.ID,
		Cliente:  r.CustomerName,
		Telefone: r.CustomerPhone,
		Itens:    itens,
		Total:    r.Total,
		Status:   r.Status.Display(),
		CriadoEm: r.CreatedAt,
	}
}

func (v View) ToRecord() Record {
	items := make([]Item, 0, len(v.Itens))
	for _, it := range v.Itens {
		items = append(items, Item{
			ProductID: it.ProdutoID,
			Quantity:  it.Quantidade,
			UnitPrice: it.PrecoUnitario,
		})
	}
	return Record{
		ID:            v.ID,
		CustomerName:  v.Cliente,
		CustomerPhone: v.Telefone,
		Items:         items,
		Total:         v.Total,
		Status:        ParseDisplay(v.Status),
		CreatedAt:     v.CriadoEm,
	}
}
