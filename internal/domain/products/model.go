package products

import "github.com/gestox/gestox/internal/platform/enum"

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusOutOfStock Status = "OUT_OF_STOCK"
)

var AllStatuses = []Status{StatusActive, StatusInactive, StatusOutOfStock}

type DisplayStatus string

var statusTable = enum.NewMapping(
	enum.Pair[Status, DisplayStatus]{Backend: StatusActive, Display: "Ativo"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusInactive, Display: "Inativo"},
	enum.Pair[Status, DisplayStatus]{Backend: StatusOutOfStock, Display: "Sem Estoque"},
)

func (s Status) Display() DisplayStatus   { return statusTable.Forward(s) }
func ParseDisplay(d DisplayStatus) Status { return statusTable.Reverse(d) }

// Record is the backend wire shape.
type Record struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	SKU        string  `json:"sku,omitempty"`
	Brand      string  `json:"brand,omitempty"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stockQuantity"`
	MinStock   int     `json:"minStockQuantity,omitempty"`
	SupplierID string  `json:"supplierId,omitempty"`
	Status     Status  `json:"status"`
}

// View is the display shape.
type View struct {
	ID            string        `json:"id"`
	Nome          string        `json:"nome"`
	SKU           string        `json:"sku,omitempty"`
	Marca         string        `json:"marca,omitempty"`
	Preco         float64       `json:"preco"`
	Estoque       int           `json:"estoque"`
	EstoqueMinimo int           `json:"estoque_minimo,omitempty"`
	FornecedorID  string        `json:"fornecedor_id,omitempty"`
	Status        DisplayStatus `json:"status"`
}

func (r Record) ToView() View {
	return View{
		ID:            r.ID,
		Nome:          r.Name,
		SKU:           r.SKU,
		Marca:         r.Brand,
		Preco:         r.Price,
		Estoque:       r.Stock,
		EstoqueMinimo: r.MinStock,
		FornecedorID:  r.SupplierID,
		Status:        r.Status.Display(),
	}
}

func (v View) ToRecord() Record {
	return Record{
		ID:         v.ID,
		Name:       v.Nome,
		SKU:        v.SKU,
		Brand:      v.Marca,
		Price:      v.Preco,
		Stock:      v.Estoque,
		MinStock:   v.EstoqueMinimo,
		SupplierID: v.FornecedorID,
		Status:     ParseDisplay(v.Status),
	}
}
