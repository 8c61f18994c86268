package stockmovements

import "github.com/gestox/gestox/internal/platform/enum"

// Type classifies a stock movement.
type Type string

const (
	TypeIn         Type = "IN"
	TypeOut        Type = "OUT"
	TypeAdjustment Type = "ADJUSTMENT"
)

var AllTypes = []Type{TypeIn, TypeOut, TypeAdjustment}

type DisplayType string

var typeTable = enum.NewMapping(
	enum.Pair[Type, DisplayType]{Backend: TypeAdjustment, Display: "Ajuste"},
	enum.Pair[Type, DisplayType]{Backend: TypeIn, Display: "Entrada"},
	enum.Pair[Type, DisplayType]{Backend: TypeOut, Display: "Saída"},
)

func (t Type) Display() DisplayType   { return typeTable.Forward(t) }
func ParseDisplay(d DisplayType) Type { return typeTable.Reverse(d) }

// Record is the backend wire shape.
type Record struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Type      Type   `json:"movementType"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// View is the display shape.
type View struct {
	ID         string      `json:"id"`
	ProdutoID  string      `json:"produto_id"`
	Tipo       DisplayType `json:"tipo"`
	Quantidade int         `json:"quantidade"`
	Motivo     string      `json:"motivo,omitempty"`
	CriadoEm   string      `json:"criado_em,omitempty"`
}

func (r Record) ToView() View {
	return View{
		ID:         r.ID,
		ProdutoID:  r.ProductID,
		Tipo:       r.Type.Display(),
		Quantidade: r.Quantity,
		Motivo:     r.Reason,
		CriadoEm:   r.CreatedAt,
	}
}

func (v View) ToRecord() Record {
	return Record{
		ID:        v.ID,
		ProductID: v.ProdutoID,
		Type:      ParseDisplay(v.Tipo),
		Quantity:  v.Quantidade,
		Reason:    v.Motivo,
		CreatedAt: v.CriadoEm,
	}
}
