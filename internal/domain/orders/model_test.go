package orders

import (
	"reflect"
	"testing"
)

func TestStatusTable_CoversUniverse(t *testing.T) {
	if err := statusTable.Covers(AllStatuses...); err != nil {
		t.Fatal(err)
	}
}

func TestStatus_RoundTrip(t *testing.T) {
	for _, s := range AllStatuses {
		if back := ParseDisplay(s.Display()); back != s {
			t.Errorf("round trip broke: %s -> %s -> %s", s, s.Display(), back)
		}
	}
}

func TestStatus_UnknownFallsBack(t *testing.T) {
	if got := Status("REFUNDED").Display(); got != "Pendente" {
		t.Errorf("expected fallback Pendente, got %s", got)
	}
}

func TestRecordView_RoundTrip(t *testing.T) {
	r := Record{
		ID:            "ord_5",
		CustomerName:  "Oficina do Zé",
		CustomerPhone: "1133334444",
		Items: []Item{
			{ProductID: "prod_10", Quantity: 4, UnitPrice: 189.9},
			{ProductID: "prod_22", Quantity: 1, UnitPrice: 55},
		},
		Total:     814.6,
		Status:    StatusShipped,
		CreatedAt: "2025-08-01T10:00:00Z",
	}
	v := r.ToView()
	if v.Cliente != r.CustomerName || v.Status != "Enviado" {
		t.Errorf("field renaming broke: %+v", v)
	}
	if len(v.Itens) != 2 || v.Itens[0].ProdutoID != "prod_10" || v.Itens[0].Quantidade != 4 {
		t.Errorf("items mapping broke: %+v", v.Itens)
	}
	if back := v.ToRecord(); !reflect.DeepEqual(back, r) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, r)
	}
}
