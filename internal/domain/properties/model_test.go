package properties

import "testing"

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
	if got := Status("DEMOLISHED").Display(); got != "Disponível" {
		t.Errorf("expected fallback Disponível, got %s", got)
	}
}

func TestRecordView_RoundTrip(t *testing.T) {
	r := Record{
		ID:        "prop_7",
		Title:     "Apartamento 2 quartos no centro",
		Address:   "Rua das Flores, 120",
		City:      "Curitiba",
		Price:     450000,
		Bedrooms:  2,
		Bathrooms: 1,
		AreaM2:    68.5,
		Status:    StatusRented,
	}
	v := r.ToView()
	if v.Titulo != r.Title || v.Cidade != "Curitiba" || v.Status != "Alugado" {
		t.Errorf("field renaming broke: %+v", v)
	}
	if back := v.ToRecord(); back != r {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, r)
	}
}
