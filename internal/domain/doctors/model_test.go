package doctors

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

func TestStatus_OnLeaveLabel(t *testing.T) {
	if got := StatusOnLeave.Display(); got != "De Licença" {
		t.Errorf("expected De Licença, got %s", got)
	}
}

func TestStatus_UnknownFallsBack(t *testing.T) {
	if got := Status("RETIRED").Display(); got != "Ativo" {
		t.Errorf("expected fallback Ativo, got %s", got)
	}
}

func TestRecordView_RoundTrip(t *testing.T) {
	r := Record{
		ID:        "doc_3",
		FullName:  "Dr. Carlos Lima",
		Specialty: "Cardiologia",
		CRM:       "CRM-SP 123456",
		Phone:     "11988887777",
		Email:     "carlos@clinica.com",
		Status:    StatusOnLeave,
	}
	v := r.ToView()
	if v.Nome != "Dr. Carlos Lima" || v.Especialidade != "Cardiologia" || v.Status != "De Licença" {
		t.Errorf("field renaming broke: %+v", v)
	}
	if back := v.ToRecord(); back != r {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, r)
	}
}
