package appointments

import "testing"

func TestStatusTable_CoversUniverse(t *testing.T) {
	if err := statusTable.Covers(AllStatuses...); err != nil {
		t.Fatal(err)
	}
}

func TestStatus_RoundTrip(t *testing.T) {
	for _, s := range AllStatuses {
		d := s.Display()
		if d == "" {
			t.Fatalf("Display(%s) returned empty label", s)
		}
		if back := ParseDisplay(d); back != s {
			t.Errorf("round trip broke: %s -> %s -> %s", s, d, back)
		}
	}
}

func TestStatus_KnownLabels(t *testing.T) {
	if got := StatusConfirmed.Display(); got != "Confirmada" {
		t.Errorf("expected Confirmada, got %s", got)
	}
	if got := ParseDisplay("Em Andamento"); got != StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", got)
	}
}

func TestStatus_UnknownFallsBack(t *testing.T) {
	if got := Status("EXPLODED").Display(); got != "Agendada" {
		t.Errorf("expected fallback Agendada, got %s", got)
	}
}

func TestRecordView_RoundTrip(t *testing.T) {
	r := Record{
		ID:        "apt_1",
		PatientID: "pat_9",
		DoctorID:  "doc_3",
		Date:      "2025-08-14",
		Time:      "14:30",
		Status:    StatusConfirmed,
		Reason:    "Consulta de rotina",
		Notes:     "Paciente em jejum",
	}

	v := r.ToView()
	if v.Status != "Confirmada" {
		t.Errorf("expected Confirmada, got %s", v.Status)
	}
	if v.PacienteID != "pat_9" || v.MedicoID != "doc_3" {
		t.Errorf("field renaming broke: %+v", v)
	}

	back := v.ToRecord()
	if back != r {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, r)
	}
}
