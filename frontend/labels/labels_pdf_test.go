package labels

import (
	"testing"
	"time"
)

func TestRenderProductLabelsPDF_GeneratesPDF(t *testing.T) {
	t.Parallel()

	pdf, err := renderProductLabelsPDF([]ProductLabelData{
		{Code: "URN-001", Name: "Ayran 1L", Unit: "piece"},
		{Code: "URN-002", Name: "Bulgur 5kg", Unit: "bag"},
	}, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderProductLabelsPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected non-empty pdf bytes")
	}
}

func TestRenderProductLabelsPDF_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := renderProductLabelsPDF(nil, time.Now()); err == nil {
		t.Fatalf("expected error for empty label list")
	}
}

func TestRenderProductLabelsPDF_RejectsEmptyCode(t *testing.T) {
	t.Parallel()

	_, err := renderProductLabelsPDF([]ProductLabelData{{Code: "  ", Name: "Nameless"}}, time.Now())
	if err == nil {
		t.Fatalf("expected error for empty product code")
	}
}
