package enums

import "testing"

func TestParseAdjustmentReason(t *testing.T) {
	for _, reason := range AdjustmentReasons() {
		parsed, err := ParseAdjustmentReason(reason.String())
		if err != nil {
			t.Fatalf("ParseAdjustmentReason(%q): %v", reason, err)
		}
		if parsed != reason {
			t.Fatalf("expected %q, got %q", reason, parsed)
		}
	}

	if _, err := ParseAdjustmentReason("evaporated"); err == nil {
		t.Fatal("expected error for unknown reason")
	}
}

func TestAdjustmentReasonLabelFallsBackToRawCode(t *testing.T) {
	if got := AdjustmentReason("legacy_writeoff").Label(); got != "legacy_writeoff" {
		t.Fatalf("expected raw code fallback, got %q", got)
	}
	if got := AdjustmentReasonTemperature.Label(); got != "Temperature Excursion" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestVaccineFamilyNameFallsBackToCode(t *testing.T) {
	if got := VaccineFamilyName("MMR"); got != "Measles, Mumps, Rubella" {
		t.Fatalf("unexpected family name %q", got)
	}
	if got := VaccineFamilyName("XYZ-99"); got != "XYZ-99" {
		t.Fatalf("expected unknown code to be its own display value, got %q", got)
	}
}

func TestVaccineFamiliesOrderIsStable(t *testing.T) {
	first := VaccineFamilies()
	second := VaccineFamilies()
	if len(first) != len(second) || len(first) == 0 {
		t.Fatalf("unexpected sizes %d/%d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order changed at %d: %v vs %v", i, first[i], second[i])
		}
	}
	if first[0].Code != "DTaP" {
		t.Fatalf("expected DTaP first, got %q", first[0].Code)
	}
}
