package mls

import "testing"

// TestPeriodCorrelation checks the degree-7 correlation polynomial's maximal
// period of 2^7-1 = 127.
func TestPeriodCorrelation(t *testing.T) {
	m := New(CorrelationPoly)
	const period = 127
	first := make([]bool, period)
	for i := range first {
		first[i] = m.Next()
	}
	for i := 0; i < period; i++ {
		if got := m.Next(); got != first[i] {
			t.Fatalf("sequence did not repeat with period %d at index %d", period, i)
		}
	}
}

// TestPeriodPreamble checks the degree-8 preamble/pilot polynomial's maximal
// period of 2^8-1 = 255.
func TestPeriodPreamble(t *testing.T) {
	m := New(PreamblePoly)
	const period = 255
	first := make([]bool, period)
	for i := range first {
		first[i] = m.Next()
	}
	for i := 0; i < period; i++ {
		if got := m.Next(); got != first[i] {
			t.Fatalf("sequence did not repeat with period %d at index %d", period, i)
		}
	}
}

func TestSequenceIsNotConstant(t *testing.T) {
	m := New(PreamblePoly)
	sawTrue, sawFalse := false, false
	for i := 0; i < 255; i++ {
		if m.Next() {
			sawTrue = true
		} else {
			sawFalse = true
		}
	}
	if !sawTrue || !sawFalse {
		t.Fatalf("expected a mix of 0 and 1 bits over one period")
	}
}

func TestNRZ(t *testing.T) {
	if NRZ(false) != 1 {
		t.Fatalf("NRZ(false) = %v, want 1", NRZ(false))
	}
	if NRZ(true) != -1 {
		t.Fatalf("NRZ(true) = %v, want -1", NRZ(true))
	}
}
