package polar

import (
	"testing"

	"github.com/jeongseonghan/cofdmtv/internal/bitops"
	"github.com/jeongseonghan/cofdmtv/internal/crc"
	"github.com/jeongseonghan/cofdmtv/internal/modes"
)

func TestEncodeLengthPerMode(t *testing.T) {
	payload := make([]byte, modes.PayloadBytes)
	for m := 6; m <= 13; m++ {
		code, err := Encode(payload, m)
		if err != nil {
			t.Fatalf("mode %d: %v", m, err)
		}
		p, _ := modes.Lookup(m)
		if len(code) != p.ConsBits {
			t.Fatalf("mode %d: code length %d, want %d", m, len(code), p.ConsBits)
		}
	}
}

func TestEncodeRejectsBadPayloadLength(t *testing.T) {
	if _, err := Encode(make([]byte, 10), 6); err == nil {
		t.Fatalf("expected error for short payload")
	}
}

func TestEncodeRejectsUnknownMode(t *testing.T) {
	if _, err := Encode(make([]byte, modes.PayloadBytes), 99); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestEncodeDeterministic(t *testing.T) {
	payload := make([]byte, modes.PayloadBytes)
	for i := range payload {
		payload[i] = byte(i)
	}
	a, err := Encode(payload, 8)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(payload, 8)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("polar encode not deterministic at bit %d", i)
		}
	}
}

// TestSystematicProperty is the polar systematic property from the core's
// testable-properties list: the encoded code[], restricted to the
// information (non-frozen) positions in index order, must equal the
// message's soft values exactly.
func TestSystematicProperty(t *testing.T) {
	payload := make([]byte, modes.PayloadBytes)
	for i := range payload {
		payload[i] = byte(i * 7)
	}
	mode := 8
	p, _ := modes.Lookup(mode)
	frozen := p.FrozenBits()

	mesg := make([]int8, p.MesgBits)
	for i := 0; i < modes.DataBits; i++ {
		mesg[i] = nrz(bitops.GetLEBit(payload, i))
	}
	payloadCRC := crc.NewPayload32()
	for _, b := range payload {
		payloadCRC.UpdateByte(b)
	}
	sum := payloadCRC.Sum()
	for i := 0; i < 32; i++ {
		mesg[modes.DataBits+i] = nrz(int((sum >> uint(i)) & 1))
	}
	for i := modes.CRCBits; i < p.MesgBits; i++ {
		mesg[i] = 1
	}

	code := systematicEncode(mesg, frozen)

	mi := 0
	for i := 0; i < len(code); i++ {
		if isFrozen(frozen, i) {
			continue
		}
		if code[i] != mesg[mi] {
			t.Fatalf("systematic property violated at index %d (message index %d): code=%d mesg=%d", i, mi, code[i], mesg[mi])
		}
		mi++
	}
}
