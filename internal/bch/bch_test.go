package bch

import "testing"

func TestEncodeZeroMessageZeroParity(t *testing.T) {
	enc := New()
	var msg [9]byte
	var parity [ParityBits / 8]byte
	enc.Encode(msg, &parity)
	for i, b := range parity {
		if b != 0 {
			t.Fatalf("zero message produced nonzero parity byte %d: %02x", i, b)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	enc := New()
	var msg [9]byte
	msg[0] = 0xAC
	msg[3] = 0x05

	var p1, p2 [ParityBits / 8]byte
	enc.Encode(msg, &p1)
	enc.Encode(msg, &p2)
	if p1 != p2 {
		t.Fatalf("BCH encode not deterministic: %v != %v", p1, p2)
	}
}

func TestEncodeDifferentMessagesDifferentParity(t *testing.T) {
	enc := New()
	var msgA, msgB [9]byte
	msgB[0] = 0x01

	var pA, pB [ParityBits / 8]byte
	enc.Encode(msgA, &pA)
	enc.Encode(msgB, &pB)
	if pA == pB {
		t.Fatalf("different messages produced identical parity")
	}
}

func TestGeneratorDegree(t *testing.T) {
	gen := multiplyAll(minimalPolynomials[:])
	if len(gen) != ParityBits+1 {
		t.Fatalf("generator polynomial degree = %d, want %d", len(gen)-1, ParityBits)
	}
	if gen[ParityBits] != 1 {
		t.Fatalf("generator polynomial must be monic, leading coefficient = %d", gen[ParityBits])
	}
}
