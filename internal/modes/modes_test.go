package modes

import "testing"

func TestValid(t *testing.T) {
	if !Valid(0) {
		t.Fatalf("mode 0 (silence) must be valid")
	}
	for m := 6; m <= 13; m++ {
		if !Valid(m) {
			t.Fatalf("mode %d must be valid", m)
		}
	}
	for _, m := range []int{-1, 1, 5, 14, 100} {
		if Valid(m) {
			t.Fatalf("mode %d must be invalid", m)
		}
	}
}

func TestConsBitsDivisibleByModBits(t *testing.T) {
	for m := 6; m <= 13; m++ {
		p, ok := Lookup(m)
		if !ok {
			t.Fatalf("mode %d missing from table", m)
		}
		if p.ConsBits%p.ModBits != 0 {
			t.Fatalf("mode %d: cons_bits %d not divisible by mod_bits %d", m, p.ConsBits, p.ModBits)
		}
		if p.ConsCnt() != p.ConsBits/p.ModBits {
			t.Fatalf("mode %d: ConsCnt() disagrees with ConsBits/ModBits", m)
		}
	}
}

func TestFrozenBitsNonFrozenCountMatchesMesgBits(t *testing.T) {
	for m := 6; m <= 13; m++ {
		p, _ := Lookup(m)
		frozen := p.FrozenBits()
		nonFrozen := 0
		for _, word := range frozen {
			for b := 0; b < 32; b++ {
				if (word>>uint(b))&1 == 0 {
					nonFrozen++
				}
			}
		}
		if nonFrozen != p.MesgBits {
			t.Fatalf("mode %d: frozen set has %d non-frozen bits, want mesg_bits %d", m, nonFrozen, p.MesgBits)
		}
	}
}
